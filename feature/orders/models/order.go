package models

import (
	"order-ledger/core/date"
	"order-ledger/core/reconcile"

	"github.com/shopspring/decimal"
)

// Order is the persisted row of the orders table. The amount columns keep
// reconcile.AmountScale decimal places.
type Order struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	Number       int64           `gorm:"column:number;not null"`
	OrderNumber  int64           `gorm:"column:order_number;not null;uniqueIndex"`
	Dollars      decimal.Decimal `gorm:"column:dollars;type:decimal(18,5);not null"`
	DeliveryTime date.Date       `gorm:"column:delivery_time;type:date;not null;index"`
	Rubles       decimal.Decimal `gorm:"column:rubles;type:decimal(18,5);not null"`
}

// TableName overrides the table name used by Order to `orders`.
func (Order) TableName() string {
	return "orders"
}

// Columns lists the columns the ledger reads and writes.
var Columns = []string{"id", "number", "order_number", "dollars", "delivery_time", "rubles"}

// ToRecord converts the row into the ledger record.
func (o Order) ToRecord() reconcile.Order {
	return reconcile.Order{
		SequenceNumber: o.Number,
		OrderNumber:    o.OrderNumber,
		ForeignAmount:  o.Dollars,
		DeliveryDate:   o.DeliveryTime,
		LocalAmount:    o.Rubles,
	}
}

// FromRecord converts a ledger record into a row without an id.
func FromRecord(r reconcile.Order) Order {
	return Order{
		Number:       r.SequenceNumber,
		OrderNumber:  r.OrderNumber,
		Dollars:      r.ForeignAmount,
		DeliveryTime: r.DeliveryDate,
		Rubles:       r.LocalAmount,
	}
}

// Fields returns the column values rewritten on update.
func (o Order) Fields() map[string]any {
	return map[string]any{
		"number":        o.Number,
		"dollars":       o.Dollars,
		"delivery_time": o.DeliveryTime,
		"rubles":        o.Rubles,
	}
}
