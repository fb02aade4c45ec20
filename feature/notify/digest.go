package notify

import (
	"fmt"
	"strings"

	"order-ledger/core/reconcile"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Digest renders the overdue report, one numbered line per order.
func Digest(orders []reconcile.Order, currency string) string {
	var b strings.Builder
	b.WriteString("Overdue orders:\n")
	for i, o := range orders {
		fmt.Fprintf(&b, "%d. Order#%d Date: %s Price: %s\n",
			i+1, o.OrderNumber, o.DeliveryDate, FormatPrice(o.ForeignAmount, currency))
	}
	return b.String()
}

// FormatPrice displays amount in currency, rounded to the currency's minor
// unit. Unknown codes fall back to the plain decimal followed by the code.
func FormatPrice(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.String() + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
