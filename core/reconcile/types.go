package reconcile

import (
	"time"

	"order-ledger/core/date"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept for money amounts. It
// matches the decimal(18,5) columns of the orders table.
const AmountScale int32 = 5

// Order is a persisted ledger entry. Values are replaced wholesale on update,
// never patched field by field.
type Order struct {
	// SequenceNumber is the row number shown in the sheet. Informational only.
	SequenceNumber int64 `json:"number"`

	// OrderNumber identifies the order across the whole store.
	OrderNumber int64 `json:"order_number"`

	// ForeignAmount is the order price in foreign currency.
	ForeignAmount decimal.Decimal `json:"dollars"`

	// DeliveryDate is the day the order is due.
	DeliveryDate date.Date `json:"delivery_time"`

	// LocalAmount is ForeignAmount multiplied by the rate of DeliveryDate at the
	// time of the last write.
	LocalAmount decimal.Decimal `json:"rubles"`
}

// Candidate is a parsed sheet row that has not been committed yet.
type Candidate struct {
	SequenceNumber int64
	OrderNumber    int64
	ForeignAmount  decimal.Decimal
	DeliveryDate   date.Date
}

// toOrder builds the ledger entry for the candidate with the given local amount,
// rounded to AmountScale.
func (c Candidate) toOrder(local decimal.Decimal) Order {
	return Order{
		SequenceNumber: c.SequenceNumber,
		OrderNumber:    c.OrderNumber,
		ForeignAmount:  c.ForeignAmount,
		DeliveryDate:   c.DeliveryDate,
		LocalAmount:    roundAmount(local),
	}
}

// roundAmount rounds d to AmountScale places. Values that already fit are
// returned unchanged.
func roundAmount(d decimal.Decimal) decimal.Decimal {
	if d.Exponent() >= -AmountScale {
		return d
	}
	return d.Round(AmountScale)
}

// ActionType represents the type of write planned for an order.
type ActionType string

const (
	// ActionDelete removes an order that is no longer in the sheet.
	ActionDelete ActionType = "delete"
	// ActionUpdate rewrites an order whose sheet fields changed.
	ActionUpdate ActionType = "update"
	// ActionInsert creates an order that appeared in the sheet.
	ActionInsert ActionType = "insert"
)

// Action represents a planned write.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the order number.
	Key int64 `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Fields lists the changed fields of an update.
	Fields []string `json:"fields,omitempty"`

	// Recompute is set when the local amount needs a fresh rate.
	Recompute bool `json:"recompute,omitempty"`

	// Candidate is the sheet row for updates and inserts.
	Candidate Candidate `json:"-"`

	// Current is the persisted record for updates. Nil when it was not loaded.
	Current *Order `json:"-"`
}

// Plan is the outcome of comparing the sheet with the store.
//
// ToDelete, ToUpdate and ToInsert are disjoint and together cover every order
// number known to either side. ToUpdate holds every shared order number, while
// Actions only holds writes that are actually needed.
type Plan struct {
	ToDelete []int64 `json:"to_delete"`
	ToUpdate []int64 `json:"to_update"`
	ToInsert []int64 `json:"to_insert"`

	// Actions are ordered as they execute: deletes, updates, inserts.
	Actions []Action `json:"actions"`

	Summary PlanSummary `json:"summary"`
}

// Empty reports whether the plan requires no write at all.
func (p *Plan) Empty() bool {
	return len(p.Actions) == 0
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	// External is the number of distinct order numbers in the sheet.
	External int `json:"external"`

	// Persisted is the number of order numbers in the store before the run.
	Persisted int `json:"persisted"`

	// Duplicates counts sheet rows overridden by a later row with the same order number.
	Duplicates int `json:"duplicates"`

	Deletes   int `json:"deletes"`
	Updates   int `json:"updates"`
	Unchanged int `json:"unchanged"`
	Inserts   int `json:"inserts"`

	// Recomputes counts updates that need a new local amount.
	Recomputes int `json:"recomputes"`
}

// ExecutionResult describes a committed plan.
type ExecutionResult struct {
	Deleted int `json:"deleted"`

	// Updated holds the rewritten records in plan order.
	Updated []Order `json:"updated"`

	// Inserted holds the new records in insertion order.
	Inserted []Order `json:"inserted"`

	// RateLookups counts calls made to the rate source.
	RateLookups int `json:"rate_lookups"`

	// RateCacheHits counts rate resolutions served from the run cache.
	RateCacheHits int `json:"rate_cache_hits"`
}

// RunOptions controls a single run.
type RunOptions struct {
	// DryRun stops after planning. Nothing is written and nobody is notified.
	DryRun bool
}

// RunReport summarizes a reconciliation run.
type RunReport struct {
	RunID    string           `json:"run_id"`
	DryRun   bool             `json:"dry_run"`
	Plan     *Plan            `json:"plan"`
	Result   *ExecutionResult `json:"result,omitempty"`
	Overdue  []Order          `json:"overdue"`
	Started  time.Time        `json:"started"`
	Duration time.Duration    `json:"duration"`

	// Warning is set when the ledger was committed but a later step failed.
	Warning string `json:"warning,omitempty"`
}
