// Package reconcile aligns the persisted order ledger with a full snapshot of
// the order sheet.
//
// A run is a single sequential pass:
//
//  1. Parse: every sheet row becomes a Candidate. One malformed row aborts the
//     run before anything is written.
//  2. Plan: order numbers known to the store and to the sheet are partitioned
//     into ToDelete, ToUpdate and ToInsert. Updates are compared field by field
//     and only changed records produce a write.
//  3. Execute: deletions, updates and insertions are applied inside one store
//     transaction. Local amounts are computed from the exchange rate of the
//     delivery date, resolved through a cache that lives for one run only.
//  4. Notify: newly inserted orders whose delivery date is already past are
//     handed to a Notifier. A delivery failure does not undo the run.
//
// # Architecture
//
// The package holds no I/O of its own. The persisted store, the rate source
// and the notifier are interfaces implemented by feature packages:
//
//   - Store / Mutator: feature/orders (GORM)
//   - RateSource: feature/rates (Central Bank daily feed)
//   - Notifier: feature/notify (Telegram, or a log-only fallback)
//
// # Usage
//
//	engine := reconcile.NewEngine(reconcile.Spec{
//	    Store:     store,
//	    Rates:     rates,
//	    Notifier:  notifier,
//	    HasHeader: true,
//	}, logger)
//
//	report, err := engine.Run(ctx, rows, reconcile.RunOptions{})
//
// # Policies
//
// Duplicate order numbers in the sheet: the last row wins, the position of the
// first occurrence is kept. Local amounts are recomputed only when the foreign
// amount or the delivery date changed; a change of the sequence number alone is
// written without a rate lookup.
package reconcile
