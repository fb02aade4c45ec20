// Package orders wires the reconciliation engine to its production
// collaborators and exposes the ledger over HTTP.
//
// Store persists ledger records with GORM and implements reconcile.Store.
// Archive keeps every fetched sheet snapshot in object storage. Service runs
// synchronizations, collapsing concurrent triggers into one run, and Handler
// serves:
//
//   - GET /orders: the ledger ordered by delivery date with the dollar total.
//   - POST /orders/sync: one synchronization (dry_run and snapshot query parameters).
//   - GET /orders/snapshots: archived snapshots, newest first.
package orders
