// Package notify delivers the overdue order digest.
//
// The digest has one numbered line per overdue order, for example
// "1. Order#1042 Date: 2024-01-05 Price: $12.50", and is posted to each
// configured Telegram chat. Without a bot token the digest is written to the
// log instead. Both notifiers satisfy reconcile.Notifier.
package notify
