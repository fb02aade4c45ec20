// Package rates is the daily exchange rate source of the ledger.
//
// Client queries the Central Bank XML feed (XML_daily.asp) with the delivery
// date and extracts the configured currency. The feed is windows-1251 encoded,
// uses a decimal comma and quotes some currencies per 10 or 100 units; the
// returned rate is always per one unit. Days without a quotation for the
// currency yield reconcile.ErrNoQuotation.
package rates
