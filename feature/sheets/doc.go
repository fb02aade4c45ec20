// Package sheets reads the order spreadsheet through the Google Sheets API.
//
// The client authenticates with a service account key and requests the
// configured range with formatted values, so dates arrive as DD.MM.YYYY text
// exactly as shown in the sheet.
package sheets
