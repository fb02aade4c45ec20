// Package utils provides conversion helpers for loosely typed values, such as
// the cells of a spreadsheet value range.
package utils
