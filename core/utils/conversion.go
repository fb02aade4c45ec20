package utils

import (
	"fmt"
	"strconv"
)

// ToString converts a loosely typed cell value to its text form.
// Whole floats print without a fractional part, nil prints as "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToStringRows converts a grid of loosely typed values, such as a decoded
// JSON value range, into rows of strings.
func ToStringRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, cells := range values {
		row := make([]string, len(cells))
		for j, cell := range cells {
			row[j] = ToString(cell)
		}
		rows[i] = row
	}
	return rows
}
