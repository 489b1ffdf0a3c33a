package report

import (
	"fmt"
	"slices"
	"strings"
)

// Format is an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)

var formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatCSV}

// ParseFormat validates s; the empty string means FormatTable.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatTable, nil
	}
	f := Format(strings.ToLower(s))
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf("unknown output format %q", s)
	}
	return f, nil
}
