package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func formatCount(value *int64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprint(*value)
}

func formatMean(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *value)
}

func formatOptional(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}
