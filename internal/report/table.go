package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// ColorFunc maps a raw cell value to its coloured form.
type ColorFunc func(value string) string

type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
}

// Table renders aligned text tables. Widths are measured on the raw cell
// values so ANSI escapes never skew the layout.
type Table struct {
	columns []Column
	rows    [][]cell
}

type cell struct {
	raw     string
	display string
}

func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row; missing values are empty and extra values are ignored.
func (t *Table) AddRow(values ...string) {
	row := make([]cell, len(t.columns))
	for i := range row {
		if i < len(values) {
			row[i] = cell{raw: values[i]}
		}
	}
	t.rows = append(t.rows, row)
}

// AddStyledRow appends a row whose cells carry a pre-rendered display form.
// raw and display must have the same length.
func (t *Table) AddStyledRow(raw, display []string) {
	row := make([]cell, len(t.columns))
	for i := range row {
		if i < len(raw) {
			row[i] = cell{raw: raw[i]}
			if i < len(display) {
				row[i].display = display[i]
			}
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}
	for _, row := range t.rows {
		for i, c := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(c.raw))
		}
	}

	header := make([]string, len(t.columns))
	sep := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = pad(colorBold.Sprint(col.Header), col.Header, widths[i], col.Align)
		sep[i] = strings.Repeat("-", widths[i])
	}
	if err := writeLine(w, header); err != nil {
		return err
	}
	if err := writeLine(w, sep); err != nil {
		return err
	}

	for _, row := range t.rows {
		parts := make([]string, len(t.columns))
		for i, col := range t.columns {
			c := row[i]
			display := c.raw
			switch {
			case c.display != "":
				display = c.display
			case col.Color != nil:
				display = col.Color(c.raw)
			}
			parts[i] = pad(display, c.raw, widths[i], col.Align)
		}
		if err := writeLine(w, parts); err != nil {
			return err
		}
	}
	return nil
}

func pad(display, raw string, width int, align Alignment) string {
	n := max(0, width-utf8.RuneCountInString(raw))
	if align == AlignRight {
		return strings.Repeat(" ", n) + display
	}
	return display + strings.Repeat(" ", n)
}

func writeLine(w io.Writer, parts []string) error {
	if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
