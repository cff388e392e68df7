// Package report renders count summaries as aligned plain text or a
// Markdown table. Its output format is pinned by golden files; see
// golden_test.go for that lesson.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Row is one labelled count in a report.
type Row struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Report is a titled list of rows.
type Report struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Total returns the sum of all row counts.
func (r Report) Total() int64 {
	var total int64
	for _, row := range r.Rows {
		total += row.Count
	}
	return total
}

const totalLabel = "TOTAL"

// Render writes the report as aligned plain text: an underlined title, one
// line per row with right-aligned counts, and a total line. An untitled
// report renders as "Report".
func Render(w io.Writer, r Report) error {
	title := r.Title
	if title == "" {
		title = "Report"
	}

	underline := strings.Repeat("=", utf8.RuneCountInString(title))
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, underline); err != nil {
		return err
	}

	if len(r.Rows) == 0 {
		_, err := io.WriteString(w, "(no data)\n")
		return err
	}

	labelWidth := utf8.RuneCountInString(totalLabel)
	countWidth := 0
	for _, row := range r.Rows {
		if n := utf8.RuneCountInString(row.Label); n > labelWidth {
			labelWidth = n
		}
		if n := len(fmt.Sprintf("%d", row.Count)); n > countWidth {
			countWidth = n
		}
	}
	if n := len(fmt.Sprintf("%d", r.Total())); n > countWidth {
		countWidth = n
	}

	for _, row := range r.Rows {
		if _, err := fmt.Fprintf(w, "%-*s  %*d\n", labelWidth, row.Label, countWidth, row.Count); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%-*s  %*d\n", labelWidth, totalLabel, countWidth, r.Total())
	return err
}

// RenderMarkdown writes the report as a Markdown table with a bold total
// row. An untitled report renders as "Report".
func RenderMarkdown(w io.Writer, r Report) error {
	title := r.Title
	if title == "" {
		title = "Report"
	}

	if _, err := fmt.Fprintf(w, "# %s\n\n", title); err != nil {
		return err
	}

	if len(r.Rows) == 0 {
		_, err := io.WriteString(w, "_no data_\n")
		return err
	}

	if _, err := io.WriteString(w, "| Label | Count |\n| --- | ---: |\n"); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if _, err := fmt.Fprintf(w, "| %s | %d |\n", row.Label, row.Count); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "| **Total** | **%d** |\n", r.Total())
	return err
}
