package browser

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	tabularHeader = "Product, Quantity"

	itemsSheet  = "Items"
	totalsSheet = "Totals"
)

// ExportStructured renders the selected order's items as indented JSON.
// It reports false when nothing is selected.
func (b *Browser) ExportStructured() (Export, bool) {
	o, ok := b.Selected()
	if !ok {
		return Export{}, false
	}
	return Export{Filename: o.File + ".json", ContentType: "application/json", Data: MarshalItems(o.Items)}, true
}

// ExportTabular renders the selected order's raw items as comma separated
// text. It reports false when nothing is selected.
func (b *Browser) ExportTabular() (Export, bool) {
	o, ok := b.Selected()
	if !ok {
		return Export{}, false
	}
	return Export{Filename: o.File + ".csv", ContentType: "text/csv", Data: TabularItems(o.Items)}, true
}

// ExportSpreadsheet renders the selection as an XLSX workbook with the raw
// items and the per-product totals on separate sheets.
func (b *Browser) ExportSpreadsheet() (Export, bool, error) {
	o, ok := b.Selected()
	if !ok {
		return Export{}, false, nil
	}
	data, err := SpreadsheetItems(o.Items)
	if err != nil {
		return Export{}, true, err
	}
	return Export{
		Filename:    o.File + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, true, nil
}

// ExportMarkdown renders a Markdown summary of the selection.
func (b *Browser) ExportMarkdown() (Export, bool) {
	o, ok := b.Selected()
	if !ok {
		return Export{}, false
	}
	md := MarkdownSummary(b.DisplayName(o.File), o)
	return Export{Filename: o.File + ".md", ContentType: "text/markdown", Data: []byte(md)}, true
}

// MarshalItems encodes items as JSON with two-space indentation. HTML
// characters are kept verbatim and an empty list encodes as [].
func MarshalItems(items []LineItem) []byte {
	if items == nil {
		items = []LineItem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// LineItem holds only a string and an int, encoding cannot fail
	_ = enc.Encode(items)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// TabularItems renders the header line followed by one "product,quantity"
// row per item. Fields containing commas, quotes or line breaks are quoted.
func TabularItems(items []LineItem) []byte {
	var rows bytes.Buffer
	w := csv.NewWriter(&rows)
	for _, it := range items {
		// writes into a bytes.Buffer cannot fail
		_ = w.Write([]string{it.Product, fmt.Sprint(it.Quantity)})
	}
	w.Flush()

	var out bytes.Buffer
	out.WriteString(tabularHeader)
	out.WriteByte('\n')
	out.Write(bytes.TrimSuffix(rows.Bytes(), []byte("\n")))
	return out.Bytes()
}

// SpreadsheetItems builds an XLSX workbook with an Items and a Totals sheet.
func SpreadsheetItems(items []LineItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), itemsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.Product, it.Quantity})
	}
	if err := writeSheet(f, itemsSheet, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(totalsSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	totals := Aggregate(items)
	rows = rows[:0]
	for _, t := range totals {
		rows = append(rows, []any{t.Product, t.Quantity})
	}
	if err := writeSheet(f, totalsSheet, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{"Product", "Quantity"}); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// MarkdownSummary renders title, the raw items and the per-product totals
// as Markdown tables.
func MarkdownSummary(title string, o Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if title != o.File {
		fmt.Fprintf(&b, "_%s_\n\n", o.File)
	}
	fmt.Fprintf(&b, "%d item(s), %d unit(s) total.\n\n", len(o.Items), TotalQuantity(o.Items))

	b.WriteString("## Items\n\n| Product | Quantity |\n|---|---:|\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(it.Product), it.Quantity)
	}
	b.WriteString("\n## Total Product Quantities\n\n| Product | Quantity |\n|---|---:|\n")
	for _, t := range Aggregate(o.Items) {
		fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(t.Product), t.Quantity)
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
