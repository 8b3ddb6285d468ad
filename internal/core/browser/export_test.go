package browser

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func selectedBrowser(t *testing.T, file string) *Browser {
	t.Helper()
	b := New(nil)
	b.Load(sampleOrders())
	require.True(t, b.Select(file))
	return b
}

func TestExportTabularScenario(t *testing.T) {
	b := selectedBrowser(t, "email1.json")
	exp, ok := b.ExportTabular()
	require.True(t, ok)
	assert.Equal(t, "email1.json.csv", exp.Filename)
	assert.Equal(t, "Product, Quantity\nMilk,2\nMilk,3\nEggs,1", string(exp.Data))
}

func TestExportTabularQuotesSpecialFields(t *testing.T) {
	items := []LineItem{{`Cheese, "aged"`, 1}, {"Line\nBreak", 2}}
	data := TabularItems(items)

	lines := strings.SplitN(string(data), "\n", 2)
	require.Len(t, lines, 2)
	assert.Equal(t, "Product, Quantity", lines[0])

	records, err := csv.NewReader(strings.NewReader(lines[1])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{`Cheese, "aged"`, "1"}, {"Line\nBreak", "2"}}, records)
}

func TestExportTabularNoItems(t *testing.T) {
	assert.Equal(t, "Product, Quantity\n", string(TabularItems(nil)))
}

func TestExportStructured(t *testing.T) {
	b := selectedBrowser(t, "email5.json")
	exp, ok := b.ExportStructured()
	require.True(t, ok)
	assert.Equal(t, "email5.json.json", exp.Filename)
	want := "[\n  {\n    \"product\": \"Apples\",\n    \"quantity\": 4\n  }\n]"
	assert.Equal(t, want, string(exp.Data))
}

func TestMarshalItemsKeepsHTMLAndEmptyList(t *testing.T) {
	assert.Equal(t, "[]", string(MarshalItems(nil)))
	assert.Contains(t, string(MarshalItems([]LineItem{{"Salt & Pepper", 1}})), `"Salt & Pepper"`)
}

func TestExportsWithoutSelectionAreNoOps(t *testing.T) {
	b := New(nil)
	b.Load(sampleOrders())

	_, ok := b.ExportStructured()
	assert.False(t, ok)
	_, ok = b.ExportTabular()
	assert.False(t, ok)
	_, ok = b.ExportMarkdown()
	assert.False(t, ok)
	_, ok, err := b.ExportSpreadsheet()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestExportSpreadsheet(t *testing.T) {
	b := selectedBrowser(t, "email1.json")
	exp, ok, err := b.ExportSpreadsheet()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "email1.json.xlsx", exp.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(exp.Data))
	require.NoError(t, err)
	defer f.Close()

	items, err := f.GetRows("Items")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Product", "Quantity"}, {"Milk", "2"}, {"Milk", "3"}, {"Eggs", "1"}}, items)

	totals, err := f.GetRows("Totals")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Product", "Quantity"}, {"Milk", "5"}, {"Eggs", "1"}}, totals)
}

func TestExportMarkdown(t *testing.T) {
	b := selectedBrowser(t, "email1.json")
	exp, ok := b.ExportMarkdown()
	require.True(t, ok)
	md := string(exp.Data)
	assert.Equal(t, "email1.json.md", exp.Filename)
	assert.True(t, strings.HasPrefix(md, "# Blue Willow Catering\n"))
	assert.Contains(t, md, "| Milk | 5 |")
	assert.Contains(t, md, "3 item(s), 6 unit(s) total.")
}

func TestMarkdownEscapesPipes(t *testing.T) {
	md := MarkdownSummary("x.json", Order{File: "x.json", Items: []LineItem{{"a|b", 1}}})
	assert.Contains(t, md, `| a\|b | 1 |`)
	assert.NotContains(t, md, "_x.json_")
}
