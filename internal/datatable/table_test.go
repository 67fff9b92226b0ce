package datatable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID     string
	Name   string
	Amount float64
}

func (r testRow) RowID() string { return r.ID }

func testColumns() []Column[testRow] {
	return []Column[testRow]{
		{Key: "name", Label: "Name", Sortable: true, Value: func(r testRow) any { return r.Name }},
		{Key: "amount", Label: "Amount", Sortable: true, Value: func(r testRow) any { return r.Amount }},
		{Key: "id", Label: "ID", Value: func(r testRow) any { return r.ID }},
	}
}

func sampleRows() []testRow {
	return []testRow{
		{ID: "1", Name: "Ravi", Amount: 5000},
		{ID: "2", Name: "Anita", Amount: 12000},
		{ID: "3", Name: "Suresh", Amount: 800},
		{ID: "4", Name: "Meena", Amount: 12000},
		{ID: "5", Name: "arun", Amount: 950},
	}
}

func newTestTable(rows []testRow) *Table[testRow] {
	return New(rows, Options[testRow]{
		Columns:  testColumns(),
		SearchBy: func(r testRow) any { return r.Name },
	})
}

func names(rows []testRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestSortToggling(t *testing.T) {
	table := newTestTable(sampleRows())

	// First click sorts ascending
	table.SetSort("amount")
	assert.Equal(t, "amount", table.SortKey())
	assert.Equal(t, Ascending, table.SortDirection())
	page := table.VisiblePage()
	assert.Equal(t, []string{"Suresh", "arun", "Ravi", "Anita", "Meena"}, names(page.Rows))

	// Second click on the same column flips to descending
	table.SetSort("amount")
	assert.Equal(t, Descending, table.SortDirection())

	// Third click flips back to ascending, never to "unsorted"
	table.SetSort("amount")
	assert.Equal(t, Ascending, table.SortDirection())

	// A different column resets to ascending
	table.SetSort("amount")
	table.SetSort("name")
	assert.Equal(t, "name", table.SortKey())
	assert.Equal(t, Ascending, table.SortDirection())
}

func TestSortUnknownOrUnsortableColumnIgnored(t *testing.T) {
	table := newTestTable(sampleRows())
	table.SetSort("nope")
	assert.Equal(t, "", table.SortKey())

	// "id" exists but is not sortable
	table.SetSort("id")
	assert.Equal(t, "", table.SortKey())
}

func TestStableSortKeepsInputOrderOnTies(t *testing.T) {
	table := newTestTable(sampleRows())
	table.SetSort("amount")
	page := table.VisiblePage()
	// Anita (row 2) and Meena (row 4) both carry 12000; input order holds.
	assert.Equal(t, "Anita", page.Rows[3].Name)
	assert.Equal(t, "Meena", page.Rows[4].Name)
}

func TestSearchIsCaseInsensitiveAndIdempotent(t *testing.T) {
	table := newTestTable(sampleRows())
	table.SetPage(0)

	table.SetSearch("AR")
	first := table.VisiblePage()
	assert.Equal(t, []string{"arun"}, names(first.Rows))

	// Re-filtering with the same term yields the identical result set
	table.SetSearch("AR")
	second := table.VisiblePage()
	assert.Equal(t, names(first.Rows), names(second.Rows))
}

func TestSearchResetsCurrentPage(t *testing.T) {
	rows := make([]testRow, 30)
	for i := range rows {
		rows[i] = testRow{ID: fmt.Sprint(i), Name: fmt.Sprintf("Customer %02d", i)}
	}
	table := newTestTable(rows)

	table.SetPage(3)
	require.Equal(t, 3, table.CurrentPage())

	table.SetSearch("Customer")
	assert.Equal(t, 0, table.CurrentPage())
}

func TestEmptySearchReturnsUnfilteredSet(t *testing.T) {
	table := newTestTable(sampleRows())
	table.SetSearch("")
	assert.Equal(t, 5, table.FilteredCount())
}

func TestPaginationBoundary(t *testing.T) {
	tests := []struct {
		name         string
		rowCount     int
		pageSize     int
		wantPages    int
		wantLastRows int
	}{
		{name: "remainder on last page", rowCount: 12, pageSize: 5, wantPages: 3, wantLastRows: 2},
		{name: "exact multiple fills last page", rowCount: 10, pageSize: 5, wantPages: 2, wantLastRows: 5},
		{name: "single partial page", rowCount: 3, pageSize: 10, wantPages: 1, wantLastRows: 3},
		{name: "no rows", rowCount: 0, pageSize: 5, wantPages: 0, wantLastRows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]testRow, tt.rowCount)
			for i := range rows {
				rows[i] = testRow{ID: fmt.Sprint(i), Name: fmt.Sprintf("Row %d", i)}
			}
			table := newTestTable(rows)
			table.SetPageSize(tt.pageSize)

			assert.Equal(t, tt.wantPages, table.PageCount())

			if tt.wantPages > 0 {
				table.SetPage(tt.wantPages - 1)
				page := table.VisiblePage()
				assert.Len(t, page.Rows, tt.wantLastRows)
			}

			// Pages beyond the last are not reachable
			table.SetPage(tt.wantPages + 5)
			if tt.wantPages > 0 {
				assert.Equal(t, tt.wantPages-1, table.CurrentPage())
			} else {
				assert.Equal(t, 0, table.CurrentPage())
			}
		})
	}
}

func TestSetPageSizeResetsPage(t *testing.T) {
	rows := make([]testRow, 40)
	for i := range rows {
		rows[i] = testRow{ID: fmt.Sprint(i)}
	}
	table := newTestTable(rows)
	table.SetPage(4)
	require.Equal(t, 4, table.CurrentPage())

	table.SetPageSize(10)
	assert.Equal(t, 0, table.CurrentPage())
	assert.Equal(t, 10, table.PageSize())
}

func TestDefaultPageSizes(t *testing.T) {
	table := newTestTable(sampleRows())
	assert.Equal(t, []int{5, 10, 25}, table.PageSizes())
	assert.Equal(t, 5, table.PageSize())
}

func TestDisablePaginationRendersAllRows(t *testing.T) {
	rows := make([]testRow, 23)
	for i := range rows {
		rows[i] = testRow{ID: fmt.Sprint(i)}
	}
	table := New(rows, Options[testRow]{
		Columns:           testColumns(),
		DisablePagination: true,
	})
	page := table.VisiblePage()
	assert.Len(t, page.Rows, 23)
	assert.Equal(t, 1, table.PageCount())
}

func TestPreserveOrderSkipsSorting(t *testing.T) {
	table := New(sampleRows(), Options[testRow]{
		Columns:       testColumns(),
		PreserveOrder: true,
	})
	table.SetSort("amount")
	page := table.VisiblePage()
	assert.Equal(t, []string{"Ravi", "Anita", "Suresh", "Meena", "arun"}, names(page.Rows))
}

func TestEmptyResultSetsEmptyFlag(t *testing.T) {
	table := newTestTable(sampleRows())
	table.SetSearch("no such customer")
	page := table.VisiblePage()
	assert.True(t, page.Empty)
	assert.Empty(t, page.Rows)
}

func TestCellsFollowColumnOrder(t *testing.T) {
	table := newTestTable(sampleRows())
	cells := table.Cells(testRow{ID: "9", Name: "Kavya", Amount: 750})
	assert.Equal(t, []any{"Kavya", 750.0, "9"}, cells)
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "both numeric", a: 2, b: 10, want: -1},
		{name: "mixed types fall back to strings", a: "2", b: 10, want: 1}, // "2" > "10" lexicographically
		{name: "equal strings", a: "abc", b: "abc", want: 0},
		{name: "nil stringifies empty", a: nil, b: "x", want: -1},
		{name: "float and int", a: 1.5, b: 2, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareValues(tt.a, tt.b))
		})
	}
}
