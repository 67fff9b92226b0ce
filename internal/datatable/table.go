// Package datatable implements the in-memory listing engine shared by every
// list screen of the back office: single-field search, single-column sort and
// fixed-size pagination over a uniformly shaped record set. The engine holds
// no global state and performs no I/O; callers feed it rows and read back the
// visible page.
package datatable

import (
	"fmt"
	"sort"
	"strings"
)

// Row is the minimal capability a record needs to be listed.
type Row interface {
	RowID() string
}

// Direction is the active sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String implements fmt.Stringer for Direction
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Column describes one table column. Value is a typed accessor into the row;
// columns without an accessor render nothing and cannot be sorted on.
type Column[T Row] struct {
	Key      string
	Label    string
	Sortable bool
	Width    int
	Value    func(T) any
}

// Options configures a table instance.
type Options[T Row] struct {
	Columns []Column[T]

	// SearchBy is the single searchable field accessor. Leave nil or set
	// DisableSearch to turn searching off entirely.
	SearchBy      func(T) any
	DisableSearch bool

	// DisablePagination trusts the caller to have sliced the data already
	// (server-side paging); the table then renders all supplied rows.
	DisablePagination bool

	// PreserveOrder skips sorting for callers that pre-sort upstream.
	PreserveOrder bool

	// PageSizes are the selectable page sizes. Defaults to 5/10/25; the
	// first entry is the initial page size.
	PageSizes []int
}

// DefaultPageSizes are the page size choices offered when none are configured.
var DefaultPageSizes = []int{5, 10, 25}

// Table is one list-screen instance. State is the combination of sort column,
// sort direction, search term, current page and page size; the transition
// methods below are the only way it changes.
type Table[T Row] struct {
	opts Options[T]
	rows []T

	sortKey    string
	sortDir    Direction
	searchTerm string
	page       int // zero-indexed
	pageSize   int
}

// New creates a table over the supplied rows.
func New[T Row](rows []T, opts Options[T]) *Table[T] {
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = DefaultPageSizes
	}
	return &Table[T]{
		opts:     opts,
		rows:     rows,
		pageSize: opts.PageSizes[0],
	}
}

// Replace swaps the backing rows, keeping search/sort/page state. Used when a
// refetch completes for the same screen.
func (t *Table[T]) Replace(rows []T) {
	t.rows = rows
}

// SetSort activates sorting on a column. Repeated calls on the same column
// toggle ascending and descending; a different column resets to ascending.
// There is no "unsorted" state once a sort is active. Unknown or unsortable
// columns are ignored.
func (t *Table[T]) SetSort(key string) {
	col := t.column(key)
	if col == nil || !col.Sortable {
		return
	}
	if t.sortKey == key {
		if t.sortDir == Ascending {
			t.sortDir = Descending
		} else {
			t.sortDir = Ascending
		}
		return
	}
	t.sortKey = key
	t.sortDir = Ascending
}

// SetSearch replaces the search term and resets to the first page.
func (t *Table[T]) SetSearch(term string) {
	t.searchTerm = term
	t.page = 0
}

// SetPage moves to a page. Out-of-range pages are clamped; the pagination
// control never exposes them, but query-string input can still carry one.
func (t *Table[T]) SetPage(n int) {
	if n < 0 {
		n = 0
	}
	if max := t.PageCount() - 1; max >= 0 && n > max {
		n = max
	}
	t.page = n
}

// SetPageSize changes the page size and resets to the first page.
func (t *Table[T]) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	t.pageSize = n
	t.page = 0
}

// SortKey returns the active sort column key, empty when unsorted.
func (t *Table[T]) SortKey() string { return t.sortKey }

// SortDirection returns the active sort direction.
func (t *Table[T]) SortDirection() Direction { return t.sortDir }

// SearchTerm returns the active search term.
func (t *Table[T]) SearchTerm() string { return t.searchTerm }

// CurrentPage returns the zero-indexed current page.
func (t *Table[T]) CurrentPage() int { return t.page }

// PageSize returns the active page size.
func (t *Table[T]) PageSize() int { return t.pageSize }

// PageSizes returns the selectable page sizes.
func (t *Table[T]) PageSizes() []int { return t.opts.PageSizes }

// Columns returns the ordered column descriptors.
func (t *Table[T]) Columns() []Column[T] { return t.opts.Columns }

// FilteredCount returns the row count after search filtering.
func (t *Table[T]) FilteredCount() int {
	return len(t.filtered())
}

// PageCount returns the number of pages the pagination control may expose.
func (t *Table[T]) PageCount() int {
	if t.opts.DisablePagination {
		return 1
	}
	n := t.FilteredCount()
	if n == 0 {
		return 0
	}
	return (n + t.pageSize - 1) / t.pageSize
}

// Page is the visible slice of the table plus the figures the pagination
// control renders. Empty is set when the filtered result has no rows, so the
// host renders a single full-width informational row instead of a bare body.
type Page[T Row] struct {
	Rows       []T
	Empty      bool
	PageIndex  int
	PageSize   int
	TotalRows  int
	TotalPages int
}

// VisiblePage applies search, sort and pagination and returns the rows the
// current state displays.
func (t *Table[T]) VisiblePage() Page[T] {
	rows := t.filtered()

	if !t.opts.PreserveOrder && t.sortKey != "" {
		rows = t.sorted(rows)
	}

	total := len(rows)
	page := Page[T]{
		PageIndex:  t.page,
		PageSize:   t.pageSize,
		TotalRows:  total,
		TotalPages: t.PageCount(),
		Empty:      total == 0,
	}

	if t.opts.DisablePagination {
		page.Rows = rows
		return page
	}

	start := t.page * t.pageSize
	if start >= total {
		page.Rows = nil
		return page
	}
	end := start + t.pageSize
	if end > total {
		end = total
	}
	page.Rows = rows[start:end]
	return page
}

// Cells renders one row through the column accessors, in column order. The
// export writers consume this so files carry exactly the displayed values.
func (t *Table[T]) Cells(row T) []any {
	cells := make([]any, len(t.opts.Columns))
	for i, col := range t.opts.Columns {
		if col.Value != nil {
			cells[i] = col.Value(row)
		}
	}
	return cells
}

func (t *Table[T]) column(key string) *Column[T] {
	for i := range t.opts.Columns {
		if t.opts.Columns[i].Key == key {
			return &t.opts.Columns[i]
		}
	}
	return nil
}

func (t *Table[T]) filtered() []T {
	if t.opts.DisableSearch || t.opts.SearchBy == nil || t.searchTerm == "" {
		return t.rows
	}
	needle := strings.ToLower(t.searchTerm)
	var out []T
	for _, row := range t.rows {
		haystack := strings.ToLower(stringify(t.opts.SearchBy(row)))
		if strings.Contains(haystack, needle) {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table[T]) sorted(rows []T) []T {
	col := t.column(t.sortKey)
	if col == nil || col.Value == nil {
		return rows
	}
	out := make([]T, len(rows))
	copy(out, rows)
	// Stable sort: equal keys keep input order, no secondary key.
	sort.SliceStable(out, func(i, j int) bool {
		c := compareValues(col.Value(out[i]), col.Value(out[j]))
		if t.sortDir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// compareValues orders two cell values: numerically when both sides are
// numbers, lexicographically on their string forms otherwise.
func compareValues(a, b any) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
