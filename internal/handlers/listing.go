package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/datatable"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

// TableQuery carries the list-screen query parameters shared by every index
// endpoint: zero-indexed page, single-field search term, page size and a
// sort column. Sorting toggles server-side exactly as it would in the UI,
// so the client just re-sends the same sort key to flip direction.
type TableQuery struct {
	Page      int
	Search    string
	Limit     int
	Sort      string
	SortTwice bool
	Tab       string
}

// parseTableQuery reads the shared list parameters from the request
func parseTableQuery(c *gin.Context) TableQuery {
	q := TableQuery{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Tab:    c.Query("tab"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	// dir=desc asks for a second toggle on the same column
	q.SortTwice = c.Query("dir") == "desc"
	return q
}

// runTable feeds a row set through the datatable engine with the request's
// query state applied, in the same order the UI applies it: page size and
// search first (both reset the page), then sort, then the page selection.
func runTable[T datatable.Row](rows []T, opts datatable.Options[T], q TableQuery) datatable.Page[T] {
	table := datatable.New(rows, opts)

	if q.Limit > 0 {
		table.SetPageSize(q.Limit)
	}
	if q.Search != "" {
		table.SetSearch(q.Search)
	}
	if q.Sort != "" {
		table.SetSort(q.Sort)
		if q.SortTwice {
			table.SetSort(q.Sort)
		}
	}
	if q.Page > 0 {
		table.SetPage(q.Page)
	}

	return table.VisiblePage()
}

// tablePayload shapes a visible page for the response envelope
func tablePayload[T datatable.Row](page datatable.Page[T]) gin.H {
	return gin.H{
		"rows":  page.Rows,
		"empty": page.Empty,
		"pagination": gin.H{
			"page":        page.PageIndex,
			"page_size":   page.PageSize,
			"total_rows":  page.TotalRows,
			"total_pages": page.TotalPages,
		},
	}
}

// listFilter maps the coarse SQL-level filters from the request. The tab
// parameter narrows by status the way the UI's status tabs do.
func listFilter(c *gin.Context) repository.ListFilter {
	filter := repository.ListFilter{
		Status:     c.Query("status"),
		RecordType: c.Query("type"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
	}
	if tab := c.Query("tab"); tab != "" && tab != "all" {
		filter.Status = tab
	}
	if projectID, err := strconv.ParseUint(c.Query("project_id"), 10, 32); err == nil {
		filter.ProjectID = uint(projectID)
	}
	if customerID, err := strconv.ParseUint(c.Query("customer_id"), 10, 32); err == nil {
		filter.CustomerID = uint(customerID)
	}
	return filter
}

// exportCells flattens the table's full filtered row set into header labels
// and cell values, so file exports carry exactly the displayed columns.
func exportCells[T datatable.Row](rows []T, opts datatable.Options[T], q TableQuery) ([]string, [][]any) {
	opts.DisablePagination = true
	table := datatable.New(rows, opts)
	if q.Search != "" {
		table.SetSearch(q.Search)
	}
	if q.Sort != "" {
		table.SetSort(q.Sort)
		if q.SortTwice {
			table.SetSort(q.Sort)
		}
	}

	headers := make([]string, 0, len(opts.Columns))
	for _, col := range opts.Columns {
		headers = append(headers, col.Label)
	}

	page := table.VisiblePage()
	cells := make([][]any, 0, len(page.Rows))
	for _, row := range page.Rows {
		cells = append(cells, table.Cells(row))
	}
	return headers, cells
}
