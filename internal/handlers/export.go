package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasperjas06/live-sub000/internal/services"
)

// serveExport renders the flattened table cells in the requested file format
func serveExport(c *gin.Context, svc *services.ExportService, title string, headers []string, cells [][]any) {
	var (
		data     []byte
		filename string
		mime     string
		err      error
	)

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		data, filename, err = svc.ExportXLSX(title, headers, cells)
		mime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, filename, err = svc.ExportCSV(title, headers, cells)
		mime = "text/csv"
	default:
		respondError(c, http.StatusBadRequest, "unsupported export format")
		return
	}

	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, mime, data)
}
