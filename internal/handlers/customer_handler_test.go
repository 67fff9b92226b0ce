package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
	"github.com/jasperjas06/live-sub000/internal/services"
)

type mockCustomerRepo struct {
	repository.CustomerRepository
	mockList       func(ctx context.Context, filter repository.ListFilter) ([]models.Customer, error)
	mockFindByID   func(ctx context.Context, id uint) (*models.Customer, error)
	mockSoftDelete func(ctx context.Context, id uint) error
}

func (m *mockCustomerRepo) List(ctx context.Context, filter repository.ListFilter) ([]models.Customer, error) {
	return m.mockList(ctx, filter)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockCustomerRepo) SoftDelete(ctx context.Context, id uint) error {
	return m.mockSoftDelete(ctx, id)
}

func seedCustomers() []models.Customer {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	names := []string{"Anand Rao", "Bhavna Shah", "Chitra Nair", "Deepak Anand", "Esha Verma", "Farid Khan", "Gita Pillai"}
	customers := make([]models.Customer, 0, len(names))
	for i, name := range names {
		customers = append(customers, models.Customer{
			ID:        uint(i + 1),
			Name:      name,
			Phone:     fmt.Sprintf("99000000%02d", i),
			Identity:  fmt.Sprintf("AADH0000000%02d", i),
			CreatedAt: base.AddDate(0, 0, i),
		})
	}
	return customers
}

func newCustomerRouter(repo *mockCustomerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewCustomerService(repo, nil, nil, services.NewAuditService(nil))
	h := NewCustomerHandler(svc, services.NewExportService())

	r := gin.New()
	r.GET("/customers", h.Index)
	r.DELETE("/customers/:id", h.Destroy)
	return r
}

func TestCustomerIndexSearchFiltersByName(t *testing.T) {
	repo := &mockCustomerRepo{
		mockList: func(ctx context.Context, filter repository.ListFilter) ([]models.Customer, error) {
			return seedCustomers(), nil
		},
	}
	router := newCustomerRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers?search=anand", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Rows       []models.CustomerResponse `json:"rows"`
			Empty      bool                      `json:"empty"`
			Pagination struct {
				Page      int `json:"page"`
				TotalRows int `json:"total_rows"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Substring match is case-insensitive: "Anand Rao" and "Deepak Anand".
	assert.Equal(t, 2, resp.Data.Pagination.TotalRows)
	assert.Len(t, resp.Data.Rows, 2)
	assert.False(t, resp.Data.Empty)
}

func TestCustomerIndexPaginationAndSort(t *testing.T) {
	repo := &mockCustomerRepo{
		mockList: func(ctx context.Context, filter repository.ListFilter) ([]models.Customer, error) {
			return seedCustomers(), nil
		},
	}
	router := newCustomerRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers?limit=5&page=1&sort=name&dir=desc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Rows       []models.CustomerResponse `json:"rows"`
			Pagination struct {
				Page       int `json:"page"`
				PageSize   int `json:"page_size"`
				TotalRows  int `json:"total_rows"`
				TotalPages int `json:"total_pages"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Data.Pagination.Page)
	assert.Equal(t, 5, resp.Data.Pagination.PageSize)
	assert.Equal(t, 7, resp.Data.Pagination.TotalRows)
	assert.Equal(t, 2, resp.Data.Pagination.TotalPages)

	// Descending by name: the last page holds the two smallest names.
	require.Len(t, resp.Data.Rows, 2)
	assert.Equal(t, "Bhavna Shah", resp.Data.Rows[0].Name)
	assert.Equal(t, "Anand Rao", resp.Data.Rows[1].Name)
}

func TestCustomerIndexEmptyState(t *testing.T) {
	repo := &mockCustomerRepo{
		mockList: func(ctx context.Context, filter repository.ListFilter) ([]models.Customer, error) {
			return nil, nil
		},
	}
	router := newCustomerRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Empty bool `json:"empty"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Empty)
}

func TestCustomerDestroySoftDeletes(t *testing.T) {
	deleted := 0
	repo := &mockCustomerRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Customer, error) {
			return &models.Customer{ID: id, Name: "Anand Rao"}, nil
		},
		mockSoftDelete: func(ctx context.Context, id uint) error {
			deleted++
			return nil
		},
	}
	router := newCustomerRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/customers/1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, deleted)
}
