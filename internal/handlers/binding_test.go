package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "nested structure",
			key:      "customer",
			body:     `{"customer": {"name": "A Kumar", "amount": 5000}}`,
			expected: bindTarget{Name: "A Kumar", Amount: 5000},
		},
		{
			name:     "flat structure",
			key:      "customer",
			body:     `{"name": "B Singh", "amount": 2500}`,
			expected: bindTarget{Name: "B Singh", Amount: 2500},
		},
		{
			name:     "missing key falls back to flat",
			key:      "customer",
			body:     `{"other": "value", "name": "C Rao", "amount": 100}`,
			expected: bindTarget{Name: "C Rao", Amount: 100},
		},
		{
			name:        "flat with wrong field type",
			key:         "customer",
			body:        `{"name": "D", "amount": "much"}`,
			expectError: true,
		},
		{
			name:        "nested with wrong field type",
			key:         "customer",
			body:        `{"customer": {"amount": "much"}}`,
			expectError: true,
		},
		{
			name:        "nested key holds a scalar",
			key:         "customer",
			body:        `{"customer": "not an object"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
