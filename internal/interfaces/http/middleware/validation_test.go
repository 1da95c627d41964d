package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicehub/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	// Verify the validator is configured
	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestFormatValidationErrors(t *testing.T) {
	type TestStruct struct {
		Email string `json:"email" binding:"required,email"`
		Age   int    `json:"age" binding:"required,min=18"`
	}

	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req TestStruct
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("returns validation errors for invalid input", func(t *testing.T) {
		body := strings.NewReader(`{"email": "invalid", "age": 10}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)

		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "Request validation failed")
		assert.Contains(t, resp.Error.Message, "email")
		assert.Contains(t, resp.Error.Message, "age")
	})

	t.Run("uses json tag names for fields", func(t *testing.T) {
		body := strings.NewReader(`{"age": 25}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "email: This field is required")
	})

	t.Run("returns success for valid input", func(t *testing.T) {
		body := strings.NewReader(`{"email": "test@example.com", "age": 25}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type TestStruct struct {
		Required string `binding:"required"`
		Email    string `binding:"email"`
		Min      string `binding:"min=5"`
		Max      string `binding:"max=10"`
		Len      string `binding:"len=5"`
		UUID     string `binding:"uuid"`
		OneOf    string `binding:"oneof=a b c"`
		URL      string `binding:"url"`
	}

	v := validator.New()
	v.SetTagName("binding")

	tests := []struct {
		field    string
		expected string
	}{
		{"Required", "This field is required"},
		{"Email", "Invalid email format"},
		{"Min", "Must be at least 5 characters"},
		{"Len", "Must be exactly 5 characters"},
		{"UUID", "Invalid UUID format"},
		{"OneOf", "Must be one of: a b c"},
		{"URL", "Invalid URL format"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			obj := TestStruct{Email: "invalid", Min: "ab", UUID: "invalid", OneOf: "d", URL: "invalid", Len: "ab"}
			err := v.Struct(obj)
			require.Error(t, err)
			validationErrs := err.(validator.ValidationErrors)
			for _, e := range validationErrs {
				if e.Field() == tt.field {
					assert.Equal(t, tt.expected, getValidationMessage(e))
					return
				}
			}
			t.Fatalf("no validation error raised for field %s", tt.field)
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	type Input struct {
		Name string `json:"name" binding:"required"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var input Input
		if err := c.ShouldBindJSON(&input); err != nil {
			HandleValidationError(c, err)
			return
		}
	})

	body := strings.NewReader(`{}`)
	req := httptest.NewRequest("POST", "/test", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
