package api

import (
	"net/http/httptest"
	"strings"
	"testing"

	"arenawallet/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","password":"secret"}`))

		var body loginRequest
		require.NoError(t, decodeJSON(req, &body))
		assert.Equal(t, "a@b.com", body.Email)
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","password":"secret","extra":1}`))

		var body loginRequest
		err := decodeJSON(req, &body)
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("failed validation", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email","password":"secret"}`))

		var body loginRequest
		err := decodeJSON(req, &body)
		assert.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestPaging(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		page, limit := paging(httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, limit)
	})

	t.Run("explicit values", func(t *testing.T) {
		page, limit := paging(httptest.NewRequest("GET", "/?page=3&limit=50", nil))
		assert.Equal(t, 3, page)
		assert.Equal(t, 50, limit)
	})

	t.Run("limit capped", func(t *testing.T) {
		page, limit := paging(httptest.NewRequest("GET", "/?page=-1&limit=500", nil))
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, limit)
	})
}

func TestRequestFilter(t *testing.T) {
	t.Run("status parsed when present", func(t *testing.T) {
		filter := requestFilter(httptest.NewRequest("GET", "/?status=pending&search=abc", nil))
		require.NotNil(t, filter.Status)
		assert.Equal(t, "pending", string(*filter.Status))
		assert.Equal(t, "abc", filter.Search)
	})

	t.Run("status omitted", func(t *testing.T) {
		filter := requestFilter(httptest.NewRequest("GET", "/", nil))
		assert.Nil(t, filter.Status)
	})
}
