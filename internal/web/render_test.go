package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollos/internal/domain"
)

func TestRenderer_AllViews(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	data := map[string]any{
		ViewHome:       nil,
		ViewPromotions: nil,
		ViewAbout:      nil,
		ViewContact:    nil,
		ViewMenu:       MenuData{},
		ViewHistory:    HistoryData{},
	}

	for name, d := range data {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, name, Page{Title: name, Data: d})
		require.NoError(t, err, name)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "Pollos El Rey")
	}
}

func TestRenderer_HistoryListsOrders(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, ViewHistory, Page{
		Title: "Mis pedidos",
		Data: HistoryData{
			Phone: "5551234",
			Orders: []domain.Order{{
				ID: "abc", CustomerName: "Ana Lopez", Product: "Combo", Price: 8.5,
				Status: domain.OrderStatusPending, CreatedAt: time.Now(), Comment: "Sin cebolla",
			}},
		},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, `action="/guardar_comentario/abc"`)
	assert.Contains(t, body, "$8.50")
	assert.Contains(t, body, "Sin cebolla")
	assert.Contains(t, body, `value="5551234"`)
}

func TestRenderer_EscapesFlashes(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, ViewHome, Page{
		Flashes: []Flash{{Category: FlashWarning, Message: "<script>x</script>"}},
	})
	require.NoError(t, err)

	assert.Contains(t, rec.Body.String(), `class="flash flash-warning"`)
	assert.NotContains(t, rec.Body.String(), "<script>x</script>")
}

func TestRenderer_UnknownView(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, "admin", Page{})
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())
}
