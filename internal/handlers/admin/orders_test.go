package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newOrderRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/admin/orders", ListAllOrders)
	r.PATCH("/api/admin/orders/:id/status", UpdateOrderStatus)
	return r
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	r := newOrderRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch,
		"/api/admin/orders/7a5bfc2e-43a5-4f0b-9e14-2b7a6de61c01/status",
		strings.NewReader(`{"status":"teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Statut inconnu") {
		t.Fatalf("expected explicit status error, got %s", w.Body.String())
	}
}

func TestUpdateOrderStatusRejectsInvalidID(t *testing.T) {
	r := newOrderRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/not-a-uuid/status",
		strings.NewReader(`{"status":"shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", w.Code)
	}
}

func TestListAllOrdersRejectsUnknownStatusFilter(t *testing.T) {
	r := newOrderRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders?status=bogus", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status filter, got %d: %s", w.Code, w.Body.String())
	}
}
