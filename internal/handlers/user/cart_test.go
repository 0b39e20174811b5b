package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"cioccolato_back_end/internal/cart"
)

// stubKV remplace Redis pour les tests de handlers : une map protégée, pas de
// pub/sub réel.
type stubKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newStubKV() *stubKV { return &stubKV{data: map[string]string{}} }

func (s *stubKV) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *stubKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *stubKV) Publish(_ context.Context, _, _ string) error { return nil }

func (s *stubKV) Subscribe(_ context.Context, _ string) (<-chan string, func()) {
	ch := make(chan string)
	return ch, func() { close(ch) }
}

// newCartRouter monte les routes panier sur un KV de test, avec un utilisateur
// déjà authentifié dans le contexte (vide = non connecté).
func newCartRouter(t *testing.T, kv cart.KV, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := newCartKV
	newCartKV = func() cart.KV { return kv }
	t.Cleanup(func() { newCartKV = prev })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
	})
	r.GET("/api/cart", GetCart)
	r.PATCH("/api/cart/:id", UpdateCartQuantity)
	r.DELETE("/api/cart/:id", RemoveFromCart)
	r.DELETE("/api/cart", ClearCart)
	return r
}

const seededCart = `[{"id":"p1","nome":"Boeri","prezzo":5,"immagine":"/b.webp","qty":2}]`

func TestGetCartReturnsPersistedLines(t *testing.T) {
	kv := newStubKV()
	kv.Set(context.Background(), cart.KeyPrefix+"u1", seededCart)
	r := newCartRouter(t, kv, "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []struct {
			ID  string `json:"id"`
			Qty int    `json:"qty"`
		} `json:"items"`
		TotalQuantity int     `json:"total_quantity"`
		TotalAmount   float64 `json:"total_amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "p1" || resp.Items[0].Qty != 2 {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
	if resp.TotalQuantity != 2 || resp.TotalAmount != 10 {
		t.Fatalf("unexpected totals: qty=%d amount=%.2f", resp.TotalQuantity, resp.TotalAmount)
	}
}

func TestGetCartWithoutUserIsUnauthorized(t *testing.T) {
	r := newCartRouter(t, newStubKV(), "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUpdateCartQuantityClampsToOne(t *testing.T) {
	kv := newStubKV()
	kv.Set(context.Background(), cart.KeyPrefix+"u1", seededCart)
	r := newCartRouter(t, kv, "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/cart/p1", strings.NewReader(`{"qty":0}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []struct {
			Qty int `json:"qty"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Qty != 1 {
		t.Fatalf("qty=0 must clamp to 1, got %+v", resp.Items)
	}
}

func TestRemoveFromCartPushesToast(t *testing.T) {
	kv := newStubKV()
	kv.Set(context.Background(), cart.KeyPrefix+"u1", seededCart)
	r := newCartRouter(t, kv, "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/cart/p1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []json.RawMessage `json:"items"`
		Toast struct {
			Message string `json:"message"`
		} `json:"toast"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty cart after removal, got %d items", len(resp.Items))
	}
	if resp.Toast.Message != "Boeri retiré du panier" {
		t.Fatalf("unexpected toast message: %q", resp.Toast.Message)
	}
}

func TestClearCartPersistsEmptyArray(t *testing.T) {
	kv := newStubKV()
	kv.Set(context.Background(), cart.KeyPrefix+"u1", seededCart)
	r := newCartRouter(t, kv, "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	raw, _ := kv.Get(context.Background(), cart.KeyPrefix+"u1")
	if raw != "[]" {
		t.Fatalf("expected persisted empty array after clear, got %q", raw)
	}
}
