package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"cioccolato_back_end/internal/models"
)

// memKV simule le stockage partagé entre onglets : une map et un canal de
// notification par clé.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
	subs map[string][]chan string
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}, subs: map[string][]chan string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Publish(_ context.Context, key, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs[key] {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

func (m *memKV) Subscribe(_ context.Context, key string) (<-chan string, func()) {
	ch := make(chan string, 8)
	m.mu.Lock()
	m.subs[key] = append(m.subs[key], ch)
	m.mu.Unlock()
	return ch, func() {}
}

func TestRoundTripPersistence(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()

	first := NewStore()
	Attach(ctx, kv, "u1", first)
	first.AddItem(models.CartLine{ID: "p1-9", Nome: "Gianduiotti", Prezzo: 14.5, Immagine: "/g.webp", Tipo: "9", Pezzi: 9}, 2)
	first.AddItem(models.CartLine{ID: "p2", Nome: "Tavoletta", Prezzo: 6.9, Immagine: "/t.webp"}, 1)

	// simulate un rechargement : nouveau store, même clé
	second := NewStore()
	Attach(ctx, kv, "u1", second)

	want := first.Lines()
	got := second.Lines()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d mismatch: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestHydrationFailOpenOnInvalidJSON(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()
	kv.Set(ctx, KeyPrefix+"u1", "{not valid")

	s := NewStore()
	Attach(ctx, kv, "u1", s) // ne doit pas paniquer

	if len(s.Lines()) != 0 {
		t.Fatalf("expected empty cart after invalid JSON, got %+v", s.Lines())
	}
}

func TestHydrationFailOpenOnNonArray(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()
	kv.Set(ctx, KeyPrefix+"u1", `{"id":"p1"}`)

	s := NewStore()
	Attach(ctx, kv, "u1", s)

	if len(s.Lines()) != 0 {
		t.Fatalf("expected empty cart for non-array content, got %+v", s.Lines())
	}
}

func TestWritesBeforeHydrationAreSuppressed(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()
	kv.Set(ctx, KeyPrefix+"u1", `[{"id":"saved","nome":"Cremini","prezzo":9.9,"immagine":"/c.webp","qty":1}]`)

	s := NewStore()
	s.AddItem(models.CartLine{ID: "early", Prezzo: 1}, 1) // avant hydratation : jamais persisté

	Attach(ctx, kv, "u1", s)

	lines := s.Lines()
	if len(lines) != 1 || lines[0].ID != "saved" {
		t.Fatalf("hydration must replace pre-hydration state, got %+v", lines)
	}
	raw, _ := kv.Get(ctx, KeyPrefix+"u1")
	if raw != `[{"id":"saved","nome":"Cremini","prezzo":9.9,"immagine":"/c.webp","qty":1}]` {
		t.Fatalf("saved cart was clobbered before hydration: %s", raw)
	}
}

func TestCrossTabWholesaleReplace(t *testing.T) {
	kv := newMemKV()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewStore()
	a := Attach(ctx, kv, "u1", s)
	s.AddItem(models.CartLine{ID: "p1", Nome: "Boeri", Prezzo: 5, Immagine: "/b.webp"}, 1)

	changes, stop := a.Watch(ctx)
	defer stop()

	// un autre onglet écrase la clé puis notifie
	kv.Set(ctx, KeyPrefix+"u1", `[{"id":"p2","nome":"Dragées","prezzo":3,"immagine":"/d.webp","qty":4}]`)
	kv.Publish(ctx, KeyPrefix+"u1", "updated")

	select {
	case lines := <-changes:
		if len(lines) != 1 || lines[0].ID != "p2" || lines[0].Qty != 4 {
			t.Fatalf("expected wholesale replace with [{p2 qty:4}], got %+v", lines)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cross-tab change")
	}

	// remplacement intégral : la ligne p1 pré-existante a disparu
	for _, l := range s.Lines() {
		if l.ID == "p1" {
			t.Fatalf("p1 must not survive a wholesale replace: %+v", s.Lines())
		}
	}
}

func TestCrossTabBrokenPayloadKeepsState(t *testing.T) {
	kv := newMemKV()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewStore()
	a := Attach(ctx, kv, "u1", s)
	s.AddItem(models.CartLine{ID: "p1", Prezzo: 5}, 2)

	changes, stop := a.Watch(ctx)
	defer stop()

	kv.Set(ctx, KeyPrefix+"u1", "{broken")
	kv.Publish(ctx, KeyPrefix+"u1", "updated")

	// signal ignoré : rien ne sort du canal et l'état courant est conservé
	select {
	case lines := <-changes:
		t.Fatalf("broken payload must not trigger a replace, got %+v", lines)
	case <-time.After(200 * time.Millisecond):
	}

	lines := s.Lines()
	if len(lines) != 1 || lines[0].ID != "p1" || lines[0].Qty != 2 {
		t.Fatalf("store must keep its state on broken sync payload, got %+v", lines)
	}
}

func TestWatchSnapshotsUnderSignalBursts(t *testing.T) {
	kv := newMemKV()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewStore()
	a := Attach(ctx, kv, "u1", s)

	changes, stop := a.Watch(ctx)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			kv.Set(ctx, KeyPrefix+"u1", `[{"id":"p1","prezzo":2,"qty":3}]`)
			kv.Publish(ctx, KeyPrefix+"u1", "updated")
		}
	}()

	// consomme les instantanés pendant la rafale, sans jamais relire le store
	for {
		select {
		case lines := <-changes:
			if len(lines) != 1 || lines[0].Qty != 3 || lines[0].Prezzo != 2 {
				t.Fatalf("unexpected snapshot during burst: %+v", lines)
			}
		case <-done:
			return
		case <-time.After(5 * time.Second):
			t.Fatal("timed out during signal burst")
		}
	}
}

func TestClearPersistsEmptyArray(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()

	s := NewStore()
	Attach(ctx, kv, "u1", s)
	s.AddItem(models.CartLine{ID: "p1", Prezzo: 5}, 2)
	s.Clear()

	if s.TotalQuantity() != 0 || s.TotalAmount() != 0 {
		t.Fatalf("expected zero totals after clear")
	}
	raw, _ := kv.Get(ctx, KeyPrefix+"u1")
	if raw != "[]" {
		t.Fatalf("expected persisted empty array after clear, got %q", raw)
	}
}
