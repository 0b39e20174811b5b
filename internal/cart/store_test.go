package cart

import (
	"testing"

	"cioccolato_back_end/internal/models"
)

func line(id string, prezzo float64) models.CartLine {
	return models.CartLine{ID: id, Nome: "Pralina " + id, Prezzo: prezzo, Immagine: "/img/" + id + ".webp"}
}

func TestAddItemMergesSameID(t *testing.T) {
	s := NewStore()
	s.AddItem(line("x", 5), 2)
	s.AddItem(line("x", 5), 3)

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected single line for same id, got %d", len(lines))
	}
	if lines[0].Qty != 5 {
		t.Fatalf("expected quantity 5 after merge, got %d", lines[0].Qty)
	}
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddItem(line("a", 1), 1)
	s.AddItem(line("b", 2), 1)
	s.AddItem(line("c", 3), 1)
	s.AddItem(line("a", 1), 1) // merge ne doit pas réordonner

	lines := s.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"a", "b", "c"} {
		if lines[i].ID != want {
			t.Fatalf("line %d: expected id %q, got %q", i, want, lines[i].ID)
		}
	}
}

func TestUpdateQtyClampsToOne(t *testing.T) {
	s := NewStore()
	s.AddItem(line("x", 5), 3)

	s.UpdateQty("x", 0)
	if got := s.Lines()[0].Qty; got != 1 {
		t.Fatalf("expected clamp to 1 for qty 0, got %d", got)
	}

	s.UpdateQty("x", -5)
	if got := s.Lines()[0].Qty; got != 1 {
		t.Fatalf("expected clamp to 1 for qty -5, got %d", got)
	}
}

func TestUpdateQtyUnknownIDIsNoop(t *testing.T) {
	s := NewStore()
	s.AddItem(line("x", 5), 1)

	s.UpdateQty("ghost", 4)
	if len(s.Lines()) != 1 {
		t.Fatalf("updateQty on unknown id must not create a line, got %d lines", len(s.Lines()))
	}
}

func TestRemoveItem(t *testing.T) {
	s := NewStore()
	s.AddItem(line("a", 1), 1)
	s.AddItem(line("b", 2), 1)

	s.RemoveItem("a")
	lines := s.Lines()
	if len(lines) != 1 || lines[0].ID != "b" {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}

	s.RemoveItem("ghost") // no-op
	if len(s.Lines()) != 1 {
		t.Fatalf("remove on unknown id must be a no-op")
	}
}

func TestDerivedTotals(t *testing.T) {
	s := NewStore()
	s.AddItem(line("a", 5), 2)
	s.AddItem(line("b", 3.5), 1)

	if got := s.TotalQuantity(); got != 3 {
		t.Fatalf("expected total quantity 3, got %d", got)
	}
	if got := s.TotalAmount(); got != 13.5 {
		t.Fatalf("expected total amount 13.5, got %v", got)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.AddItem(line("a", 5), 2)
	s.Clear()

	if s.TotalQuantity() != 0 || s.TotalAmount() != 0 {
		t.Fatalf("expected zero totals after clear")
	}
	if len(s.Lines()) != 0 {
		t.Fatalf("expected empty list after clear")
	}
}
