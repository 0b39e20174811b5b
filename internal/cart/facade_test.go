package cart

import (
	"testing"
	"time"

	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/notify"
)

func TestFacadePushesToasts(t *testing.T) {
	toasts := notify.NewQueue(time.Minute)
	f := NewFacade(NewStore(), toasts)

	f.AddItem(models.CartLine{ID: "p1", Nome: "Tartufi", Prezzo: 8}, 1)
	f.RemoveItem("p1")

	items := toasts.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(items))
	}
	if items[0].Message != "Tartufi ajouté au panier" {
		t.Fatalf("unexpected add toast: %q", items[0].Message)
	}
	if items[1].Message != "Tartufi retiré du panier" {
		t.Fatalf("unexpected remove toast: %q", items[1].Message)
	}
}

func TestFacadeDoesNotAlterStoreContract(t *testing.T) {
	toasts := notify.NewQueue(time.Minute)
	f := NewFacade(NewStore(), toasts)

	f.AddItem(models.CartLine{ID: "p1", Prezzo: 5}, 2)
	f.AddItem(models.CartLine{ID: "p1", Prezzo: 5}, 3)
	f.UpdateQty("p1", 0)

	if got := f.TotalQuantity(); got != 1 {
		t.Fatalf("expected clamped quantity 1 through facade, got %d", got)
	}

	f.RemoveItem("inconnu") // no-op, pas de toast
	if len(toasts.Items()) != 2 {
		t.Fatalf("remove of unknown id must not toast, got %d toasts", len(toasts.Items()))
	}

	f.Clear()
	if f.TotalAmount() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}
