package cart

import (
	"fmt"

	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/notify"
)

// Facade enveloppe le Store pour pousser un toast à chaque ajout ou retrait.
// Pure décoration : mêmes signatures, mêmes invariants, aucun état propre.
type Facade struct {
	store  *Store
	toasts *notify.Queue
}

func NewFacade(store *Store, toasts *notify.Queue) *Facade {
	return &Facade{store: store, toasts: toasts}
}

func (f *Facade) AddItem(line models.CartLine, qty int) {
	f.store.AddItem(line, qty)
	f.toasts.Push(fmt.Sprintf("%s ajouté au panier", line.Nome))
}

func (f *Facade) RemoveItem(id string) {
	nome := ""
	for _, l := range f.store.Lines() {
		if l.ID == id {
			nome = l.Nome
			break
		}
	}
	f.store.RemoveItem(id)
	if nome != "" {
		f.toasts.Push(fmt.Sprintf("%s retiré du panier", nome))
	}
}

func (f *Facade) UpdateQty(id string, qty int) { f.store.UpdateQty(id, qty) }
func (f *Facade) Clear()                       { f.store.Clear() }

func (f *Facade) Lines() []models.CartLine { return f.store.Lines() }
func (f *Facade) TotalQuantity() int       { return f.store.TotalQuantity() }
func (f *Facade) TotalAmount() float64     { return f.store.TotalAmount() }
