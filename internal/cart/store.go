package cart

import (
	"cioccolato_back_end/internal/models"
)

// saver reçoit la liste complète des lignes après chaque mutation.
type saver interface {
	Save(lines []models.CartLine)
}

// Store détient la liste ordonnée des lignes du panier d'un utilisateur.
// C'est la source de vérité pour les totaux du checkout : au plus une ligne
// par id, l'ordre d'insertion est préservé, les totaux sont toujours
// recalculés à la lecture.
//
// Un Store n'est jamais partagé entre goroutines : chaque requête HTTP (ou
// chaque connexion WebSocket) construit le sien et la synchronisation passe
// par la couche de persistance.
type Store struct {
	lines    []models.CartLine
	hydrated bool
	saver    saver
}

func NewStore() *Store {
	return &Store{lines: []models.CartLine{}}
}

// AddItem ajoute qty exemplaires d'une ligne. Si une ligne avec le même id
// existe déjà, sa quantité est incrémentée ; sinon la ligne est ajoutée en fin
// de liste. qty doit être strictement positif — les appelants sont du code
// interne, une valeur invalide est un bug, pas une erreur à rattraper.
func (s *Store) AddItem(line models.CartLine, qty int) {
	for i := range s.lines {
		if s.lines[i].ID == line.ID {
			s.lines[i].Qty += qty
			s.flush()
			return
		}
	}
	line.Qty = qty
	s.lines = append(s.lines, line)
	s.flush()
}

// RemoveItem supprime la ligne correspondante. No-op si l'id est absent.
func (s *Store) RemoveItem(id string) {
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.flush()
			return
		}
	}
}

// UpdateQty fixe la quantité d'une ligne existante, bornée à 1 minimum.
// Passer à zéro ne supprime pas la ligne — la suppression est une opération
// explicite. No-op si l'id est absent, aucune ligne n'est créée.
func (s *Store) UpdateQty(id string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Qty = qty
			s.flush()
			return
		}
	}
}

// Clear vide le panier (après un checkout réussi, par exemple).
func (s *Store) Clear() {
	s.lines = []models.CartLine{}
	s.flush()
}

// Lines retourne une copie de la liste courante.
func (s *Store) Lines() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalQuantity recalcule la somme des quantités à chaque lecture.
func (s *Store) TotalQuantity() int {
	total := 0
	for _, l := range s.lines {
		total += l.Qty
	}
	return total
}

// TotalAmount recalcule le montant total à chaque lecture. Jamais mis en
// cache : la liste est petite et recalculer évite toute dérive.
func (s *Store) TotalAmount() float64 {
	total := 0.0
	for _, l := range s.lines {
		total += l.Prezzo * float64(l.Qty)
	}
	return total
}

// Replace remplace la liste en bloc, sans réécrire la persistance. Utilisé
// quand un autre onglet a modifié le panier : le dernier écrivain gagne, pas
// de fusion.
func (s *Store) Replace(lines []models.CartLine) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	s.lines = lines
}

// hydrate charge l'état persisté et ouvre la porte aux écritures. Tant que
// l'hydratation n'a pas eu lieu, flush est un no-op : la liste vide initiale
// ne doit jamais écraser un panier sauvegardé.
func (s *Store) hydrate(lines []models.CartLine, sv saver) {
	s.Replace(lines)
	s.hydrated = true
	s.saver = sv
}

func (s *Store) flush() {
	if !s.hydrated || s.saver == nil {
		return
	}
	s.saver.Save(s.lines)
}
