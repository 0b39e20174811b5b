package models

// CartLine représente une ligne du panier telle qu'elle est persistée sous la
// clé versionnée "cart:v1:<userID>". Les noms de champs JSON sont figés pour
// rester compatibles avec les paniers déjà enregistrés — ne pas les renommer.
type CartLine struct {
	ID       string  `json:"id"`
	Nome     string  `json:"nome"`
	Prezzo   float64 `json:"prezzo"`
	Immagine string  `json:"immagine"`
	Tipo     string  `json:"tipo,omitempty"`
	Pezzi    int     `json:"pezzi,omitempty"`
	Qty      int     `json:"qty"`
}
