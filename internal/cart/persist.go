package cart

import (
	"context"
	"encoding/json"
	"log"

	"cioccolato_back_end/internal/models"
)

// Clé versionnée sous laquelle le panier est persisté. Un changement de schéma
// incompatible passerait par une nouvelle clé (v2) et abandonnerait l'ancienne.
const KeyPrefix = "cart:v1:"

// Payloads publiés sur le canal de la clé après chaque écriture.
const (
	signalUpdated = "updated"
	signalCleared = "cleared"
)

// KV est la frontière entre le panier et son stockage clé-valeur partagé.
// Subscribe notifie les changements faits par d'autres onglets/instances sur
// la même clé logique ; la valeur reste un tableau JSON de CartLine.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Publish(ctx context.Context, key, payload string) error
	Subscribe(ctx context.Context, key string) (<-chan string, func())
}

// Adapter miroite la liste du Store dans le KV et maintient les onglets d'un
// même utilisateur cohérents. La politique d'erreur est volontairement
// fail-open : le panier est un confort, pas une garantie — un JSON corrompu
// ne doit jamais bloquer un checkout.
type Adapter struct {
	kv    KV
	key   string
	store *Store
}

// Attach hydrate le store depuis le KV puis s'enregistre comme couche
// d'écriture : toute mutation ultérieure est réécrite sous la même clé.
func Attach(ctx context.Context, kv KV, userID string, store *Store) *Adapter {
	a := &Adapter{kv: kv, key: KeyPrefix + userID, store: store}

	raw, err := kv.Get(ctx, a.key)
	lines, ok := decodeLines(raw)
	if err != nil || !ok {
		// lecture impossible ou contenu illisible : on démarre vide
		lines = nil
	}
	store.hydrate(lines, a)
	return a
}

// Save sérialise la liste complète et la réécrit, puis signale le changement
// aux autres abonnés de la clé.
func (a *Adapter) Save(lines []models.CartLine) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return
	}

	ctx := context.Background()
	if err := a.kv.Set(ctx, a.key, string(data)); err != nil {
		log.Printf("⚠️ Écriture panier %s échouée: %v", a.key, err)
		return
	}

	signal := signalUpdated
	if len(lines) == 0 {
		signal = signalCleared
	}
	a.kv.Publish(ctx, a.key, signal)
}

// Watch écoute les notifications de changement externes et remplace la liste
// en bloc à chaque signal (le dernier écrivain gagne). Chaque remplacement est
// poussé sur le canal retourné ; la fonction de fermeture arrête l'écoute.
//
// Une fois Watch lancé, le store appartient à la goroutine d'écoute : les
// consommateurs lisent les instantanés reçus sur le canal, jamais le store.
// Un contenu relu illisible est ignoré, l'état courant est conservé.
func (a *Adapter) Watch(ctx context.Context) (<-chan []models.CartLine, func()) {
	signals, stop := a.kv.Subscribe(ctx, a.key)
	out := make(chan []models.CartLine, 1)

	go func() {
		defer close(out)
		for range signals {
			raw, err := a.kv.Get(ctx, a.key)
			if err != nil {
				continue
			}
			lines, ok := decodeLines(raw)
			if !ok {
				continue
			}
			a.store.Replace(lines)
			select {
			case out <- a.store.Lines():
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, stop
}

// decodeLines parse un tableau JSON de lignes. Une chaîne vide vaut panier
// vide ; un contenu présent mais malformé ou qui n'est pas un tableau rend
// ok=false, à l'appelant de décider s'il démarre vide ou garde son état.
func decodeLines(raw string) ([]models.CartLine, bool) {
	if raw == "" {
		return nil, true
	}
	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, false
	}
	return lines, true
}
