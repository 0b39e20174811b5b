package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL est la durée d'affichage d'un toast avant expiration automatique.
const DefaultTTL = 4 * time.Second

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue est une file FIFO de notifications éphémères. Chaque entrée expire
// toute seule après ttl ; l'utilisateur peut aussi la fermer avant.
// Le mutex protège la file contre les timers d'expiration qui tirent depuis
// leur propre goroutine.
type Queue struct {
	mu    sync.Mutex
	ttl   time.Duration
	items []Notification
}

func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl}
}

// Push ajoute un toast en fin de file et programme son expiration.
func (q *Queue) Push(message string) string {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	q.mu.Unlock()

	time.AfterFunc(q.ttl, func() { q.Dismiss(n.ID) })
	return n.ID
}

// Dismiss retire un toast avant son expiration. No-op si déjà parti.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if q.items[i].ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Items retourne un instantané de la file, du plus ancien au plus récent.
func (q *Queue) Items() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}
