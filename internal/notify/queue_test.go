package notify

import (
	"testing"
	"time"
)

func TestPushKeepsFIFOOrder(t *testing.T) {
	q := NewQueue(time.Minute)
	q.Push("premier")
	q.Push("deuxième")
	q.Push("troisième")

	items := q.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(items))
	}
	for i, want := range []string{"premier", "deuxième", "troisième"} {
		if items[i].Message != want {
			t.Fatalf("item %d: expected %q, got %q", i, want, items[i].Message)
		}
	}
}

func TestDismissRemovesEarly(t *testing.T) {
	q := NewQueue(time.Minute)
	id := q.Push("à fermer")
	q.Push("reste")

	q.Dismiss(id)
	items := q.Items()
	if len(items) != 1 || items[0].Message != "reste" {
		t.Fatalf("unexpected queue after dismiss: %+v", items)
	}

	q.Dismiss("inconnu") // no-op
	if len(q.Items()) != 1 {
		t.Fatalf("dismiss on unknown id must be a no-op")
	}
}

func TestAutoExpiry(t *testing.T) {
	q := NewQueue(30 * time.Millisecond)
	q.Push("éphémère")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(q.Items()) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("notification did not expire")
}
