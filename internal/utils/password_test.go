package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("fondente-70%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := VerifyPassword("fondente-70%", hash)
	if err != nil || !ok {
		t.Fatalf("expected password to verify, ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("gianduia", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	if _, err := VerifyPassword("x", "pas-un-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if _, err := VerifyPassword("x", "$2a$10$abcdefg"); err == nil {
		t.Fatal("expected error for non-argon2 hash")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, _ := HashPassword("stessa-password")
	h2, _ := HashPassword("stessa-password")
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}
