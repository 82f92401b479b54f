package cryptox

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if string(hash) == "pw123" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "pw123") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "pw124") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if string(h1) == string(h2) {
		t.Fatalf("expected different digests for the same password")
	}
}
