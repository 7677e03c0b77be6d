package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "pw123" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPassword(hash, "pw123") {
		t.Fatal("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "pw124") {
		t.Fatal("CheckPassword accepted a wrong password")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("not-a-bcrypt-hash", "pw123") {
		t.Fatal("CheckPassword accepted a malformed hash")
	}
}
