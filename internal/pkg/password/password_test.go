package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	Cost = bcrypt.MinCost
	defer func() { Cost = DefaultCost }()

	hash, err := Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "password123" {
		t.Fatal("Hash returned the plain password")
	}
	if !Verify("password123", hash) {
		t.Error("Expected password to verify")
	}
	if Verify("password124", hash) {
		t.Error("Expected wrong password to fail")
	}
}

func TestCheckLength(t *testing.T) {
	if err := CheckLength("12345"); err != ErrTooShort {
		t.Errorf("Expected ErrTooShort, got %v", err)
	}
	if err := CheckLength("123456"); err != nil {
		t.Errorf("Unexpected error %v", err)
	}
	if _, err := Hash("abc"); err != ErrTooShort {
		t.Errorf("Expected Hash to reject short password, got %v", err)
	}
}

func TestNeedsRehash(t *testing.T) {
	Cost = bcrypt.MinCost
	defer func() { Cost = DefaultCost }()

	hash, err := Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("Fresh hash should not need rehash")
	}

	Cost = bcrypt.MinCost + 1
	if !NeedsRehash(hash) {
		t.Error("Hash with old cost should need rehash")
	}
	if !NeedsRehash("not-a-hash") {
		t.Error("Malformed hash should need rehash")
	}
}
