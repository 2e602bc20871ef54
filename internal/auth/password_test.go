package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordsHashAndMatch(t *testing.T) {
	passwords := Passwords{Cost: bcrypt.MinCost}

	hash, err := passwords.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("expected hash to differ from the raw password")
	}
	if !passwords.Matches(hash, "correct horse battery staple") {
		t.Fatal("expected password to match its hash")
	}
	if passwords.Matches(hash, "wrong password") {
		t.Fatal("expected wrong password not to match")
	}
}
