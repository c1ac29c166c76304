package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret-password", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash equals the plaintext")
	}
	if !VerifyPassword(hash, "s3cret-password") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("not-a-bcrypt-hash", "s3cret-password") {
		t.Error("garbage hash accepted")
	}
}
