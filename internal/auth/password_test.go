package auth

import "testing"

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct digests for repeated hashing, got %q twice", first)
	}
	if !VerifyPassword("hunter2", first) {
		t.Fatalf("first digest did not verify")
	}
	if !VerifyPassword("hunter2", second) {
		t.Fatalf("second digest did not verify")
	}
}

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	digest, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if digest == "hunter2" {
		t.Fatalf("digest equals plaintext")
	}
}

func TestVerifyPasswordMismatch(t *testing.T) {
	digest, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if VerifyPassword("hunter3", digest) {
		t.Fatalf("wrong password verified")
	}
	if VerifyPassword("hunter2", "not-a-bcrypt-digest") {
		t.Fatalf("garbage digest verified")
	}
	if VerifyPassword("", digest) {
		t.Fatalf("empty password verified")
	}
}
