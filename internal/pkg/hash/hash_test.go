package hash

import "testing"

func TestNewDriverSelection(t *testing.T) {
	if _, err := New(DriverBcrypt, 10, "pep"); err != nil {
		t.Fatalf("New(bcrypt) error = %v", err)
	}

	if _, err := New(DriverArgon2id, 0, "pep"); err != nil {
		t.Fatalf("New(argon2id) error = %v", err)
	}

	if _, err := New("scrypt", 0, ""); err == nil {
		t.Fatal("New(unknown) error = nil, want failure")
	}
}

func TestBcryptRoundTrip(t *testing.T) {
	h := NewBcrypt(4, "pepper")

	hashed, err := h.Hash("S3cret!pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !h.Verify(string(hashed), "S3cret!pass") {
		t.Error("Verify() = false for matching password")
	}

	if h.Verify(string(hashed), "wrong") {
		t.Error("Verify() = true for wrong password")
	}

	other := NewBcrypt(4, "different-pepper")
	if other.Verify(string(hashed), "S3cret!pass") {
		t.Error("Verify() = true across different peppers")
	}
}

func TestArgon2idRoundTrip(t *testing.T) {
	h := NewArgon2id("pepper")

	hashed, err := h.Hash("S3cret!pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !h.Verify(string(hashed), "S3cret!pass") {
		t.Error("Verify() = false for matching password")
	}

	if h.Verify(string(hashed), "wrong") {
		t.Error("Verify() = true for wrong password")
	}

	if h.Verify("not-an-encoded-hash", "S3cret!pass") {
		t.Error("Verify() = true for malformed hash")
	}
}

func TestHMACSHA256Deterministic(t *testing.T) {
	h := NewHMACSHA256("token-hash-secret")

	a, err := h.Hash("some.refresh.token")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	b, err := h.Hash("some.refresh.token")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if string(a) != string(b) {
		t.Error("Hash() not deterministic for the same input")
	}

	if !h.Verify(string(a), "some.refresh.token") {
		t.Error("Verify() = false for matching input")
	}

	if h.Verify(string(a), "other.token") {
		t.Error("Verify() = true for different input")
	}

	other := NewHMACSHA256("another-secret")
	c, _ := other.Hash("some.refresh.token")
	if string(a) == string(c) {
		t.Error("Hash() equal across different secrets")
	}
}
