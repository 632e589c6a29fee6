package security

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/babycare/shop-api/internal/core/domain"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, pw := range []string{"p1", "", "correct horse battery staple", "ünïcødé"} {
		hash, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("hash %q: %v", pw, err)
		}
		if hash == pw {
			t.Fatalf("hash equals plaintext")
		}
		if !h.Verify(pw, hash) {
			t.Fatalf("verify(%q, hash(%q)) = false", pw, pw)
		}
		if h.Verify(pw+"x", hash) {
			t.Fatalf("verify accepted a different plaintext for %q", pw)
		}
	}
}

func TestBcryptHasher_SaltIsUnique(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same plaintext are identical")
	}
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)
	if h.cost != DefaultCost {
		t.Fatalf("expected cost %d, got %d", DefaultCost, h.cost)
	}

	hash, err := NewBcryptHasher(bcrypt.MinCost).Hash("x")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil || cost != bcrypt.MinCost {
		t.Fatalf("expected stored cost %d, got %d (%v)", bcrypt.MinCost, cost, err)
	}
}

func TestBcryptHasher_VerifyGarbageHash(t *testing.T) {
	if NewBcryptHasher(bcrypt.MinCost).Verify("p1", "not-a-hash") {
		t.Fatalf("garbage hash must not verify")
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	// 40 two-byte runes: within a 72-character cap, over the 72-byte limit.
	_, err := h.Hash(strings.Repeat("é", 40))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
