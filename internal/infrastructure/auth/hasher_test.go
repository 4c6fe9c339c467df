package auth

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("1234")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	if hash == "1234" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}

	ok, err := hasher.Verify(hash, "1234")
	if err != nil || !ok {
		t.Fatalf("expected credential to verify, got ok=%v err=%v", ok, err)
	}

	ok, err = hasher.Verify(hash, "9999")
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, got ok=%v err=%v", ok, err)
	}

	if _, err := hasher.Verify("not-a-hash", "1234"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	t.Parallel()

	if got := NewBcryptHasher(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcryptHasher(bcrypt.MaxCost + 1).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}

func TestULIDGenerator(t *testing.T) {
	t.Parallel()

	id := NewULIDGenerator().Generate()
	if _, err := ulid.Parse(id); err != nil {
		t.Fatalf("expected valid ULID, got %q: %v", id, err)
	}
}
