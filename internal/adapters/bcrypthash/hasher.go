package bcrypthash

// Package bcrypthash implements ports.PasswordHasher with bcrypt.

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
)

// DefaultCost matches the cost the portal has always hashed with.
const DefaultCost = 10

// Hasher hashes passwords with a fixed bcrypt cost.
type Hasher struct {
	cost  int
	dummy []byte
}

// New returns a Hasher; cost is clamped to bcrypt's supported range.
// The dummy hash used for timing equalization is computed at the same cost.
func New(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("portal-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Hasher{cost: cost, dummy: dummy}, nil
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int { return h.cost }

func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h *Hasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domainauth.ErrInvalidCredentials
	}
	// Corrupt stored hash; still a failed sign-in from the caller's view.
	return fmt.Errorf("%w: %w", domainauth.ErrInvalidCredentials, err)
}

func (h *Hasher) CompareDummy(password string) {
	//nolint:errcheck // result intentionally ignored; only the work matters
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
