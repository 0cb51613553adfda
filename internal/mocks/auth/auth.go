// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.PasswordHasher     = (*PlainHasher)(nil)
	_ ports.SessionRevocations = (*MemorySessionRevocations)(nil)
)

const plainPrefix = "plain:"

// PlainHasher "hashes" by prefixing, so tests avoid bcrypt cost. Never use outside tests.
type PlainHasher struct {
	mu          sync.Mutex
	DummyCalls  int
	HashErr     error
	comparisons int
}

// Hash returns the prefixed password.
func (h *PlainHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return plainPrefix + password, nil
}

// Compare matches hashes produced by Hash.
func (h *PlainHasher) Compare(hash, password string) error {
	h.mu.Lock()
	h.comparisons++
	h.mu.Unlock()
	if !strings.HasPrefix(hash, plainPrefix) || strings.TrimPrefix(hash, plainPrefix) != password {
		return domainauth.ErrInvalidCredentials
	}
	return nil
}

// CompareDummy counts calls so tests can assert the unknown-email path still does work.
func (h *PlainHasher) CompareDummy(string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.DummyCalls++
}

// Comparisons returns how many real comparisons ran.
func (h *PlainHasher) Comparisons() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.comparisons
}

// MemorySessionRevocations is an in-memory revocation store for unit tests.
// Setting Err makes every call fail, which exercises fail-open paths.
type MemorySessionRevocations struct {
	mu          sync.Mutex
	revoked     map[string]time.Time
	roleChanged map[int64]domainauth.RoleChange
	Err         error
}

// NewMemorySessionRevocations creates an empty store.
func NewMemorySessionRevocations() *MemorySessionRevocations {
	return &MemorySessionRevocations{
		revoked:     make(map[string]time.Time),
		roleChanged: make(map[int64]domainauth.RoleChange),
	}
}

func (m *MemorySessionRevocations) RevokeToken(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if tokenID == "" {
		return nil
	}
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *MemorySessionRevocations) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func (m *MemorySessionRevocations) MarkRoleChanged(_ context.Context, userID int64, change domainauth.RoleChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.roleChanged[userID] = change
	return nil
}

func (m *MemorySessionRevocations) LastRoleChange(_ context.Context, userID int64) (domainauth.RoleChange, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return domainauth.RoleChange{}, false, m.Err
	}
	change, ok := m.roleChanged[userID]
	return change, ok, nil
}
