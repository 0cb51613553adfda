// Package redis provides Redis-based adapters for the onboarding portal.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
)

const (
	defaultPrefix = "portal:session:"
	revokedKey    = "revoked:"
	roleKey       = "role-changed:"

	roleField = "role"
	atField   = "at"
)

// SessionRevocations records signed-out token ids and per-identity role-change
// watermarks. Keys expire once no token they could affect is still valid.
type SessionRevocations struct {
	client     redis.UniversalClient
	prefix     string
	sessionTTL time.Duration
}

// NewSessionRevocations creates a store whose role watermarks live for sessionTTL.
func NewSessionRevocations(client redis.UniversalClient, sessionTTL time.Duration) *SessionRevocations {
	return NewSessionRevocationsWithPrefix(client, defaultPrefix, sessionTTL)
}

// NewSessionRevocationsWithPrefix creates a store with a custom key prefix.
func NewSessionRevocationsWithPrefix(client redis.UniversalClient, prefix string, sessionTTL time.Duration) *SessionRevocations {
	return &SessionRevocations{client: client, prefix: prefix, sessionTTL: sessionTTL}
}

func (s *SessionRevocations) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token ID cannot be empty")
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, nothing to refuse.
		return nil
	}
	if err := s.client.Set(ctx, s.prefix+revokedKey+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set revoked token: %w", err)
	}
	return nil
}

func (s *SessionRevocations) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, s.prefix+revokedKey+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists revoked token: %w", err)
	}
	return n > 0, nil
}

func (s *SessionRevocations) MarkRoleChanged(ctx context.Context, userID int64, change domainauth.RoleChange) error {
	key := s.roleKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			roleField, string(change.Role),
			atField, strconv.FormatInt(change.At.UnixMilli(), 10),
		)
		pipe.Expire(ctx, key, s.sessionTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set role watermark: %w", err)
	}
	return nil
}

func (s *SessionRevocations) LastRoleChange(ctx context.Context, userID int64) (domainauth.RoleChange, bool, error) {
	fields, err := s.client.HGetAll(ctx, s.roleKey(userID)).Result()
	if err != nil {
		return domainauth.RoleChange{}, false, fmt.Errorf("redis get role watermark: %w", err)
	}
	if len(fields) == 0 {
		return domainauth.RoleChange{}, false, nil
	}
	role, err := domainauth.ParseRole(fields[roleField])
	if err != nil {
		return domainauth.RoleChange{}, false, fmt.Errorf("parse role watermark: %w", err)
	}
	millis, err := strconv.ParseInt(fields[atField], 10, 64)
	if err != nil {
		return domainauth.RoleChange{}, false, fmt.Errorf("parse role watermark time %q: %w", fields[atField], err)
	}
	return domainauth.RoleChange{Role: role, At: time.UnixMilli(millis)}, true, nil
}

func (s *SessionRevocations) roleKey(userID int64) string {
	return s.prefix + roleKey + strconv.FormatInt(userID, 10)
}
