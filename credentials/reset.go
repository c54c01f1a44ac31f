package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SendResetLink creates a single-use reset token for email and hands it to
// the configured [DeliverFunc]. Unknown addresses are acknowledged silently so
// the reset form cannot be used to probe which emails exist.
//
// SendResetLink may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) SendResetLink(ctx context.Context, email string) error {
	exists, err := s.redis.Exists(ctx, s.userKey(email)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if exists == 0 {
		return nil
	}

	token := uuid.NewString()
	key := s.resetKey(token)
	if err := s.redis.Set(ctx, key, strings.ToLower(email), s.cfg.ResetTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if s.deliver != nil {
		if err := s.deliver(ctx, email, token); err != nil {
			// An undeliverable token must not stay redeemable.
			_ = s.redis.Del(ctx, key).Err()
			return err
		}
	}

	return nil
}

// ConsumeReset redeems token and replaces the account's password hash. The
// token is deleted atomically with the read; a second redemption fails with
// [ErrResetTokenInvalid].
//
// ConsumeReset may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) ConsumeReset(ctx context.Context, token, newPassword string) error {
	email, err := s.redis.GetDel(ctx, s.resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := s.redis.HSet(ctx, s.userKey(email), "password_hash", hash).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}
