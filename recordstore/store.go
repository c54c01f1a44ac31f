package recordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zimako-tech/authflow"
)

const defaultKeyPrefix = "acct"

// ErrUnavailable is an exported constant or variable used by the validation engine.
var ErrUnavailable = errors.New("record store unavailable")

// Store defines a public type used by authflow APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	redis  *redis.Client
	prefix string
}

// New returns a Store reading account records from redisClient under the
// default key prefix.
func New(redisClient *redis.Client) *Store {
	return &Store{
		redis:  redisClient,
		prefix: defaultKeyPrefix,
	}
}

func (s *Store) key(accountNumber string) string {
	return s.prefix + ":" + accountNumber
}

// LookupByAccountNumber describes the lookupbyaccountnumber operation and its observable behavior.
//
// LookupByAccountNumber may return an error when input validation, dependency calls, or security checks fail.
// LookupByAccountNumber does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) LookupByAccountNumber(ctx context.Context, accountNumber string) (authflow.LookupResult, error) {
	name, err := s.redis.Get(ctx, s.key(accountNumber)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return authflow.LookupResult{}, nil
		}
		return authflow.LookupResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return authflow.LookupResult{Found: true, DisplayName: name}, nil
}

// Put registers or updates an account record. Used by provisioning code and
// tests; the validation core never writes.
func (s *Store) Put(ctx context.Context, accountNumber, displayName string) error {
	if err := s.redis.Set(ctx, s.key(accountNumber), displayName, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Remove deletes an account record. Removing a missing record is not an error.
func (s *Store) Remove(ctx context.Context, accountNumber string) error {
	if err := s.redis.Del(ctx, s.key(accountNumber)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
