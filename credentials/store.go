package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/zimako-tech/authflow"
	"github.com/zimako-tech/authflow/password"
)

const (
	defaultPrefix    = "af"
	defaultAccessTTL = 15 * time.Minute
	defaultResetTTL  = 30 * time.Minute
)

var (
	// ErrUnavailable is an exported constant or variable used by the validation engine.
	ErrUnavailable = errors.New("credential store unavailable")
	// ErrResetTokenInvalid is an exported constant or variable used by the validation engine.
	ErrResetTokenInvalid = errors.New("reset token invalid or expired")
)

// DeliverFunc delivers a reset token to the account holder (email, SMS, ...).
// A nil DeliverFunc stores the token without sending anything.
type DeliverFunc func(ctx context.Context, email, token string) error

// Config defines a public type used by authflow APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	RedisPrefix string
	SigningKey  []byte
	AccessTTL   time.Duration
	ResetTTL    time.Duration
	Argon2      password.Config
}

// Store defines a public type used by authflow APIs.
//
// Store implements authflow's CredentialChecker, RegistrationHandler, and
// ResetSender interfaces against a Redis backend.
type Store struct {
	redis   *redis.Client
	cfg     Config
	hasher  *password.Hasher
	deliver DeliverFunc
}

// New validates cfg and returns a ready Store. SigningKey is required; zero
// TTLs fall back to 15m access / 30m reset defaults.
//
// New may return an error when input validation, dependency calls, or security checks fail.
func New(redisClient *redis.Client, cfg Config, deliver DeliverFunc) (*Store, error) {
	if redisClient == nil {
		return nil, errors.New("redis client is required")
	}
	if len(cfg.SigningKey) == 0 {
		return nil, errors.New("signing key is required")
	}
	if cfg.RedisPrefix == "" {
		cfg.RedisPrefix = defaultPrefix
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = defaultResetTTL
	}

	hasher, err := password.NewHasher(cfg.Argon2)
	if err != nil {
		return nil, err
	}

	return &Store{
		redis:   redisClient,
		cfg:     cfg,
		hasher:  hasher,
		deliver: deliver,
	}, nil
}

func (s *Store) userKey(email string) string {
	return s.cfg.RedisPrefix + ":user:" + strings.ToLower(email)
}

func (s *Store) resetKey(token string) string {
	return s.cfg.RedisPrefix + ":reset:" + token
}

// Register persists a verified signup payload. A duplicate email is reported
// through [authflow.ErrRegistrationRejected] so the flow surfaces it as the
// form-level error rather than a backend failure.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) Register(ctx context.Context, payload authflow.SignupPayload) error {
	key := s.userKey(payload.Email)

	// HSetNX on user_id claims the record; losing the race means the email is
	// already registered.
	claimed, err := s.redis.HSetNX(ctx, key, "user_id", uuid.NewString()).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !claimed {
		return fmt.Errorf("%w: email already registered", authflow.ErrRegistrationRejected)
	}

	hash, err := s.hasher.Hash(payload.Password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	fields := map[string]interface{}{
		"full_name":      payload.FullName,
		"email":          strings.ToLower(payload.Email),
		"id_number":      payload.IDNumber,
		"cellphone":      payload.Cellphone,
		"account_number": payload.AccountNumber,
		"password_hash":  hash,
		"created_at":     time.Now().Unix(),
	}
	if err := s.redis.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// CheckCredentials verifies an email/password pair. A missing account and a
// wrong password are indistinguishable to the caller: both return
// [authflow.ErrInvalidCredentials].
//
// CheckCredentials may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) CheckCredentials(ctx context.Context, email, plaintext string) (authflow.LoginResult, error) {
	record, err := s.redis.HGetAll(ctx, s.userKey(email)).Result()
	if err != nil {
		return authflow.LoginResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(record) == 0 || record["password_hash"] == "" {
		return authflow.LoginResult{}, authflow.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(plaintext, record["password_hash"])
	if err != nil {
		return authflow.LoginResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return authflow.LoginResult{}, authflow.ErrInvalidCredentials
	}

	token, err := s.issueAccessToken(record["user_id"])
	if err != nil {
		return authflow.LoginResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return authflow.LoginResult{
		UserID:      record["user_id"],
		DisplayName: record["full_name"],
		AccessToken: token,
	}, nil
}

// issueAccessToken signs a short-lived HS256 token carrying the user and a
// fresh session ID.
func (s *Store) issueAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.SigningKey)
}
