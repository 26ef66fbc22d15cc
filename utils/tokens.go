package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
)

var bgContext = context.Background()

// EnvOrDefault returns the env value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// GenerateSecureToken returns a hex token of length bytes of entropy.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// AccessClaims ride in the access token so role checks don't need a DB hit
// on every request.
type AccessClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func accessSecret() []byte {
	return []byte(EnvOrDefault("ACCESS_TOKEN_SECRET", "dev-access-secret-change-me"))
}

func refreshSecret() []byte {
	return []byte(EnvOrDefault("REFRESH_TOKEN_SECRET", "dev-refresh-secret-change-me"))
}

func accessTTL() time.Duration {
	if hours, err := strconv.Atoi(os.Getenv("JWT_ACCESS_TOKEN_EXPIRES")); err == nil && hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return time.Hour
}

func refreshTTL() time.Duration {
	if days, err := strconv.Atoi(os.Getenv("JWT_REFRESH_TOKEN_EXPIRES")); err == nil && days > 0 {
		return time.Duration(days) * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// CreateTokenPair signs an access token carrying the role claim plus a
// refresh token registered in the allowlist for later rotation.
func CreateTokenPair(userID uint, role string) (*TokenPair, error) {
	now := time.Now().UTC()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL())),
		},
	})
	accessStr, err := access.SignedString(accessSecret())
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL())),
	})
	refreshStr, err := refresh.SignedString(refreshSecret())
	if err != nil {
		return nil, err
	}

	refreshStore.Put(refreshStr, refreshTTL()+5*time.Minute)

	return &TokenPair{AccessToken: accessStr, RefreshToken: refreshStr}, nil
}

// ParseAccessToken verifies the signature and expiry of an access token.
func ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return accessSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// RotateRefreshToken validates a refresh token against signature and the
// allowlist, revokes it, and returns the user id it was issued for. Each
// refresh token is single-use.
func RotateRefreshToken(tokenStr string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return refreshSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid or expired refresh token")
	}
	if !refreshStore.Take(tokenStr) {
		return 0, errors.New("refresh token revoked")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, errors.New("malformed refresh token subject")
	}
	return uint(userID), nil
}

// RevokeRefreshToken drops a refresh token from the allowlist (logout).
func RevokeRefreshToken(tokenStr string) {
	refreshStore.Take(tokenStr)
}

// refreshTokenStore backs the refresh allowlist with Redis when available
// and an in-process map otherwise, so a single-node deployment runs without
// extra infrastructure.
type refreshTokenStore struct {
	redis *redis.Client

	mu    sync.Mutex
	local map[string]time.Time
}

var refreshStore = &refreshTokenStore{local: map[string]time.Time{}}

// UseRedis switches the allowlist to a Redis backend.
func UseRedis(client *redis.Client) {
	refreshStore.redis = client
}

func (s *refreshTokenStore) Put(token string, ttl time.Duration) {
	if s.redis != nil {
		s.redis.Set(bgContext, refreshKey(token), "true", ttl)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	// Redis expires keys on its own; the map needs a sweep or tokens that
	// are never rotated pile up for their full lifetime.
	for t, expiry := range s.local {
		if now.After(expiry) {
			delete(s.local, t)
		}
	}
	s.local[token] = now.Add(ttl)
}

// Take removes the token and reports whether it was present and unexpired.
func (s *refreshTokenStore) Take(token string) bool {
	if s.redis != nil {
		n, err := s.redis.Del(bgContext, refreshKey(token)).Result()
		return err == nil && n > 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.local[token]
	if !ok {
		return false
	}
	delete(s.local, token)
	return time.Now().Before(expiry)
}

func refreshKey(token string) string { return "refresh:" + token }
