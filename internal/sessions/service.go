package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Service issues and resolves session tokens. The token handed to the
// client is an HS256 JWT carrying only the session id; all state lives
// server-side in the repository.
type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
}

func NewService(repo Repository, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{repo: repo, secret: []byte(secret), ttl: ttl}
}

// Begin creates a fresh anonymous session and returns its state together
// with the signed token for the cookie.
func (s *Service) Begin(ctx context.Context) (*State, string, error) {
	state := &State{ID: uuid.NewString()}
	if err := s.repo.Save(ctx, state); err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}
	token, err := s.sign(state.ID)
	if err != nil {
		return nil, "", err
	}
	return state, token, nil
}

// Resolve returns the state for a client token, or nil when the token is
// invalid, expired or references a session the store no longer holds.
func (s *Service) Resolve(ctx context.Context, token string) (*State, error) {
	if token == "" {
		return nil, nil
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, nil
	}
	return s.repo.Get(ctx, sid)
}

// Save persists updated session state, refreshing its TTL.
func (s *Service) Save(ctx context.Context, state *State) error {
	return s.repo.Save(ctx, state)
}

// Delete drops a session entirely.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) sign(sid string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := jt.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}
