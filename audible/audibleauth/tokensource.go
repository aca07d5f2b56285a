package audibleauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/clambin/audibleclients/audible/internal/vault"
)

// A TokenSource provides a valid authentication [Token].
type TokenSource interface {
	Token(ctx context.Context) (Token, error)
}

// TokenSource returns a [TokenSource] built from the given options. The returned
// source caches the credential bundle, refreshes it when the access token expires
// and, when [WithVault] is used, persists it across restarts, so the device is only
// registered once.
func (c Config) TokenSource(opts ...TokenSourceOption) TokenSource {
	cfg := tokenSourceConfiguration{
		config: &c,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.tokenSource()
}

// TokenSourceOption provides the configuration to create the desired TokenSource.
type TokenSourceOption func(*tokenSourceConfiguration)

// WithLogger configures an optional logger.
func WithLogger(logger *slog.Logger) TokenSourceOption {
	return func(c *tokenSourceConfiguration) {
		c.logger = logger
	}
}

// WithToken seeds the TokenSource with an existing credential bundle, e.g. one
// persisted by the caller from an earlier [Config.Register].
func WithToken(token Token) TokenSourceOption {
	return func(c *tokenSourceConfiguration) {
		c.token = token
	}
}

// WithRegistration configures the TokenSource to register a new device with the given
// authorization code and PKCE code verifier when no usable bundle is available.
func WithRegistration(code string, codeVerifier []byte) TokenSourceOption {
	return func(c *tokenSourceConfiguration) {
		c.registrar = tokenSourceFunc(func(ctx context.Context) (Token, error) {
			return c.config.Register(ctx, code, codeVerifier)
		})
	}
}

// WithVault persists the credential bundle at path, encrypted with passphrase.
// On startup, a stored bundle is used before registering a new device.
func WithVault(path string, passphrase string) TokenSourceOption {
	return func(c *tokenSourceConfiguration) {
		c.store = vault.New[Token](path, passphrase)
	}
}

type tokenStore interface {
	Load() (Token, error)
	Save(Token) error
}

type tokenSourceConfiguration struct {
	registrar TokenSource
	config    *Config
	logger    *slog.Logger
	store     tokenStore
	token     Token
}

func (c tokenSourceConfiguration) tokenSource() TokenSource {
	s := cachingTokenSource{
		registrar: c.registrar,
		config:    c.config,
		store:     c.store,
		logger:    c.logger,
	}
	if c.token.AccessToken != "" {
		s.token = &c.token
	}
	return &s
}

var (
	_ TokenSource = tokenSourceFunc(nil)
	_ TokenSource = (*cachingTokenSource)(nil)
)

// tokenSourceFunc is an adapter to convert a function with the correct signature into a TokenSource.
type tokenSourceFunc func(context.Context) (Token, error)

func (f tokenSourceFunc) Token(ctx context.Context) (Token, error) {
	return f(ctx)
}

// A cachingTokenSource hands out a cached bundle while it is valid. When it isn't,
// it tries, in order: a bundle stored in the vault, an in-place refresh of the
// cached bundle, and finally the registrar.
type cachingTokenSource struct {
	registrar TokenSource
	config    *Config
	store     tokenStore
	logger    *slog.Logger
	token     *Token
	lock      sync.Mutex
}

func (s *cachingTokenSource) Token(ctx context.Context) (Token, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.token == nil && s.store != nil {
		token, err := s.store.Load()
		switch {
		case err == nil:
			s.token = &token
		case errors.Is(err, os.ErrNotExist):
			s.logger.Info("no stored token found")
		default:
			return Token{}, fmt.Errorf("load token: %w", err)
		}
	}

	if s.token != nil && s.token.Valid() {
		return *s.token, nil
	}

	// an expired bundle with a refresh token can be renewed in place
	if s.token != nil && s.token.RefreshToken != "" {
		token, err := s.config.RefreshToken(ctx, *s.token)
		if err == nil {
			s.logger.Debug("access token refreshed")
			return s.cache(token)
		}
		s.logger.Warn("token refresh failed", "err", err)
	}

	if s.registrar == nil {
		return Token{}, ErrNoTokenSource
	}
	token, err := s.registrar.Token(ctx)
	if err != nil {
		return Token{}, err
	}
	s.logger.Debug("device registered")
	return s.cache(token)
}

func (s *cachingTokenSource) cache(token Token) (Token, error) {
	s.token = &token
	if s.store != nil {
		if err := s.store.Save(token); err != nil {
			return token, fmt.Errorf("save token: %w", err)
		}
	}
	return token, nil
}
