package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const idKey = "session_id"

// Config controls the session cookie.
type Config struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager assigns every client a session id and loads and saves its state.
type Manager struct {
	store  Store
	tokens *Tokens
	cfg    Config
	logger zerolog.Logger
}

func NewManager(store Store, tokens *Tokens, cfg Config, logger zerolog.Logger) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "registry_session"
	}
	return &Manager{store: store, tokens: tokens, cfg: cfg, logger: logger}
}

// Middleware resolves the session id from the signed cookie, or starts a new
// session when the cookie is missing or invalid. The cookie is re-issued on
// every response so the idle lifetime slides.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(m.cfg.CookieName); err == nil {
				if parsed, err := m.tokens.Parse(cookie.Value); err == nil {
					id = parsed
				} else {
					m.logger.Debug().Err(err).Msg("discarding session cookie")
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			token, err := m.tokens.Issue(id)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue session")
			}
			c.SetCookie(&http.Cookie{
				Name:     m.cfg.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(m.cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   m.cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(idKey, id)
			return next(c)
		}
	}
}

// ID returns the session id set by Middleware, or "".
func ID(c echo.Context) string {
	if v, ok := c.Get(idKey).(string); ok {
		return v
	}
	return ""
}

// Load decodes the stored state for id into v. It reports false when nothing
// is stored.
func (m *Manager) Load(ctx context.Context, id string, v interface{}) (bool, error) {
	data, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		m.logger.Warn().Err(err).Str("session_id", id).Msg("discarding unreadable session state")
		return false, nil
	}
	return true, nil
}

// Save stores v as the state for id.
func (m *Manager) Save(ctx context.Context, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, id, data, m.cfg.TTL); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Discard deletes the stored state for id.
func (m *Manager) Discard(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
