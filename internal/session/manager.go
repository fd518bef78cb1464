package session

import (
	"context"
	"fmt"
	"sync"

	"naira-store/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FavoriteLoader fetches a user's persisted favorites for hydration.
type FavoriteLoader interface {
	ListProductsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Product, error)
}

// CartLoader fetches a user's persisted cart lines for hydration.
type CartLoader interface {
	LinesByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)
}

// Manager owns the active sessions, one per signed-in user. SignIn hydrates
// the cart and favorites from the backend; SignOut clears everything. A
// second sign-in for the same user reuses the live session (last local
// write wins across tabs, reconciled on the next fetch).
type Manager struct {
	compareLimit int
	favorites    FavoriteLoader
	carts        CartLoader
	logger       *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager.
func NewManager(compareLimit int, favorites FavoriteLoader, carts CartLoader, logger *zap.Logger) *Manager {
	return &Manager{
		compareLimit: compareLimit,
		favorites:    favorites,
		carts:        carts,
		logger:       logger,
		sessions:     make(map[uuid.UUID]*Session),
	}
}

// SignIn initializes the user's session, hydrating favorites and the cart
// concurrently from the persistence layer. Hydration is best-effort: a
// backend failure leaves the affected store empty and is reported, never
// fatal to sign-in.
func (m *Manager) SignIn(ctx context.Context, userID uuid.UUID) *Session {
	m.mu.Lock()
	if existing, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return existing
	}
	sess := newSession(userID, m.compareLimit)
	m.sessions[userID] = sess
	m.mu.Unlock()

	var (
		favorites []domain.Product
		lines     []domain.CartLine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		favorites, err = m.favorites.ListProductsByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to hydrate favorites: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lines, err = m.carts.LinesByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to hydrate cart: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		m.logger.Warn("Session hydration incomplete",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	sess.Do(func() {
		sess.Favorites.Replace(favorites)
		sess.Cart.Replace(lines)
	})

	m.logger.Info("Session hydrated",
		zap.String("user_id", userID.String()),
		zap.Int("favorites", len(favorites)),
		zap.Int("cart_lines", len(lines)),
	)

	return sess
}

// Get returns the live session for the user, if signed in.
func (m *Manager) Get(userID uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return sess, ok
}

// SignOut tears the session down: stores cleared, checkout abandoned,
// session removed.
func (m *Manager) SignOut(userID uuid.UUID) {
	m.mu.Lock()
	sess, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if !ok {
		return
	}

	sess.Do(func() {
		sess.Cart.Clear()
		sess.Favorites.Clear()
		sess.Compare.Clear()
		sess.AbandonCheckout()
	})

	m.logger.Info("Session torn down", zap.String("user_id", userID.String()))
}

// Active returns the number of live sessions.
func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
