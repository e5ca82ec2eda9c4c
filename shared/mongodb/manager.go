package mongodb

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/singleflight"
)

// ErrNotConnected wraps a failed connection attempt. The manager never
// retries on its own; each request gets one fresh attempt.
var ErrNotConnected = errors.New("document store is not reachable")

// Config holds connection settings for the document store.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

type dialFunc func(ctx context.Context, cfg Config) (*mongo.Client, error)

// Manager lazily establishes a connection to the document store and caches
// it for the lifetime of the process. The deployment model is many
// short-lived request invocations against one process that may be replaced
// at any time, so the first request pays the connection cost and everyone
// after rides the cached handle.
//
// Concurrent callers during the initial attempt share a single in-flight
// dial; a failed attempt clears all state so the next caller retries from
// scratch.
type Manager struct {
	cfg    Config
	logger *zerolog.Logger
	dial   dialFunc

	group singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client
}

// NewManager creates a Manager. No connection is made until the first call
// to Database.
func NewManager(cfg Config, logger *zerolog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logger,
		dial:   dialMongo,
	}
}

// Database returns a ready-to-use handle to the configured database,
// connecting on first use.
func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	if client != nil {
		return client.Database(m.cfg.Database), nil
	}

	v, err, _ := m.group.Do("connect", func() (any, error) {
		// Re-check under the group: a previous winner may have cached the
		// client between our read and this call.
		m.mu.RLock()
		cached := m.client
		m.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		m.logger.Info().Str("database", m.cfg.Database).Msg("connecting to document store")

		// The dial runs on its own deadline rather than the request
		// context: the attempt is shared, and one abandoned caller
		// must not cancel it for everyone else.
		dialCtx, cancel := context.WithTimeout(context.Background(), m.cfg.ConnectTimeout)
		defer cancel()

		c, err := m.dial(dialCtx, m.cfg)
		if err != nil {
			m.logger.Error().Err(err).Msg("document store connection failed")
			return nil, err
		}

		m.mu.Lock()
		m.client = c
		m.mu.Unlock()

		m.logger.Info().Str("database", m.cfg.Database).Msg("connected to document store")
		return c, nil
	})
	if err != nil {
		return nil, errors.Join(ErrNotConnected, err)
	}

	return v.(*mongo.Client).Database(m.cfg.Database), nil
}

// Disconnect closes the cached connection, if any.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.mu.Unlock()

	if client == nil {
		return nil
	}

	return client.Disconnect(ctx)
}

func dialMongo(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
