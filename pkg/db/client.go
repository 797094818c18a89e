package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const releaseTimeout = 5 * time.Second

// Client wraps the shared GORM connection pool.
type Client struct {
	conn  *gorm.DB
	retry RetryPolicy
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New opens a bounded pgx pool, applies the default statement timeout to
// every connection and wraps the pool in GORM.
func New(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	connCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database DSN: %w", err)
	}
	if cfg.ConnectTimeout > 0 {
		connCfg.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.StatementTimeout > 0 {
		connCfg.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	connCfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	sqlDB := stdlib.OpenDB(*connCfg)
	applyPoolSettings(sqlDB, cfg)

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	client := &Client{conn: conn, retry: PolicyFromConfig(cfg)}
	if err := client.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "database connection established")
	}

	return client, nil
}

// NewFromDB wraps an already opened GORM connection. Tests use it with sqlite.
func NewFromDB(conn *gorm.DB, policy RetryPolicy) *Client {
	return &Client{conn: conn, retry: policy}
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// DB returns the underlying GORM connection.
func (c *Client) DB() *gorm.DB {
	return c.conn
}

// Retry returns the policy applied to connection checkout.
func (c *Client) Retry() RetryPolicy {
	return c.retry
}

// Dialect reports the GORM dialector name ("postgres", "sqlite").
func (c *Client) Dialect() string {
	return c.conn.Dialector.Name()
}

// Ping verifies the datasource is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (c *Client) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Acquire checks out one dedicated connection from the pool. Callers must
// Release the handle on every exit path.
func (c *Client) Acquire(ctx context.Context) (*Handle, error) {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return nil, err
	}

	var conn *sql.Conn
	if err := c.retry.Do(ctx, func(ctx context.Context) error {
		var acquireErr error
		conn, acquireErr = sqlDB.Conn(ctx)
		return acquireErr
	}); err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	session := c.conn.Session(&gorm.Session{NewDB: true, Context: ctx})
	session.Statement.ConnPool = conn

	return &Handle{
		conn:    conn,
		db:      session,
		dialect: c.Dialect(),
	}, nil
}

// WithTx executes fn inside a transaction, rolling back on error/panic.
// Beginning the transaction is retried under the client's policy.
func (c *Client) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var tx *gorm.DB
	if err := c.retry.Do(ctx, func(ctx context.Context) error {
		tx = c.conn.WithContext(ctx).Begin()
		return tx.Error
	}); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Handle is a single checked-out pooled connection.
type Handle struct {
	conn    *sql.Conn
	db      *gorm.DB
	dialect string

	mu           sync.Mutex
	timeoutFreed bool
	released     bool
}

// DB returns a GORM session bound to the handle's connection.
func (h *Handle) DB() *gorm.DB {
	return h.db
}

// DisableStatementTimeout lifts the pool default statement timeout for the
// lifetime of this handle. It is restored on Release.
func (h *Handle) DisableStatementTimeout(ctx context.Context) error {
	if h.dialect != "postgres" {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return sql.ErrConnDone
	}
	if _, err := h.conn.ExecContext(ctx, "SET statement_timeout = 0"); err != nil {
		return fmt.Errorf("disable statement timeout: %w", err)
	}
	h.timeoutFreed = true
	return nil
}

// Release returns the connection to the pool. Safe to call more than once.
func (h *Handle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.released = true

	if h.timeoutFreed {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if _, err := h.conn.ExecContext(ctx, "RESET statement_timeout"); err != nil {
			// the session still has no timeout; drop it instead of pooling it
			_ = h.conn.Raw(func(any) error { return driver.ErrBadConn })
		}
	}
	_ = h.conn.Close()
}
