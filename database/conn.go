/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Connection is an open handle to one database. It is created by Connect
// and must be closed by its owner.
type Connection struct {
	config *ConnectionConfig
	db     *bun.DB
	sqlDB  *sql.DB
	logger Logger

	mu     sync.Mutex
	closed bool
}

// DBStats mirrors database/sql stats for the handle.
type DBStats struct {
	MaxOpenConns int           `json:"max_open_conns"`
	OpenConns    int           `json:"open_conns"`
	InUse        int           `json:"in_use"`
	Idle         int           `json:"idle"`
	WaitCount    int64         `json:"wait_count"`
	WaitDuration time.Duration `json:"wait_duration"`
}

type Option func(*Connection)

// WithLogger overrides the package logger for one connection.
func WithLogger(logger Logger) Option {
	return func(c *Connection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ConnectByName connects to the named database on the default local server.
// Environment overrides apply to everything except the name.
func ConnectByName(ctx context.Context, dbName string, opts ...Option) (*Connection, error) {
	cfg := DefaultConnectionConfig()
	cfg.overrideFromEnv()
	cfg.DBName = dbName
	return Connect(ctx, cfg, opts...)
}

// Connect opens the database described by cfg and verifies it with a ping
// bounded by ConnectTimeout. cfg is copied; later changes to it have no
// effect on the returned connection.
func Connect(ctx context.Context, cfg *ConnectionConfig, opts ...Option) (*Connection, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	config := *cfg
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 30 * time.Second
	}

	conn := &Connection{config: &config, logger: GetLogger()}
	for _, opt := range opts {
		opt(conn)
	}

	sqlDB, db, err := conn.createConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctxTimeout); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	conn.sqlDB, conn.db = sqlDB, db
	conn.logger.Info("Database connected successfully", "type", config.Type, "host", config.Host, "dbname", config.DBName)
	return conn, nil
}

func (c *Connection) createConnection() (*sql.DB, *bun.DB, error) {
	var sqlDB *sql.DB
	var db *bun.DB
	var err error

	switch c.config.Type {
	case "mysql":
		sqlDB, db, err = c.createMySQLConnection()
	case "postgres":
		sqlDB, db, err = c.createPostgreSQLConnection()
	case "sqlite":
		sqlDB, db, err = c.createSQLiteConnection()
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", c.config.Type)
	}
	if err != nil {
		return nil, nil, err
	}

	addQueryHooks(db, c.config, c.logger)
	return sqlDB, db, nil
}

func (c *Connection) createMySQLConnection() (*sql.DB, *bun.DB, error) {
	mc := mysql.NewConfig()
	mc.User = c.config.Username
	mc.Passwd = c.config.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))
	mc.DBName = c.config.DBName
	mc.ParseTime = true
	mc.Timeout = c.config.ConnectTimeout
	mc.Params = map[string]string{"charset": "utf8mb4"}

	sqlDB, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, nil, err
	}
	return sqlDB, bun.NewDB(sqlDB, mysqldialect.New()), nil
}

func (c *Connection) createPostgreSQLConnection() (*sql.DB, *bun.DB, error) {
	sslMode := c.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s@%s/%s?sslmode=%s&connect_timeout=%d",
		postgresUserInfo(c.config.Username, c.config.Password),
		net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port)),
		url.PathEscape(c.config.DBName),
		sslMode,
		int(c.config.ConnectTimeout.Seconds()),
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}
	return sqlDB, bun.NewDB(sqlDB, pgdialect.New()), nil
}

func postgresUserInfo(username, password string) string {
	if password == "" {
		return url.User(username).String()
	}
	return url.UserPassword(username, password).String()
}

func (c *Connection) createSQLiteConnection() (*sql.DB, *bun.DB, error) {
	sqlDB, err := sql.Open(sqliteshim.ShimName, sqliteDSN(c.config))
	if err != nil {
		return nil, nil, err
	}
	// A single connection keeps an in-memory database alive for the
	// lifetime of the handle and serializes writers.
	sqlDB.SetMaxOpenConns(1)
	return sqlDB, bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

func sqliteDSN(cfg *ConnectionConfig) string {
	if cfg.InMemory {
		name := cfg.DBName
		if name == "" {
			name = "memdb"
		}
		return fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(name))
	}
	if filepath.Ext(cfg.DBName) != "" {
		return cfg.DBName
	}
	return fmt.Sprintf("%s.db", cfg.DBName)
}

// DB returns the bun handle. It is nil after Close.
func (c *Connection) DB() *bun.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}

// SQLDB returns the underlying database/sql handle.
func (c *Connection) SQLDB() *sql.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sqlDB
}

// Logger returns the logger the connection reports to.
func (c *Connection) Logger() Logger {
	return c.logger
}

// Config returns a copy of the effective connection settings.
func (c *Connection) Config() ConnectionConfig {
	return *c.config
}

func (c *Connection) Ping(ctx context.Context) error {
	db := c.DB()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	return db.PingContext(ctx)
}

// Close releases the handle. Calling it more than once is a no-op.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	err := c.db.Close()
	c.db = nil
	c.sqlDB = nil
	if err != nil {
		c.logger.Error("Failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("Database connection closed", "dbname", c.config.DBName)
	return nil
}

func (c *Connection) Stats() *DBStats {
	sqlDB := c.SQLDB()
	if sqlDB == nil {
		return &DBStats{}
	}
	stats := sqlDB.Stats()
	return &DBStats{
		MaxOpenConns: stats.MaxOpenConnections,
		OpenConns:    stats.OpenConnections,
		InUse:        stats.InUse,
		Idle:         stats.Idle,
		WaitCount:    stats.WaitCount,
		WaitDuration: stats.WaitDuration,
	}
}
