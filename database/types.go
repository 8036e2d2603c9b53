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
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomoncle/musiclibrary/utils"
)

const (
	DefaultHost      = "127.0.0.1"
	DefaultDBName    = "music_library"
	DefaultDBType    = "postgres"
	defaultPGPort    = 5432
	defaultMySQLPort = 3306
)

// ConnectionConfig describes how to reach a single database.
type ConnectionConfig struct {
	Type           string        `json:"type" yaml:"type"` // postgres、mysql、sqlite
	Host           string        `json:"host" yaml:"host"`
	Port           int           `json:"port" yaml:"port"`
	Username       string        `json:"username" yaml:"username"`
	Password       string        `json:"password" yaml:"password"`
	DBName         string        `json:"dbname" yaml:"dbname"`
	SSLMode        string        `json:"sslmode" yaml:"sslmode"`
	InMemory       bool          `json:"in_memory" yaml:"in_memory"` // sqlite only
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`
	EnableQueryLog bool          `json:"enable_query_log" yaml:"enable_query_log"`
	SlowQueryTime  time.Duration `json:"slow_query_time" yaml:"slow_query_time"`
}

// MigrateConfig controls table bootstrap on startup.
type MigrateConfig struct {
	OnStartup bool `json:"on_startup" yaml:"on_startup"`
}

// SeedConfig points at a SQL script executed after bootstrap.
type SeedConfig struct {
	OnStartup bool   `json:"on_startup" yaml:"on_startup"`
	File      string `json:"file" yaml:"file"`
}

// Config aggregates connection, bootstrap and seed settings.
type Config struct {
	Connection ConnectionConfig `json:"connection" yaml:"connection"`
	Migrate    MigrateConfig    `json:"migrate" yaml:"migrate"`
	Seed       SeedConfig       `json:"seed" yaml:"seed"`
}

// DefaultConnectionConfig returns the fixed local postgres endpoint. The
// port is left zero and filled in by Validate for the chosen dialect.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Type:           DefaultDBType,
		Host:           DefaultHost,
		DBName:         DefaultDBName,
		SSLMode:        "disable",
		ConnectTimeout: time.Second * 10,
		SlowQueryTime:  time.Second * 2,
	}
}

// DefaultConfig returns a Config wrapping DefaultConnectionConfig.
func DefaultConfig() *Config {
	return &Config{Connection: *DefaultConnectionConfig()}
}

// LoadConfig reads a YAML file on top of the defaults and then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	cfg.Connection.overrideFromEnv()
	if err := cfg.Connection.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the dialect and fills in the port for the chosen type.
func (c *ConnectionConfig) Validate() error {
	c.Type = normalizeType(c.Type)
	switch c.Type {
	case "postgres":
		if c.Port == 0 {
			c.Port = defaultPGPort
		}
	case "mysql":
		if c.Port == 0 {
			c.Port = defaultMySQLPort
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported database type: %s, supported types: %v", c.Type, supportedTypes)
	}
	if c.DBName == "" && !(c.InMemory && c.Type == "sqlite") {
		return fmt.Errorf("database name cannot be empty")
	}
	return nil
}

var supportedTypes = []string{"mysql", "postgres", "sqlite"}

func normalizeType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "postgresql", "pg":
		return "postgres"
	case "sqlite3":
		return "sqlite"
	default:
		return strings.ToLower(strings.TrimSpace(t))
	}
}

// overrideFromEnv overrides configuration values from environment variables.
func (c *ConnectionConfig) overrideFromEnv() {
	if typ := os.Getenv("DB_TYPE"); typ != "" {
		c.Type = typ
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		c.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Port = p
		}
	}
	if username := os.Getenv("DB_USERNAME"); username != "" {
		c.Username = username
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		c.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		c.DBName = dbname
	}
	if sslmode := os.Getenv("DB_SSLMODE"); sslmode != "" {
		c.SSLMode = sslmode
	}
	c.EnableQueryLog = utils.EnvDefaultBool("DB_ENABLE_QUERY_LOG", c.EnableQueryLog)
	c.SlowQueryTime = utils.EnvDefaultSeconds("DB_SLOW_QUERY_TIME", c.SlowQueryTime)
}
