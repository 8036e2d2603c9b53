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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres", cfg.Type)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "music_library", cfg.DBName)
}

func TestLoadConfigFromYAML(t *testing.T) {
	cfg, err := LoadConfig("testdata/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Connection.Type)
	assert.Equal(t, "music_library_test", cfg.Connection.DBName)
	assert.True(t, cfg.Connection.InMemory)
	assert.Equal(t, 5*time.Second, cfg.Connection.ConnectTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Connection.SlowQueryTime)
	assert.Equal(t, "127.0.0.1", cfg.Connection.Host)
	assert.True(t, cfg.Migrate.OnStartup)
	assert.Equal(t, "testdata/seeds_tracks.sql", cfg.Seed.File)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "records")
	t.Setenv("DB_USERNAME", "reader")
	t.Setenv("DB_SLOW_QUERY_TIME", "3")
	t.Setenv("DB_ENABLE_QUERY_LOG", "1")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Connection.Type)
	assert.Equal(t, 3306, cfg.Connection.Port)
	assert.Equal(t, "db.internal", cfg.Connection.Host)
	assert.Equal(t, "records", cfg.Connection.DBName)
	assert.Equal(t, "reader", cfg.Connection.Username)
	assert.Equal(t, 3*time.Second, cfg.Connection.SlowQueryTime)
	assert.True(t, cfg.Connection.EnableQueryLog)
}

func TestLoadConfigIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("DB_SLOW_QUERY_TIME", "soon")
	t.Setenv("DB_ENABLE_QUERY_LOG", "maybe")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Connection.SlowQueryTime)
	assert.False(t, cfg.Connection.EnableQueryLog)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("testdata/missing.yaml")
	assert.Error(t, err)

	t.Setenv("DB_TYPE", "oracle")
	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "unsupported database type: oracle")
}

func TestValidateNormalizesType(t *testing.T) {
	cfg := &ConnectionConfig{Type: "PostgreSQL", DBName: "x"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres", cfg.Type)

	cfg = &ConnectionConfig{Type: "sqlite3"}
	assert.ErrorContains(t, cfg.Validate(), "database name cannot be empty")
}

func TestValidateInMemoryNeedsSQLite(t *testing.T) {
	require.NoError(t, (&ConnectionConfig{Type: "sqlite", InMemory: true}).Validate())
	assert.ErrorContains(t, (&ConnectionConfig{Type: "postgres", InMemory: true}).Validate(), "database name cannot be empty")
	assert.ErrorContains(t, (&ConnectionConfig{Type: "mysql", InMemory: true}).Validate(), "database name cannot be empty")
}
