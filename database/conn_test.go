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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteInMemory(t *testing.T) {
	conn := openTestConnection(t)
	ctx := context.Background()

	require.NoError(t, conn.Ping(ctx))
	assert.NotNil(t, conn.DB())
	assert.NotNil(t, conn.SQLDB())
	assert.Equal(t, "sqlite", conn.Config().Type)
	assert.Equal(t, 1, conn.Stats().MaxOpenConns)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())
	assert.Nil(t, conn.DB())
	assert.Error(t, conn.Ping(ctx))
	assert.Equal(t, &DBStats{}, conn.Stats())
}

func TestConnectByName(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_NAME", "from_env")
	t.Chdir(t.TempDir())

	conn, err := ConnectByName(context.Background(), "library", WithLogger(NopLogger()))
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	_, err = conn.DB().NewRaw("SELECT 1").Exec(context.Background())
	require.NoError(t, err)

	cfg := conn.Config()
	assert.Equal(t, "sqlite", cfg.Type)
	assert.Equal(t, "library", cfg.DBName)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.False(t, cfg.InMemory)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 2*time.Second, cfg.SlowQueryTime)
	assert.FileExists(t, "library.db")
}

func TestConnectCopiesConfig(t *testing.T) {
	cfg := memoryConfig(t)
	conn, err := Connect(context.Background(), cfg, WithLogger(NopLogger()))
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	cfg.DBName = "changed"
	assert.NotEqual(t, "changed", conn.Config().DBName)
}

func TestConnectRejectsBadConfig(t *testing.T) {
	ctx := context.Background()

	_, err := Connect(ctx, nil)
	assert.Error(t, err)

	_, err = Connect(ctx, &ConnectionConfig{Type: "oracle", DBName: "x"}, WithLogger(NopLogger()))
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestConnectSurfacesDriverFailure(t *testing.T) {
	cfg := &ConnectionConfig{
		Type:   "sqlite",
		DBName: t.TempDir() + "/missing/dir/library.db",
	}
	_, err := Connect(context.Background(), cfg, WithLogger(NopLogger()))
	assert.ErrorContains(t, err, "database connection test failed")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "music_library.db", sqliteDSN(&ConnectionConfig{DBName: "music_library"}))
	assert.Equal(t, "/tmp/lib.sqlite", sqliteDSN(&ConnectionConfig{DBName: "/tmp/lib.sqlite"}))
	assert.Equal(t, "file:memdb?mode=memory&cache=shared", sqliteDSN(&ConnectionConfig{InMemory: true}))
}

func TestPostgresUserInfo(t *testing.T) {
	assert.Equal(t, "reader", postgresUserInfo("reader", ""))
	assert.Equal(t, "reader:p%40ss", postgresUserInfo("reader", "p@ss"))
}
