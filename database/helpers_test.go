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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type track struct {
	bun.BaseModel `bun:"table:tracks"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"`
}

func memoryConfig(t *testing.T) *ConnectionConfig {
	return &ConnectionConfig{
		Type:     "sqlite",
		DBName:   strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()),
		InMemory: true,
	}
}

func openTestConnection(t *testing.T) *Connection {
	t.Helper()

	conn, err := Connect(context.Background(), memoryConfig(t), WithLogger(NopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// migrateTracks creates the tracks table through a private registry.
func migrateTracks(t *testing.T, db *bun.DB) *MigrationManager {
	t.Helper()

	registry := NewModelRegistry()
	registry.Register((*track)(nil), 1)
	mm := NewMigrationManager(db, NopLogger()).WithRegistry(registry)
	require.NoError(t, mm.RunMigrations(context.Background()))
	return mm
}
