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

package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomoncle/musiclibrary/database"
	"github.com/uptrace/bun"
)

// openTestDB returns an empty in-memory sqlite database private to the test.
func openTestDB(t *testing.T) *bun.DB {
	t.Helper()

	conn, err := database.Connect(context.Background(), &database.ConnectionConfig{
		Type:     "sqlite",
		DBName:   strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()),
		InMemory: true,
	}, database.WithLogger(database.NopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn.DB()
}

// openSeededDB bootstraps the albums table and loads the album fixtures.
func openSeededDB(t *testing.T) *bun.DB {
	t.Helper()

	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, database.NewMigrationManager(db, database.NopLogger()).RunMigrations(ctx))
	_, err := database.NewSeeder(db, database.NopLogger()).SeedFile(ctx, "testdata/seeds_albums.sql")
	require.NoError(t, err)
	return db
}
