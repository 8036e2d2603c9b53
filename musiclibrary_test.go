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

package musiclibrary

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/musiclibrary/database"
)

func testConfig(t *testing.T) *database.Config {
	return &database.Config{
		Connection: database.ConnectionConfig{Type: "sqlite", DBName: t.Name(), InMemory: true},
		Migrate:    database.MigrateConfig{OnStartup: true},
		Seed:       database.SeedConfig{OnStartup: true, File: "testdata/seeds_albums.sql"},
	}
}

func TestOpenMigratesAndSeeds(t *testing.T) {
	ctx := context.Background()
	lib, err := Open(ctx, testConfig(t), database.WithLogger(database.NopLogger()))
	require.NoError(t, err)
	defer func() { _ = lib.Close() }()

	albums, err := lib.Albums().All(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, "Surfer Rosa", albums[0].Title)
	assert.Equal(t, "Super Trouper", albums[1].Title)

	found, err := lib.Albums().Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, albums[0], found.MustGet())

	missing, err := lib.Albums().Find(ctx, 3)
	require.NoError(t, err)
	assert.False(t, missing.IsPresent())
}

func TestOpenSeedFailureClosesConnection(t *testing.T) {
	cfg := testConfig(t)
	cfg.Seed.File = "testdata/does_not_exist.sql"

	_, err := Open(context.Background(), cfg, database.WithLogger(database.NopLogger()))
	assert.ErrorContains(t, err, "failed to read seed file")
}

func TestOpenWithoutMigration(t *testing.T) {
	cfg := testConfig(t)
	cfg.Migrate.OnStartup = false
	cfg.Seed.OnStartup = false
	ctx := context.Background()

	lib, err := Open(ctx, cfg, database.WithLogger(database.NopLogger()))
	require.NoError(t, err)
	defer func() { _ = lib.Close() }()

	_, err = lib.Albums().All(ctx)
	require.Error(t, err)

	require.NoError(t, lib.Migrate(ctx))
	result, err := lib.Seed(ctx, "testdata/seeds_albums.sql")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Statements)
	assert.NoError(t, lib.Connection().Ping(ctx))
}

func TestOpenNilConfig(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.Error(t, err)
}

func TestOpenByName(t *testing.T) {
	seedFile, err := filepath.Abs("testdata/seeds_albums.sql")
	require.NoError(t, err)
	t.Setenv("DB_TYPE", "sqlite")
	t.Chdir(t.TempDir())
	ctx := context.Background()

	lib, err := OpenByName(ctx, "library", database.WithLogger(database.NopLogger()))
	require.NoError(t, err)
	defer func() { _ = lib.Close() }()

	assert.Equal(t, "library", lib.Connection().Config().DBName)
	require.NoError(t, lib.Migrate(ctx))
	_, err = lib.Seed(ctx, seedFile)
	require.NoError(t, err)

	found, err := lib.Albums().Find(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Super Trouper", found.MustGet().Title)
}
