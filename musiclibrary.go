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
	"fmt"

	"github.com/tomoncle/musiclibrary/database"
	"github.com/tomoncle/musiclibrary/repository"
)

// Library owns one database connection and hands out repositories over it.
type Library struct {
	conn   *database.Connection
	logger database.Logger
}

// Open connects using cfg. When cfg.Migrate.OnStartup is set the albums
// table is created if missing, and when cfg.Seed.OnStartup is set the seed
// file is executed afterwards.
func Open(ctx context.Context, cfg *database.Config, opts ...database.Option) (*Library, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	conn, err := database.Connect(ctx, &cfg.Connection, opts...)
	if err != nil {
		return nil, err
	}
	lib := &Library{conn: conn, logger: conn.Logger()}

	if cfg.Migrate.OnStartup {
		if err := lib.Migrate(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	if cfg.Seed.OnStartup && cfg.Seed.File != "" {
		if _, err := lib.Seed(ctx, cfg.Seed.File); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return lib, nil
}

// OpenByName connects to the named database on the default local server.
func OpenByName(ctx context.Context, dbName string, opts ...database.Option) (*Library, error) {
	conn, err := database.ConnectByName(ctx, dbName, opts...)
	if err != nil {
		return nil, err
	}
	return &Library{conn: conn, logger: conn.Logger()}, nil
}

// Albums returns a repository over the library's connection.
func (l *Library) Albums() *repository.AlbumRepository {
	return repository.NewAlbumRepository(l.conn.DB())
}

func (l *Library) Connection() *database.Connection {
	return l.conn
}

// Migrate creates the tables of registered models.
func (l *Library) Migrate(ctx context.Context) error {
	return database.NewMigrationManager(l.conn.DB(), l.logger).RunMigrations(ctx)
}

// Seed executes the SQL script at path.
func (l *Library) Seed(ctx context.Context, path string) (*database.SeedResult, error) {
	return database.NewSeeder(l.conn.DB(), l.logger).SeedFile(ctx, path)
}

func (l *Library) Close() error {
	return l.conn.Close()
}
