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
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Seeder executes SQL fixture scripts. Each script runs in one transaction,
// so a failing statement leaves the database untouched.
type Seeder struct {
	db     *bun.DB
	logger Logger
}

// SeedResult describes one executed script.
type SeedResult struct {
	File         string
	Statements   int
	RowsAffected int64
	Duration     time.Duration
}

func NewSeeder(db *bun.DB, logger Logger) *Seeder {
	if logger == nil {
		logger = GetLogger()
	}
	return &Seeder{db: db, logger: logger}
}

// SeedFile executes the script at path.
func (s *Seeder) SeedFile(ctx context.Context, path string) (*SeedResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return s.Exec(ctx, path, string(content))
}

// SeedFS executes the script name read from fsys.
func (s *Seeder) SeedFS(ctx context.Context, fsys fs.FS, name string) (*SeedResult, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return s.Exec(ctx, name, string(content))
}

// Exec splits content into statements and runs them in order. name is only
// used for logging and the result.
func (s *Seeder) Exec(ctx context.Context, name, content string) (*SeedResult, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	start := time.Now()
	result := &SeedResult{File: name}
	statements := SplitSQLStatements(content)
	if len(statements) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, stmt := range statements {
			res, err := tx.ExecContext(ctx, stmt)
			if err != nil {
				return fmt.Errorf("failed to execute SQL statement: %s, error: %w", stmt, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				result.RowsAffected += n
			}
			result.Statements++
		}
		return nil
	})
	result.Duration = time.Since(start)
	if err != nil {
		_, kind := ClassifySQLError(err)
		s.logger.Error("Seed file execution failed", "file", name, "kind", kind, "error", err)
		return nil, fmt.Errorf("seed file %s: %w", name, err)
	}

	s.logger.Info("Seed file executed successfully",
		"file", name,
		"statements", result.Statements,
		"rows_affected", result.RowsAffected,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// SplitSQLStatements splits a script into statements terminated by ';' at
// the end of a line. Blank lines and lines starting with "--" are skipped.
// A trailing statement without ';' is kept.
func SplitSQLStatements(content string) []string {
	var statements []string
	var current strings.Builder

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(line)

		if strings.HasSuffix(line, ";") {
			if stmt := strings.TrimSpace(current.String()); stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}
	return statements
}
