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

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// ReadRepository defines the read operations for a generic entity type.
type ReadRepository[T any] interface {
	// GetOne returns the entity whose id matches. A missing row is reported
	// as sql.ErrNoRows, unchanged from the driver.
	GetOne(ctx context.Context, id any) (*T, error)

	// GetAll returns every row. An empty table yields an empty slice.
	GetAll(ctx context.Context) ([]*T, error)
}

// Repository combines read operations with access to the Bun query builder
// for callers that need more than the basic reads.
type Repository[T any] interface {
	ReadRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
}

// Option configures a repository.
type Option func(*options)

type options struct {
	columns []string
	orders  []string
}

// WithColumns restricts selects to the given columns, in order.
func WithColumns(columns ...string) Option {
	return func(o *options) { o.columns = append(o.columns, columns...) }
}

// WithOrder sets the ORDER BY of GetAll, e.g. "id ASC".
func WithOrder(orders ...string) Option {
	return func(o *options) { o.orders = append(o.orders, orders...) }
}
