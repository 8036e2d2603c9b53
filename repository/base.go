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

type baseRepositoryImpl[T any] struct {
	db   bun.IDB
	opts options
}

// NewRepository returns a generic read repository backed by db, which may be
// a *bun.DB, a bun.Tx or a bun.Conn.
func NewRepository[T any](db bun.IDB, opts ...Option) Repository[T] {
	r := &baseRepositoryImpl[T]{db: db}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) selectQuery(model interface{}) *bun.SelectQuery {
	query := r.db.NewSelect().Model(model)
	if len(r.opts.columns) > 0 {
		query = query.Column(r.opts.columns...)
	}
	return query
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, id any) (*T, error) {
	var entity T
	err := r.selectQuery(&entity).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context) ([]*T, error) {
	entities := make([]*T, 0)
	query := r.selectQuery(&entities)
	if len(r.opts.orders) > 0 {
		query = query.Order(r.opts.orders...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	if entities == nil {
		entities = make([]*T, 0)
	}
	return entities, nil
}
