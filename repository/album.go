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
	"database/sql"
	"errors"

	"github.com/tomoncle/musiclibrary/model"
	"github.com/tomoncle/musiclibrary/types"
	"github.com/uptrace/bun"
)

// AlbumRepository reads rows of the albums table.
type AlbumRepository struct {
	base Repository[model.Album]
}

func NewAlbumRepository(db bun.IDB) *AlbumRepository {
	return &AlbumRepository{
		base: NewRepository[model.Album](db,
			WithColumns(model.AlbumColumns...),
			WithOrder("id ASC"),
		),
	}
}

// All returns every album ordered by id.
func (r *AlbumRepository) All(ctx context.Context) ([]*model.Album, error) {
	return r.base.GetAll(ctx)
}

// Find returns the album with the given id, or an empty Optional when no
// row matches. Any other error is returned unchanged.
func (r *AlbumRepository) Find(ctx context.Context, id int64) (types.Optional[model.Album], error) {
	album, err := r.base.GetOne(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.None[model.Album](), nil
	}
	if err != nil {
		return types.None[model.Album](), err
	}
	return types.Some(album), nil
}
