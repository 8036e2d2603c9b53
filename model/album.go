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

package model

import (
	"fmt"

	"github.com/tomoncle/musiclibrary/database"
	"github.com/uptrace/bun"
)

const AlbumTable = "albums"

// AlbumColumns lists the albums columns in select order. It must match the
// bun tags on Album.
var AlbumColumns = []string{"id", "title", "release_year", "artist_id"}

// Album is one row of the albums table.
type Album struct {
	bun.BaseModel `bun:"table:albums,alias:a"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Title       string `bun:"title,notnull" json:"title"`
	ReleaseYear int    `bun:"release_year" json:"release_year"`
	ArtistID    int64  `bun:"artist_id" json:"artist_id"`
}

func (a Album) String() string {
	return fmt.Sprintf("%d - %s - %d - %d", a.ID, a.Title, a.ReleaseYear, a.ArtistID)
}

func init() {
	database.RegisterModel((*Album)(nil), 10)
}
