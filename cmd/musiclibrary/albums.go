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

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/tomoncle/musiclibrary/model"
)

const exitNotFound = exitCodeError(2)

func albumsList(ctx context.Context, cmd *cli.Command) error {
	lib, err := openLibrary(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	albums, err := lib.Albums().All(ctx)
	if err != nil {
		return err
	}
	renderAlbums(cmd.Root().Writer, albums)
	return nil
}

func albumsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := strconv.ParseInt(cmd.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid album id %q: %w", cmd.Args().First(), err)
	}

	lib, err := openLibrary(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	result, err := lib.Albums().Find(ctx, id)
	if err != nil {
		return err
	}
	album, ok := result.Get()
	if !ok {
		logger.WithField("id", id).Warn("Album not found")
		return exitNotFound
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, album.String())
	return err
}

func renderAlbums(w io.Writer, albums []*model.Album) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Title", "Release Year", "Artist ID"})
	for _, a := range albums {
		t.AppendRow(table.Row{a.ID, a.Title, a.ReleaseYear, a.ArtistID})
	}
	t.AppendFooter(table.Row{"", "Total", len(albums), ""})
	t.Render()
}
