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
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/tomoncle/musiclibrary"
	"github.com/tomoncle/musiclibrary/database"
	"github.com/tomoncle/musiclibrary/utils"
)

var logger = utils.NewLogger("CLI")

func main() {
	utils.ConfigureConsoleOutput(os.Stderr)
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		var exitCode exitCodeError
		if errors.As(err, &exitCode) {
			os.Exit(int(exitCode))
		}
		logger.WithError(err).Error("Application exited with error")
		os.Exit(1)
	}
}

type exitCodeError int

func (e exitCodeError) Error() string {
	return "error with exit code: " + strconv.Itoa(int(e))
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "musiclibrary",
		Usage: "Read albums from the music library database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file path",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database name, overrides the config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "trace, debug, info, warn or error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "text or json",
				Sources: cli.EnvVars("CONSOLE_LOG_FORMAT"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// stdout carries command results only.
			errWriter := cmd.Root().ErrWriter
			if errWriter == nil {
				errWriter = os.Stderr
			}
			utils.ConfigureConsoleOutput(errWriter)
			utils.ConfigureConsoleLogFormat(cmd.String("log-format"))
			utils.ConfigureLogLevel(cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "albums",
				Usage: "Album commands",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all albums",
						Action: albumsList,
					},
					{
						Name:      "show",
						Usage:     "Show one album",
						ArgsUsage: "<id>",
						Action:    albumsShow,
					},
				},
			},
			{
				Name:   "migrate",
				Usage:  "Create missing tables",
				Action: migrate,
			},
			{
				Name:      "seed",
				Usage:     "Execute a SQL seed script",
				ArgsUsage: "<file>",
				Action:    seed,
			},
		},
	}
}

// openLibrary loads .env, the config file and flag overrides, then connects.
func openLibrary(ctx context.Context, cmd *cli.Command) (*musiclibrary.Library, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
		logger.Debug(".env file was not found")
	}

	cfg, err := database.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if name := cmd.String("db"); name != "" {
		cfg.Connection.DBName = name
	}

	lib, err := musiclibrary.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	return lib, nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	lib, err := openLibrary(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	return lib.Migrate(ctx)
}

func seed(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("seed file is required")
	}

	lib, err := openLibrary(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	result, err := lib.Seed(ctx, path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "%s: %d statements, %d rows affected\n", result.File, result.Statements, result.RowsAffected)
	return err
}
