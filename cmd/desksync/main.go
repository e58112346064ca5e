// Copyright 2026 Helix Data Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "desksync",
		Usage: "Sync helpdesk articles into the vector store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (environment overrides apply on top)",
				EnvVars: []string{"DESKSYNC_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the full sync pipeline",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "full-refresh",
						Usage: "Empty the vector table before uploading",
					},
				},
			},
			{
				Name:   "fetch",
				Usage:  "Fetch article metadata and content from the helpdesk API",
				Action: fetchCommand,
			},
			{
				Name:   "convert",
				Usage:  "Convert fetched articles into vector records",
				Action: convertCommand,
			},
			{
				Name:   "sync",
				Usage:  "Diff converted records against the last snapshot and stage a new one",
				Action: syncCommand,
			},
			{
				Name:   "enrich",
				Usage:  "Stage the work list of records needing new embeddings",
				Action: enrichCommand,
			},
			{
				Name:   "embed",
				Usage:  "Embed the staged work list and update the snapshot",
				Action: embedCommand,
			},
			{
				Name:   "upload",
				Usage:  "Upload the latest snapshot to Postgres",
				Action: uploadCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "full-refresh",
						Usage: "Empty the vector table before uploading",
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Match fetched articles to existing records by title similarity",
				Action: matchCommand,
			},
			{
				Name:   "check",
				Usage:  "Verify tunnel, object storage and database connectivity",
				Action: checkCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
