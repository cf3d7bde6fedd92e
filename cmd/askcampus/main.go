// Copyright 2025 Poiesic Systems
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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/askcampus"
	"github.com/poiesic/askcampus/config"
	"github.com/poiesic/askcampus/ingest"
	"github.com/urfave/cli/v2"
)

func main() {
	// API keys may live in a local .env file instead of the environment.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "askcampus",
		Usage: "Question answering over an institution's public website",
		Flags: []cli.Flag{
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
				Name:   "build",
				Usage:  "Ingest the site and build the retrieval indexes",
				Action: buildCommand,
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:  "force-refresh",
						Usage: "Bypass the page cache and refetch every location",
					},
				),
			},
			{
				Name:      "query",
				Usage:     "Answer a single question and exit",
				ArgsUsage: "<question>",
				Action:    queryCommand,
				Flags:     commonFlags(),
			},
			{
				Name:   "chat",
				Usage:  "Answer questions interactively",
				Action: chatCommand,
				Flags:  commonFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./askcampus_db",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Root URL of the institution website",
			Value: "https://www.jiit.ac.in",
		},
		&cli.StringFlag{
			Name:  "sitemap-url",
			Usage: "Sitemap URL (defaults to <base-url>/sitemap.xml)",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

func buildConfig(c *cli.Context) (*config.Config, error) {
	opts := []config.Option{
		config.WithBaseURL(c.String("base-url")),
		config.WithEmbedding(c.String("embedding-host"), c.String("embedding-model")),
		config.WithGroqAPIKey(os.Getenv("GROQ_API_KEY")),
		config.WithOpenAIAPIKey(os.Getenv("OPENAI_API_KEY")),
	}
	if sitemap := c.String("sitemap-url"); sitemap != "" {
		opts = append(opts, config.WithSitemapURL(sitemap))
	}
	return config.New(opts...)
}

func openAssistant(c *cli.Context) (*askcampus.Assistant, error) {
	cfg, err := buildConfig(c)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	assistant, err := askcampus.New(c.String("db"), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open assistant: %w", err)
	}
	return assistant, nil
}

// consoleReporter prints progress lines as they arrive. Updates come from
// fetch workers, so they are funneled through a channel and printed by one
// goroutine; the returned stop function flushes and joins it.
func consoleReporter() (ingest.Reporter, func()) {
	lines := make(chan string, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for line := range lines {
			fmt.Fprintln(os.Stderr, line)
		}
	}()

	reporter := ingest.ReporterFunc(func(stage, message string) {
		lines <- fmt.Sprintf("[%s] %s", stage, message)
	})
	stop := func() {
		close(lines)
		<-done
	}
	return reporter, stop
}

func buildCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	reporter, stop := consoleReporter()
	defer stop()

	ctx := context.Background()
	if c.Bool("force-refresh") {
		err = assistant.Rebuild(ctx, true, reporter)
	} else {
		err = assistant.Initialize(ctx, reporter)
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Build complete.")
	return nil
}

func queryCommand(c *cli.Context) error {
	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("usage: askcampus query <question>")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	reporter, stop := consoleReporter()
	defer stop()

	ctx := context.Background()
	if err := assistant.Initialize(ctx, reporter); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	fmt.Println(assistant.Query(ctx, question))
	return nil
}

func chatCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	reporter, stop := consoleReporter()
	defer stop()

	ctx := context.Background()
	if err := assistant.Initialize(ctx, reporter); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	fmt.Println("Ask a question, or type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "exit" || question == "quit" {
			break
		}
		fmt.Println(assistant.Query(ctx, question))
		fmt.Println()
	}
	return scanner.Err()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
