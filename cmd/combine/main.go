package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/tumult/hype-documentation/internal/assemble"
	"github.com/tumult/hype-documentation/internal/assets"
	"github.com/tumult/hype-documentation/internal/config"
	"github.com/tumult/hype-documentation/internal/fragment"
	"github.com/tumult/hype-documentation/internal/preview"
	"github.com/tumult/hype-documentation/internal/rewrite"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "combine",
		Usage: "combine the markdown documentation into a single README and reconcile image assets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file"},
			&cli.BoolFlag{Name: "auto-cleanup", Aliases: []string{"y"}, Usage: "delete unused images without asking"},
			&cli.BoolFlag{Name: "skip-cleanup", Usage: "stop after writing the combined document"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "log errors only"},
		},
		Action: runCombine,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "build the document and serve a rendered preview over HTTP",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config)"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func setup(c *cli.Context) (config.Config, *slog.Logger, error) {
	log := newLogger(c.Bool("quiet"))

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, log, nil
}

func runCombine(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}

	// Step 1: combine the fragments.
	if _, err := buildDocument(cfg, log); err != nil {
		return err
	}

	if c.Bool("skip-cleanup") {
		return nil
	}

	// Step 2: reconcile the images folder against the document.
	return cleanupAssets(cfg, log, c.Bool("auto-cleanup"))
}

func runServe(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.ListenAddr = addr
	}

	// Rebuild so the preview reflects the current fragments.
	if _, err := buildDocument(cfg, log); err != nil {
		return err
	}

	srv := preview.NewServer(log, cfg)
	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("serving preview", "addr", cfg.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// buildDocument combines the fragments and writes the output file. A source
// directory with no fragments leaves the output untouched.
func buildDocument(cfg config.Config, log *slog.Logger) (assemble.Result, error) {
	src := fragment.NewDir(cfg.SourceDir, filepath.Base(cfg.OutputFile))
	rw := rewrite.New(cfg.DocumentBaseURL, cfg.AssetBaseURL)

	res, err := assemble.New(src, rw, cfg.Title, cfg.Overrides, log).Build()
	if err != nil {
		return assemble.Result{}, err
	}
	if len(res.Fragments) == 0 {
		log.Warn("no markdown fragments found", "dir", cfg.SourceDir)
		return res, nil
	}

	if err := os.WriteFile(cfg.OutputFile, []byte(res.Markdown), 0o644); err != nil {
		return assemble.Result{}, fmt.Errorf("write %s: %w", cfg.OutputFile, err)
	}
	log.Info("combined document written",
		"file", cfg.OutputFile,
		"fragments", len(res.Fragments),
		"failed", res.Failed,
	)
	return res, nil
}

// cleanupAssets diffs the images folder against what the written document
// references, then deletes the difference or records it, depending on
// policy.
func cleanupAssets(cfg config.Config, log *slog.Logger, auto bool) error {
	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	refs := assets.ExtractReferences(string(data), cfg.AssetBaseURL)
	log.Info("image references collected", "count", len(refs))

	rec := &assets.Reconciler{Dir: cfg.ImagesDir, Log: log}
	res, err := rec.Reconcile(refs)
	if err != nil {
		return err
	}

	if res.Clean() {
		log.Info("all images referenced", "inventory", len(res.Inventory))
		logUsage(log, res)
		return nil
	}

	fmt.Printf("Found %d unused files in %s:\n", len(res.Unused), cfg.ImagesDir)
	for _, name := range res.Unused {
		fmt.Printf("  %s (%d bytes)\n", name, res.Inventory[name])
	}
	fmt.Printf("Total: %d bytes (%.2f MB)\n", res.UnusedSize, float64(res.UnusedSize)/1024/1024)

	if auto || confirmDeletion(len(res.Unused)) {
		deleted, freed := rec.DeleteUnused(res)
		log.Info("cleanup complete", "deleted", deleted, "bytes_freed", freed)
	} else {
		if err := assets.WriteReport(cfg.ReportFile, filepath.Base(cfg.OutputFile), res); err != nil {
			return err
		}
		log.Info("deletion declined, report written", "file", cfg.ReportFile)
	}

	logUsage(log, res)
	return nil
}

func logUsage(log *slog.Logger, res assets.Result) {
	if len(res.Inventory) == 0 {
		return
	}
	used := len(res.Inventory) - len(res.Unused)
	log.Info("image usage",
		"referenced", res.Referenced,
		"inventory", len(res.Inventory),
		"unused", len(res.Unused),
		"usage_rate_pct", fmt.Sprintf("%.1f", float64(used)/float64(len(res.Inventory))*100),
	)
}

func confirmDeletion(count int) bool {
	fmt.Printf("Delete these %d unused files? (yes/no): ", count)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
