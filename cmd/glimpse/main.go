// ABOUTME: CLI entry point for glimpse with terminal crash recovery
// ABOUTME: Parses flags, loads config, launches the browser, runs the render loop

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mauromedda/glimpse/internal/app"
	"github.com/mauromedda/glimpse/internal/browser"
	"github.com/mauromedda/glimpse/internal/config"
	glog "github.com/mauromedda/glimpse/internal/log"
	"github.com/mauromedda/glimpse/pkg/render"
	"github.com/mauromedda/glimpse/pkg/term"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("glimpse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings and dispatches to the one-shot modes or the live
// session.
func run(args cliArgs) error {
	if args.verbose {
		glog.SetLevel(glog.LevelDebug)
	}

	if args.palette {
		return printPalette(os.Stdout)
	}

	cfgPath := args.config
	if cfgPath == "" {
		cfgPath = config.File()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyOverrides(cfg, args)

	if args.file != "" {
		return renderFile(os.Stdout, args.file)
	}

	if len(args.remaining()) != 1 {
		return fmt.Errorf("usage: glimpse [flags] <url>")
	}
	url := normalizeURL(args.remaining()[0])

	// The terminal shows frames, so logs go to a file.
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			glog.SetWriter(f)
			defer f.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runLive(ctx, cfg, url)
}

// runLive owns the browser and terminal for the duration of a session.
func runLive(ctx context.Context, cfg *config.Config, url string) error {
	glog.Info("launching browser for %s", url)
	b, err := browser.Launch(ctx, browser.Options{
		ExecPath: cfg.ChromePath,
		Width:    cfg.Viewport.Width,
		Height:   cfg.Viewport.Height,
	})
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	defer b.Close()

	page, err := b.NewPage(ctx, cfg.Quality, cfg.Viewport.Width, cfg.Viewport.Height)
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	if err := page.Navigate(ctx, url); err != nil {
		return err
	}

	t := term.NewProcessTerminal()
	defer term.RestoreOnPanic(t)

	filter := render.FilterLive
	if cfg.Filter == "catmullrom" {
		filter = render.FilterStatic
	}
	pipeline := render.NewPipeline(render.NewLookup(), filter, 0)
	session := app.New(t, page, pipeline, os.Stdin, app.Options{
		URL:       url,
		FPS:       cfg.FPS,
		Period:    cfg.Period(),
		StatusBar: cfg.StatusBar,
	})
	return session.Run(ctx)
}

// applyOverrides lets CLI flags win over the config file.
func applyOverrides(cfg *config.Config, args cliArgs) {
	if args.fps > 0 {
		cfg.FPS = args.fps
	}
	if args.chrome != "" {
		cfg.ChromePath = args.chrome
	}
	if args.status {
		cfg.StatusBar = true
	}
}

// normalizeURL fills in a missing scheme; bare hostnames are the
// common way to invoke a browser from a shell.
func normalizeURL(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}
