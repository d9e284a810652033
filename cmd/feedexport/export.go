package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/tmcewan/feedexport"
	"github.com/tmcewan/feedexport/config"
	"github.com/tmcewan/feedexport/loader"
	"github.com/tmcewan/feedexport/post"
	"github.com/tmcewan/feedexport/runs"
	"github.com/tmcewan/feedexport/selectors"
)

func handleExportCommand(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	inPath := fs.String("in", "", "Path to the saved HTML page (required)")
	outDir := fs.String("out", cfg.OutputDir, "Directory for the rendered document")
	source := fs.String("source", cfg.SourceURL, "Export origin reference for the header")
	noRecord := fs.Bool("no-record", false, "Skip recording the run in history")
	verbose := fs.Bool("v", false, "Enable extraction debug logging")
	fs.Parse(args)

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		fs.Usage()
		os.Exit(1)
	}

	exporter, err := newExporter(cfg, *source, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open input: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	start := time.Now()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse HTML: %v\n", err)
		os.Exit(1)
	}

	// Load-everything phase: a no-op on snapshots, but it exercises the
	// same convergence path a live page binding would.
	page := loader.NewSnapshotPage(doc, nil)
	total, err := exporter.LoadAllPosts(context.Background(), page, func(p post.ScrollProgress) {
		fmt.Printf("[%s] %s\n", p.Phase, p.Message)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading failed: %v\n", err)
		os.Exit(1)
	}

	records := exporter.ExtractAllPosts(doc)
	markdown := exporter.RenderDocument(records)

	outPath := filepath.Join(*outDir, exporter.Filename())
	if err := os.WriteFile(outPath, []byte(markdown), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write document: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d post containers, extracted %d posts\n", total, len(records))
	fmt.Printf("Wrote %s\n", outPath)

	if !*noRecord {
		if err := recordRun(cfg, *source, len(records), outPath, time.Since(start)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record run: %v\n", err)
		}
	}
}

func newExporter(cfg *config.Config, source string, verbose bool) (*feedexport.Exporter, error) {
	reg, err := selectors.LoadOverrides(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}

	opts := []feedexport.Option{
		feedexport.WithRegistry(reg),
		feedexport.WithSourceURL(source),
	}
	if verbose {
		opts = append(opts, feedexport.WithDebugLog(log.New(os.Stderr, "extract: ", 0)))
	}
	return feedexport.New(opts...), nil
}

func recordRun(cfg *config.Config, source string, posts int, outPath string, elapsed time.Duration) error {
	store, err := runs.NewStore(cfg.RunsDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Add(runs.Run{
		RunID:      uuid.New(),
		SourceURL:  source,
		PostsFound: posts,
		OutputFile: outPath,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  time.Now(),
	})
}
