package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tmcewan/feedexport/config"
	"github.com/tmcewan/feedexport/report"
)

func handleReportCommand(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	inPath := fs.String("in", "", "Path to the saved HTML page (required)")
	outPath := fs.String("out", "report.html", "Path for the HTML report")
	source := fs.String("source", cfg.SourceURL, "Export origin reference")
	fs.Parse(args)

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		fs.Usage()
		os.Exit(1)
	}

	exporter, err := newExporter(cfg, *source, false)
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

	doc, err := exporter.ExportSnapshot(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: extraction failed: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create report: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := report.Write(out, doc.Records, "Feed Export Report"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to render report: %v\n", err)
		os.Exit(1)
	}

	summary := report.Summarize(doc.Records)
	fmt.Printf("Wrote %s\n\n", *outPath)
	fmt.Printf("Total Posts: %d\n", summary.TotalPosts)
	fmt.Printf("Posts with Images: %d\n", summary.ImagePosts)
	fmt.Printf("Posts with Videos: %d\n", summary.VideoPosts)
	fmt.Printf("Reposts: %d\n", summary.Reposts)
	fmt.Printf("Original Posts: %d\n", summary.OriginalPosts)
}
