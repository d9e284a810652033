package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/tmcewan/feedexport/config"
	"github.com/tmcewan/feedexport/runs"
)

func handleRunsCommand(cfg *config.Config, action string, args []string) {
	store, err := runs.NewStore(cfg.RunsDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open run store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch action {
	case "list":
		handleRunsList(store, args)
	case "delete":
		handleRunsDelete(store, args)
	case "help", "--help", "-h":
		printRunsUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown runs command: %s\n\n", action)
		printRunsUsage()
		os.Exit(1)
	}
}

func handleRunsList(store *runs.Store, args []string) {
	fs := flag.NewFlagSet("runs list", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Output as JSON")
	fs.Parse(args)

	list, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list runs: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to marshal runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	if len(list) == 0 {
		fmt.Println("No export runs recorded.")
		return
	}

	for _, run := range list {
		fmt.Printf("%s\n", run.RunID)
		fmt.Printf("   %s | Posts: %d | Took: %dms\n", run.SourceURL, run.PostsFound, run.DurationMs)
		fmt.Printf("   Output: %s\n", run.OutputFile)
		fmt.Printf("   At: %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Println()
	}
}

func handleRunsDelete(store *runs.Store, args []string) {
	fs := flag.NewFlagSet("runs delete", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: run id is required")
		os.Exit(1)
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run id: %v\n", err)
		os.Exit(1)
	}

	if err := store.Delete(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete run: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted run %s\n", id)
}
