package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tmcewan/feedexport"
	"github.com/tmcewan/feedexport/config"
)

func handleServeCommand(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	fs.Parse(args)

	exporter, err := newExporter(cfg, cfg.SourceURL, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	server := feedexport.NewAPIServer(exporter)
	router := server.SetupRouter()

	fmt.Printf("Listening on %s\n", *addr)
	if err := router.Run(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		os.Exit(1)
	}
}
