package main

import (
	"flag"
	"fmt"
	"os"

	"chatstats/internal/di"
	"chatstats/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the yaml config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug mode")
	flag.StringVar(&flags.IngestFile, "ingest", "", "run one ingest pass over the given export and exit")
	flag.Parse()

	if flags.IngestFile != "" {
		pipeline, err := di.InitPipeline(flags)
		if err != nil {
			fmt.Fprintf(os.Stderr, "chatstats: %s\n", err)
			os.Exit(1)
		}
		if err := pipeline.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "chatstats: %s\n", err)
			os.Exit(1)
		}
		return
	}

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "chatstats: %s\n", err)
		os.Exit(1)
	}
}
