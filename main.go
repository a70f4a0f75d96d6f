package main

import (
	"flag"
	"log"

	"golang.org/x/xerrors"

	"github.com/aquasecurity/oval2json/oval"
)

var (
	input    = flag.String("input", "-", "OVAL XML file path or http(s) URL (.bz2, .gz and .zst are decompressed), - for stdin")
	output   = flag.String("output", "-", "JSON output file path, - for stdout")
	retry    = flag.Int("retry", oval.NewConfig().Retry, "retry count when fetching a URL")
	progress = flag.Bool("progress", false, "show a progress bar on stderr")
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error during OVAL to JSON conversion: %s", err)
	}
}

func run() error {
	flag.Parse()

	c := oval.NewConfig()
	c.Input = *input
	c.Output = *output
	c.Retry = *retry
	c.Progress = *progress

	if err := c.Run(); err != nil {
		return xerrors.Errorf("conversion error: %w", err)
	}
	return nil
}
