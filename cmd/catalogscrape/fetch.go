package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/use-agent/catalogscrape/api/handler"
	"github.com/use-agent/catalogscrape/models"
)

// FetchCmd extracts a single page and writes the blocks to stdout.
type FetchCmd struct {
	URL    string `arg:"" required:"" help:"Catalog page URL"`
	Pretty bool   `short:"p" help:"Indent the JSON output"`
}

// Run performs one extraction. On failure nothing is written to stdout.
func (f *FetchCmd) Run(ctx context.Context, runner handler.Runner, stdout io.Writer) error {
	blocks, err := runner.Run(ctx, f.URL)
	if err != nil {
		var se *models.ScrapeError
		if errors.As(err, &se) {
			return fmt.Errorf("[%s] %s", se.Code, se.Detail())
		}
		return err
	}

	enc := json.NewEncoder(stdout)
	if f.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(blocks)
}
