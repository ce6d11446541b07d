package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/porticus-lab/go-proposal-pdf/internal/pdftext"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "show version, page sizes and optionally the text of a PDF",
		ArgsUsage: "<file.pdf>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "text", Aliases: []string{"t"}, Usage: "print extracted page text"},
			&cli.StringFlag{Name: "pages", Aliases: []string{"p"}, Usage: `page range, e.g. "1", "1-5", "1,3,5" (default: all)`},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "text output format: text, json, markdown"},
		},
		Action: runInspect,
	}
}

func runInspect(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("inspect: exactly one PDF file is required", 2)
	}
	input := c.Args().First()

	doc, err := pdftext.Open(input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", input, err)
	}

	out := c.App.Writer
	if !c.Bool("text") {
		printInfo(out, input, doc)
		return nil
	}

	indices, err := parsePageRange(c.String("pages"), doc.NumPages())
	if err != nil {
		return fmt.Errorf("invalid page range %q: %w", c.String("pages"), err)
	}
	return printText(out, envFrom(c).log, doc, indices, c.String("format"))
}

func printInfo(out io.Writer, name string, doc *pdftext.Document) {
	pages := doc.Pages()
	fmt.Fprintf(out, "File:    %s\n", name)
	fmt.Fprintf(out, "Version: PDF-%s\n", doc.Version())
	fmt.Fprintf(out, "Pages:   %d\n", len(pages))
	if len(pages) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Page dimensions:")
	for i, info := range pages {
		fmt.Fprintf(out, "  Page %d: %.0f x %.0f pt", i+1, info.Width, info.Height)
		if info.Rotation != 0 {
			fmt.Fprintf(out, " (rotated %d°)", info.Rotation)
		}
		fmt.Fprintln(out)
	}
}

type pageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

func printText(out io.Writer, log *zap.Logger, doc *pdftext.Document, indices []int, format string) error {
	ext := pdftext.NewExtractor(doc)
	var results []pageText
	for _, idx := range indices {
		text, err := ext.ExtractPage(idx)
		if err != nil {
			log.Warn("page text unavailable", zap.Int("page", idx+1), zap.Error(err))
			continue
		}
		results = append(results, pageText{Page: idx + 1, Text: text})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "markdown":
		for _, r := range results {
			fmt.Fprintf(out, "## Page %d\n\n%s\n\n", r.Page, r.Text)
		}
	case "text", "":
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(out, "\f")
			}
			fmt.Fprintln(out, r.Text)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
