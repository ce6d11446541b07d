package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	proposalpdf "github.com/porticus-lab/go-proposal-pdf"
	"github.com/porticus-lab/go-proposal-pdf/internal/normalize"
	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render a proposal record to PDF",
		ArgsUsage: "<record.json|->",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "normalized",
				Usage: "input is an already normalized proposal document (JSON or YAML)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output directory; the file is named after the proposal (default: output_dir)",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "write to this exact path instead of the output directory",
			},
		},
		Action: runRender,
	}
}

func runRender(c *cli.Context) error {
	e := envFrom(c)
	if c.NArg() != 1 {
		return cli.Exit("render: exactly one input file is required", 2)
	}
	input := c.Args().First()

	data, err := readInput(input)
	if err != nil {
		return err
	}

	var doc *proposal.Document
	if c.Bool("normalized") {
		doc, err = decodeDocument(input, data)
	} else {
		doc, err = normalizeRecord(e, data)
	}
	if err != nil {
		return err
	}

	opts, err := e.cfg.GeneratorOptions(e.log)
	if err != nil {
		return err
	}
	g := proposalpdf.New(opts...)

	ro := &proposalpdf.RenderOptions{Dir: c.String("out")}
	if ro.Dir == "" {
		ro.Dir = e.cfg.OutputDir
	}
	file := c.String("file")
	if file != "" {
		ro.Preview = true
	}

	res, err := g.Render(c.Context, doc, ro)
	if err != nil {
		return err
	}

	path := res.Path()
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := res.WriteToFile(file, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", file, err)
		}
		path = file
	}
	fmt.Fprintf(c.App.Writer, "%s (%d pages, %d bytes)\n", path, res.PageCount(), res.Len())
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func normalizeRecord(e *env, data []byte) (*proposal.Document, error) {
	rec, err := normalize.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	n := normalize.New(
		normalize.WithLogger(e.log),
		normalize.WithDefaultTexts(e.cfg.Texts.Policy, e.cfg.Texts.Conditions),
	)
	return n.Normalize(rec)
}

// decodeDocument reads a normalized document, as YAML for .yaml/.yml
// files and as JSON otherwise.
func decodeDocument(name string, data []byte) (*proposal.Document, error) {
	var doc proposal.Document
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
	}
	return &doc, nil
}
