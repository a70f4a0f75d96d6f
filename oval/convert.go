package oval

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/oval2json/utils"
)

const retry = 5

type Config struct {
	Input    string
	Output   string
	AppFs    afero.Fs
	Stdin    io.Reader
	Stdout   io.Writer
	Retry    int
	Progress bool
}

func NewConfig() Config {
	return Config{
		Input:  utils.StdStream,
		Output: utils.StdStream,
		AppFs:  afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Retry:  retry,
	}
}

// Run reads one OVAL document, converts it and writes the JSON document.
// Nothing is written when the conversion fails.
func (c Config) Run() error {
	fs := utils.NewFs(c.AppFs)
	if c.Stdin != nil {
		fs.Stdin = c.Stdin
	}
	if c.Stdout != nil {
		fs.Stdout = c.Stdout
	}

	b, err := fs.ReadInput(c.Input, c.Retry)
	if err != nil {
		return xerrors.Errorf("failed to read OVAL input: %w", err)
	}

	doc, err := convert(bytes.NewReader(b), c.Progress)
	if err != nil {
		return err
	}

	if err = fs.WriteJSON(c.Output, doc); err != nil {
		return xerrors.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// Convert parses an OVAL document and returns its advisories.
func Convert(r io.Reader) (Document, error) {
	return convert(r, false)
}

func convert(r io.Reader, progress bool) (Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return Document{}, xerrors.Errorf("failed to parse OVAL XML: %w", err)
	}

	lookup := NewLookup(root)

	defs := xmlquery.QuerySelectorAll(root, definitionsExpr)
	var bar *pb.ProgressBar
	if progress {
		bar = pb.New(len(defs)).SetWriter(os.Stderr).Start()
	}

	doc := Document{Advisories: []Advisory{}}
	for _, def := range defs {
		if adv, ok := lookup.assembleAdvisory(def); ok {
			doc.Advisories = append(doc.Advisories, adv)
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	log.Printf("Converted %d advisories (objects: %d, states: %d, tests: %d)\n",
		len(doc.Advisories), len(lookup.Objects), len(lookup.States), len(lookup.Tests))
	return doc, nil
}
