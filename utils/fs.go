package utils

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// StdStream as an input or output path means stdin or stdout.
const StdStream = "-"

type Fs struct {
	AppFs  afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
}

func NewFs(appFs afero.Fs) Fs {
	return Fs{
		AppFs:  appFs,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// ReadInput returns the decompressed content of stdin, a URL or a file.
func (fs Fs) ReadInput(input string, retry int) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch {
	case input == StdStream:
		if b, err = io.ReadAll(fs.Stdin); err != nil {
			return nil, xerrors.Errorf("unable to read stdin: %w", err)
		}
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		if b, err = FetchURL(input, retry); err != nil {
			return nil, xerrors.Errorf("failed to fetch %s: %w", input, err)
		}
	default:
		if b, err = afero.ReadFile(fs.AppFs, input); err != nil {
			return nil, xerrors.Errorf("unable to read a file: %w", err)
		}
	}

	b, err = Decompress(input, b)
	if err != nil {
		return nil, xerrors.Errorf("failed to decompress %s: %w", input, err)
	}
	return b, nil
}

func (fs Fs) WriteJSON(filePath string, data interface{}) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return xerrors.Errorf("failed to marshal JSON: %w", err)
	}
	b = append(b, '\n')

	if filePath == StdStream {
		if _, err = fs.Stdout.Write(b); err != nil {
			return xerrors.Errorf("failed to write stdout: %w", err)
		}
		return nil
	}

	f, err := fs.AppFs.Create(filePath)
	if err != nil {
		return xerrors.Errorf("unable to open a file: %w", err)
	}
	defer f.Close()

	if _, err = f.Write(b); err != nil {
		return xerrors.Errorf("failed to save a file: %w", err)
	}
	return nil
}
