package utils

import (
	"bytes"
	"compress/bzip2"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/xerrors"
)

// Decompress inflates b according to the suffix of name.
// e.g. rhel-9.oval.xml.bz2, rhel-9.oval.xml.gz, rhel-9.oval.xml.zst
func Decompress(name string, b []byte) ([]byte, error) {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" {
		name = u.Path
	}

	var r io.Reader
	switch {
	case strings.HasSuffix(name, ".bz2"):
		r = bzip2.NewReader(bytes.NewReader(b))
	case strings.HasSuffix(name, ".gz"):
		gr, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, xerrors.Errorf("gzip error: %w", err)
		}
		defer gr.Close()
		r = gr
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, xerrors.Errorf("zstd error: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return b, nil
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("read error: %w", err)
	}
	return out, nil
}
