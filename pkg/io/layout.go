package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
)

// Layout file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Layout is a decoded layout file.
type Layout struct {
	// Columns pins the column count. Zero means derive it from ScreenWidth.
	Columns int `json:"columns,omitempty" toml:"columns,omitempty"`

	// ScreenWidth is the viewport width in pixels. Zero means unset.
	ScreenWidth float64 `json:"screen_width,omitempty" toml:"screen_width,omitempty"`

	Items []grid.Item `json:"items" toml:"items"`
}

// FormatFromPath returns the layout format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer layout format from %q (want .json or .toml)", path)
}

// ReadLayout decodes a layout in the given format from r and checks its
// item ids. ReadLayout does not close r.
func ReadLayout(r io.Reader, format string) (*Layout, error) {
	var (
		l   Layout
		err error
	)
	switch format {
	case FormatJSON:
		err = decodeJSON(r, &l)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&l)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported layout format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s layout", format)
	}

	if l.Columns < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "columns cannot be negative (got %d)", l.Columns)
	}
	if err := errors.ValidateScreenWidth(l.ScreenWidth); err != nil {
		return nil, err
	}
	if err := errors.ValidateItems(l.Items); err != nil {
		return nil, err
	}
	return &l, nil
}

// decodeJSON accepts either a layout object or a bare item array.
func decodeJSON(r io.Reader, l *Layout) error {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(br)
	if first == '[' {
		return dec.Decode(&l.Items)
	}
	return dec.Decode(l)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		if !bytes.ContainsAny(b, " \t\r\n") {
			return b[0], nil
		}
		if _, err := br.ReadByte(); err != nil {
			return 0, err
		}
	}
}

// ImportLayout reads the layout file at path. The format follows the file
// extension.
func ImportLayout(path string) (*Layout, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f, format)
}
