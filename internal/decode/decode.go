// Package decode turns spreadsheet files into sheets. Excel workbooks go
// through excelize (xlsx) or extrame/xls (BIFF xls); delimited text goes
// through encoding/csv after normalising its encoding to UTF-8.
package decode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.alis.build/alog"

	"github.com/jask/breadsheet/internal/sheet"
)

// DefaultExtensions is the allow-list used when none is configured.
var DefaultExtensions = []string{"xlsx", "xls", "csv", "txt"}

// DefaultMaxBytes caps the size of a file that will be decoded.
const DefaultMaxBytes int64 = 50 << 20

// Decoder loads sheets from allow-listed files.
type Decoder struct {
	allowed  map[string]bool
	exts     []string
	maxBytes int64
}

// New returns a decoder. A nil allow-list or non-positive limit selects the
// defaults.
func New(allowed []string, maxBytes int64) *Decoder {
	if len(allowed) == 0 {
		allowed = DefaultExtensions
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	d := &Decoder{allowed: map[string]bool{}, maxBytes: maxBytes}
	for _, e := range allowed {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" || d.allowed[e] {
			continue
		}
		d.allowed[e] = true
		d.exts = append(d.exts, e)
	}
	return d
}

// Extensions returns the normalised allow-list.
func (d *Decoder) Extensions() []string {
	return append([]string(nil), d.exts...)
}

// Ext returns the lower-cased text after the last dot of name.
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Check validates a file name before anything is read.
func (d *Decoder) Check(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNoFileSelected
	}
	if !d.allowed[Ext(name)] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Base(name))
	}
	return nil
}

// Load reads and decodes the file at path.
func (d *Decoder) Load(ctx context.Context, path string) (sheet.Sheet, error) {
	if err := d.Check(path); err != nil {
		return sheet.Sheet{}, err
	}
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return sheet.Sheet{}, newDecodeError(name, err)
	}
	if info.IsDir() {
		return sheet.Sheet{}, newDecodeError(name, fmt.Errorf("%s is a directory", path))
	}
	if info.Size() > d.maxBytes {
		return sheet.Sheet{}, newDecodeError(name, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, info.Size(), d.maxBytes))
	}

	f, err := os.Open(path)
	if err != nil {
		return sheet.Sheet{}, newDecodeError(name, err)
	}
	defer f.Close()

	return d.Decode(ctx, name, f)
}

// Decode parses r according to the extension of name.
func (d *Decoder) Decode(ctx context.Context, name string, r io.Reader) (sheet.Sheet, error) {
	if err := d.Check(name); err != nil {
		return sheet.Sheet{}, err
	}
	if err := ctx.Err(); err != nil {
		return sheet.Sheet{}, newDecodeError(name, err)
	}

	data, err := io.ReadAll(io.LimitReader(r, d.maxBytes+1))
	if err != nil {
		return sheet.Sheet{}, newDecodeError(name, err)
	}
	if int64(len(data)) > d.maxBytes {
		return sheet.Sheet{}, newDecodeError(name, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, d.maxBytes))
	}

	var rows [][]string
	switch ext := Ext(name); ext {
	case "xlsx", "xlsm":
		rows, err = decodeXLSX(bytes.NewReader(data))
	case "xls":
		rows, err = decodeXLS(bytes.NewReader(data))
	case "txt", "tsv":
		rows, err = decodeDelimited(data, 0)
	case "csv":
		rows, err = decodeDelimited(data, ',')
	default:
		err = fmt.Errorf("%w: .%s", ErrNoDecoder, ext)
	}
	if err != nil {
		alog.Debugf(ctx, "decode %s failed: %v", name, err)
		return sheet.Sheet{}, newDecodeError(name, err)
	}
	if err := ctx.Err(); err != nil {
		return sheet.Sheet{}, newDecodeError(name, err)
	}

	s := sheet.New(filepath.Base(name), sheet.Pad(rows))
	nr, nc := s.Dims()
	alog.Infof(ctx, "decoded %s: %d rows x %d columns", name, nr, nc)
	return s, nil
}

// List returns the allow-listed regular files in dir, sorted by name.
func (d *Decoder) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if d.allowed[Ext(e.Name())] {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
