package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Errors describing a header that cannot serve the requested columns.
var (
	ErrMissingHeader   = errors.New("missing header row")
	ErrMissingColumn   = errors.New("missing column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrMalformed       = errors.New("malformed record")
)

const utf8BOM = "\ufeff"

// Reader streams records from a delimited file.
// Thread-Safety: NOT safe for concurrent use.
type Reader struct {
	csv    *csv.Reader
	header []string
	index  map[string]int
}

// NewReader reads the header row from r and checks that every column in
// required is present exactly once. Other columns may repeat; the first
// occurrence wins.
func NewReader(r io.Reader, delimiter rune, required []string) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	// A quote only opens a quoted field at the start of the field; elsewhere
	// it is kept as data (O"Neil).
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", classify(err))
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	index := make(map[string]int, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
		seen[name]++
	}

	var missing []string
	for _, name := range required {
		switch seen[name] {
		case 0:
			missing = append(missing, name)
		case 1:
		default:
			return nil, fmt.Errorf("%w %q", ErrDuplicateColumn, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s (header has: %s)",
			ErrMissingColumn, strings.Join(missing, ", "), strings.Join(header, ", "))
	}

	return &Reader{csv: cr, header: header, index: index}, nil
}

// Header returns the column names in file order.
func (r *Reader) Header() []string {
	return append([]string(nil), r.header...)
}

// Next returns the next record, or io.EOF after the last one.
// Records with a different field count than the header are an error.
func (r *Reader) Next() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		return Record{}, classify(err)
	}
	line, _ := r.csv.FieldPos(0)
	return Record{fields: fields, index: r.index, Line: line}, nil
}

// classify marks syntax errors with ErrMalformed; I/O errors and io.EOF
// pass through unchanged.
func classify(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return err
}

// Record is one data row.
type Record struct {
	fields []string
	index  map[string]int

	// Line is the 1-based line in the file where the record starts.
	Line int
}

// Get returns the value of the named column, or "" if the header lacks it.
func (r Record) Get(column string) string {
	i, ok := r.index[column]
	if !ok {
		return ""
	}
	return r.fields[i]
}
