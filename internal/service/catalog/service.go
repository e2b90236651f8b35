package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrReadCatalog wraps every failure to open or parse the CSV source.
var ErrReadCatalog = errors.New("failed to read CSV file")

const utf8BOM = "\ufeff"

// Service serves song rows straight from a CSV file. The file is re-read on
// every call so edits show up without a restart.
type Service struct {
	path string
}

// NewService binds the service to a CSV path.
func NewService(path string) *Service {
	return &Service{path: path}
}

// Path returns the CSV location.
func (s *Service) Path() string {
	return s.path
}

// Songs returns every data row keyed by the header row.
func (s *Service) Songs(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadCatalog, err)
	}
	defer f.Close()

	return ReadRows(ctx, f)
}

// ReadRows parses CSV data with a header line. Short rows are padded with
// empty strings and surplus cells are keyed "_<index>".
func ReadRows(ctx context.Context, r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrReadCatalog, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	rows := make([]Row, 0, 64)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCatalog, err)
		}
		rows = append(rows, newRow(header, record))
	}

	return rows, nil
}

func newRow(header, record []string) Row {
	width := len(header)
	if len(record) > width {
		width = len(record)
	}

	row := Row{
		keys:   make([]string, 0, width),
		values: make(map[string]string, width),
	}
	for i := 0; i < width; i++ {
		key := "_" + strconv.Itoa(i)
		if i < len(header) {
			key = header[i]
		}
		value := ""
		if i < len(record) {
			value = record[i]
		}
		row.set(key, value)
	}
	return row
}
