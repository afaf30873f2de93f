package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/league-forecast/internal/platform/cache"
)

var (
	ErrMissingColumn = crerr.New("missing column")
	ErrMalformedRow  = crerr.New("malformed row")
)

const utf8BOM = "\ufeff"

// Sheet is a parsed CSV file. Lines[i] is the file line on which Rows[i] starts.
type Sheet struct {
	Path   string
	Header []string
	Rows   [][]string
	Lines  []int

	index map[string]int
}

// Column returns the position of a header name, ignoring surrounding whitespace.
func (s *Sheet) Column(name string) (int, bool) {
	i, ok := s.index[strings.TrimSpace(name)]
	return i, ok
}

// RequireColumn is Column with a missing column reported as ErrMissingColumn.
func (s *Sheet) RequireColumn(name string) (int, error) {
	i, ok := s.Column(name)
	if !ok {
		return 0, crerr.Mark(crerr.Newf("column %q not found in %s", name, s.Path), ErrMissingColumn)
	}
	return i, nil
}

// OptionalColumn resolves a column that may be unconfigured or absent; -1 means absent.
func (s *Sheet) OptionalColumn(name string) int {
	if strings.TrimSpace(name) == "" {
		return -1
	}
	if i, ok := s.Column(name); ok {
		return i
	}
	return -1
}

// Cell returns the trimmed value at row and column; short rows read as empty.
func (s *Sheet) Cell(row, col int) string {
	if col < 0 || col >= len(s.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(s.Rows[row][col])
}

// Int parses an optional integer cell. Empty cells return nil.
func (s *Sheet) Int(row, col int) (*int, error) {
	raw := s.Cell(row, col)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Integral floats such as "12.0" are accepted.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil, s.rowError(row, "column %q: invalid integer %q", s.Header[col], raw)
		}
		v = int(f)
	}
	if v < 0 {
		return nil, s.rowError(row, "column %q: negative value %d", s.Header[col], v)
	}
	return &v, nil
}

func (s *Sheet) rowError(row int, format string, args ...any) error {
	err := crerr.Newf(format, args...)
	err = crerr.Wrapf(err, "%s row %d", s.Path, s.Lines[row])
	return crerr.Mark(err, ErrMalformedRow)
}

// Reader parses CSV files once per path; concurrent reads of the same path share one parse.
type Reader struct {
	sheets *cache.Store[*Sheet]
}

func NewReader(sheets *cache.Store[*Sheet]) *Reader {
	if sheets == nil {
		sheets = cache.NewStore[*Sheet](0)
	}
	return &Reader{sheets: sheets}
}

func (r *Reader) Read(ctx context.Context, path string) (*Sheet, error) {
	return r.sheets.GetOrLoad(ctx, path, func(ctx context.Context) (*Sheet, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, crerr.Wrapf(err, "open %s", path)
		}
		defer f.Close()
		return Parse(path, f)
	})
}

// Parse reads a CSV document with a header line. path is used in error messages.
func Parse(path string, src io.Reader) (*Sheet, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, crerr.Mark(crerr.Newf("%s has no header line", path), ErrMissingColumn)
	}
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "read header of %s", path), ErrMalformedRow)
	}

	sheet := &Sheet{
		Path:   path,
		Header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		sheet.Header[i] = name
		if _, dup := sheet.index[name]; !dup {
			sheet.index[name] = i
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "read %s", path), ErrMalformedRow)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		sheet.Rows = append(sheet.Rows, record)
		sheet.Lines = append(sheet.Lines, line)
	}

	return sheet, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
