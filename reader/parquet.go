package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	log "github.com/sirupsen/logrus"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/schema"
)

// FileColumn is the column ReadFrames adds to record the source of each row
// when a pattern matches several files.
const FileColumn = "_file"

// maxFiles limits how many files one glob pattern may expand to.
const maxFiles = 1000

// Reader reads one parquet file.
//
// It keeps both the OS file handle and the parquet file handle so Close can
// release them.
type Reader struct {
	path   string
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens the parquet file at path.
//
// Example:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{path: path, file: file, pqFile: pqFile}, nil
}

// Schema returns the parquet schema of the file.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// FrameSchema returns the column tree of the file, see ConvertSchema.
func (r *Reader) FrameSchema() (*schema.Group, error) {
	return ConvertSchema(r.Schema())
}

// NumRows returns the row count recorded in the file metadata.
func (r *Reader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// ReadRows decodes every row of the file into a map keyed by column name.
// Nested groups decode into nested maps. The whole file is loaded into memory.
func (r *Reader) ReadRows() ([]map[string]any, error) {
	rows := make([]map[string]any, 0, r.NumRows())

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	for {
		row := make(map[string]any)
		if err := pr.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFrame loads the whole file as a frame.
func (r *Reader) ReadFrame() (*frame.Frame, error) {
	g, err := r.FrameSchema()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	rows, err := r.ReadRows()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	f, err := FrameFromRows(g, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	log.Debugf("read %s: %d rows, %d columns", r.path, f.NumRows(), f.NumCols())
	return f, nil
}

// Close releases the file handle. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadFile opens, reads and closes a single parquet file.
func ReadFile(path string) (*frame.Frame, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	f, readErr := r.ReadFrame()
	closeErr := r.Close()
	if readErr != nil {
		return nil, readErr
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return f, nil
}

// ReadFrames reads one file, or every file matching a glob pattern, into a
// single frame.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// All matched files must share one schema. Rows keep the order of the sorted
// file names, and a FileColumn column records the source file of each row.
// A plain path is read as is, without the extra column.
func ReadFrames(pattern string) (*frame.Frame, error) {
	if !isGlob(pattern) {
		return ReadFile(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	var (
		shape *schema.Group
		rows  []map[string]any
		files []any
	)
	for _, path := range matches {
		g, fileRows, err := readRows(path)
		if err != nil {
			return nil, err
		}
		if shape == nil {
			shape = g
		} else if !SameShape(shape, g) {
			return nil, fmt.Errorf("schema of %s differs from %s", path, matches[0])
		}
		rows = append(rows, fileRows...)
		for range fileRows {
			files = append(files, path)
		}
	}

	f, err := FrameFromRows(shape, rows)
	if err != nil {
		return nil, err
	}

	b := frame.NewBuilder(f.NumRows())
	for _, col := range f.Columns() {
		if _, err := b.Add(schema.Path{col.Name()}, col); err != nil {
			return nil, err
		}
	}
	actual, err := b.Add(schema.Path{FileColumn}, frame.NewValueColumn(FileColumn, schema.TypeString, files))
	if err != nil {
		return nil, err
	}
	if actual.Name() != FileColumn {
		log.Debugf("%s already exists, source files recorded in %s", FileColumn, actual.Name())
	}

	log.Debugf("read %d files matching %s: %d rows", len(matches), pattern, f.NumRows())
	return b.Build(), nil
}

func readRows(path string) (*schema.Group, []map[string]any, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer func() { _ = r.Close() }()

	g, err := r.FrameSchema()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	rows, err := r.ReadRows()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}
	return g, rows, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// SameShape reports whether two column trees have the same names, kinds and
// value types in the same order.
func SameShape(a, b schema.Node) bool {
	if a.Name() != b.Name() || a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *schema.Leaf:
		return a.Type() == b.(*schema.Leaf).Type()
	case *schema.FrameRef:
		return SameShape(a.Nested(), b.(*schema.FrameRef).Nested())
	case *schema.Group:
		bg := b.(*schema.Group)
		if a.Len() != bg.Len() {
			return false
		}
		for i, child := range a.Children() {
			if !SameShape(child, bg.Children()[i]) {
				return false
			}
		}
		return true
	}
	return false
}
