package importer

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxFileSize is the default upload cap; configuration can lower or raise it.
const MaxFileSize = 5 << 20

// AcceptCSVFilename rejects anything that is not a .csv before parsing.
func AcceptCSVFilename(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".csv" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}
	return nil
}

// ReadRows parses a delimited-text file into raw rows. The first row is
// always the field-name source; blank lines are skipped; ragged rows are
// tolerated (missing trailing cells are absent from the row). A size above
// maxSize fails before any byte is read; a parser failure aborts the whole
// run with no partial result.
func ReadRows(r io.Reader, size, maxSize int64) ([]RawRow, error) {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if size > maxSize {
		return nil, &SizeLimitError{Size: size, Limit: maxSize}
	}

	br := stripUTF8BOM(bufio.NewReader(r))
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("missing header row")}
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []RawRow
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make(RawRow, len(header))
		for i, label := range header {
			if label == "" || i >= len(rec) {
				continue
			}
			row[label] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadJSONRows is the generic JSON counterpart of ReadRows: an array of flat
// objects becomes raw rows. Kept as a peer utility; the import flows
// themselves only accept CSV.
func ReadJSONRows(r io.Reader, size, maxSize int64) ([]RawRow, error) {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if size > maxSize {
		return nil, &SizeLimitError{Size: size, Limit: maxSize}
	}

	var objects []map[string]any
	if err := json.NewDecoder(r).Decode(&objects); err != nil {
		return nil, &ParseError{Err: err}
	}

	rows := make([]RawRow, 0, len(objects))
	for _, obj := range objects {
		row := make(RawRow, len(obj))
		for label, value := range obj {
			if value == nil {
				row[label] = ""
				continue
			}
			row[label] = fmt.Sprint(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
