package recordio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/acalliger/edspdf/aggregation"
	"github.com/acalliger/edspdf/format"
	"github.com/acalliger/edspdf/model"
)

// ErrUnsupportedFormat is returned for a format that holds no line records
var ErrUnsupportedFormat = errors.New("unsupported record format")

// maxLineSize bounds a single JSON Lines record
const maxLineSize = 16 * 1024 * 1024

// ReadLines decodes line records from r.
//
// Records are decoded one at a time. A record that does not have the shape
// of a line record is skipped and reported as a WarnRejectedLine warning
// whose Line is the record's position in the input. Only a stream that
// cannot be read at all (broken framing, I/O error) fails the call.
func ReadLines(r io.Reader, f format.Format) ([]model.LineRecord, []aggregation.Warning, error) {
	switch f {
	case format.JSON:
		var raw []json.RawMessage
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("decode json: %w", err)
		}
		var rd reader
		for i, data := range raw {
			line, err := decodeJSON(data)
			rd.add(i, line, err)
		}
		return rd.lines, rd.warnings, nil

	case format.JSONLines:
		return readJSONLines(r)

	case format.MsgPack:
		var raw []msgpack.RawMessage
		if err := msgpack.NewDecoder(r).Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("decode msgpack: %w", err)
		}
		var rd reader
		for i, data := range raw {
			line, err := decodeMsgpack(data)
			rd.add(i, line, err)
		}
		return rd.lines, rd.warnings, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// reader collects decoded records and rejections
type reader struct {
	lines    []model.LineRecord
	warnings []aggregation.Warning
}

func (rd *reader) add(record int, line model.LineRecord, err error) {
	if err != nil {
		rd.warnings = append(rd.warnings, aggregation.Warning{
			Kind:    aggregation.WarnRejectedLine,
			Line:    record,
			Span:    -1,
			Message: fmt.Sprintf("record %d: %v", record, err),
		})
		return
	}
	rd.lines = append(rd.lines, line)
}

func decodeJSON(data []byte) (model.LineRecord, error) {
	var line model.LineRecord
	if err := json.Unmarshal(data, &line); err != nil {
		return model.LineRecord{}, fmt.Errorf("%w: %v", model.ErrInvalidLine, err)
	}
	return line, nil
}

func decodeMsgpack(data []byte) (model.LineRecord, error) {
	var w wireLine
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return model.LineRecord{}, fmt.Errorf("%w: %v", model.ErrInvalidLine, err)
	}
	line, err := w.toLine()
	if err != nil {
		return model.LineRecord{}, fmt.Errorf("%w: %v", model.ErrInvalidLine, err)
	}
	return line, nil
}

func readJSONLines(r io.Reader) ([]model.LineRecord, []aggregation.Warning, error) {
	var rd reader

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n, record := 0, 0
	for scanner.Scan() {
		n++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		line, err := decodeJSON(data)
		if err != nil {
			err = fmt.Errorf("jsonl line %d: %w", n, err)
		}
		rd.add(record, line, err)
		record++
	}
	if err := scanner.Err(); err != nil {
		return nil, rd.warnings, fmt.Errorf("read jsonl: %w", err)
	}
	return rd.lines, rd.warnings, nil
}

// RejectionError returns the first WarnRejectedLine warning as an error
// wrapping model.ErrInvalidLine, or nil. Strict callers use it to refuse
// an input with records that could not be decoded.
func RejectionError(warnings []aggregation.Warning) error {
	for _, w := range warnings {
		if w.Kind == aggregation.WarnRejectedLine {
			return fmt.Errorf("%w: %s", model.ErrInvalidLine, w.Message)
		}
	}
	return nil
}

// ReadPages decodes line records from r and groups them by Page. The
// result has one entry per page that holds lines, in ascending page order.
// Lines keep their input order within a page.
func ReadPages(r io.Reader, f format.Format) ([][]model.LineRecord, []aggregation.Warning, error) {
	lines, warnings, err := ReadLines(r, f)
	if err != nil {
		return nil, warnings, err
	}
	pages, err := GroupPages(lines)
	return pages, warnings, err
}

// GroupPages splits lines by their Page index. Only pages that hold lines
// get an entry, so the result never grows with the page numbers themselves.
// Each line keeps its Page.
func GroupPages(lines []model.LineRecord) ([][]model.LineRecord, error) {
	byPage := make(map[int][]model.LineRecord)
	for i, line := range lines {
		if line.Page < 0 {
			return nil, fmt.Errorf("record %d: %w: negative page index %d", i, model.ErrInvalidLine, line.Page)
		}
		byPage[line.Page] = append(byPage[line.Page], line)
	}

	numbers := make([]int, 0, len(byPage))
	for n := range byPage {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	pages := make([][]model.LineRecord, len(numbers))
	for i, n := range numbers {
		pages[i] = byPage[n]
	}
	return pages, nil
}

// Source is a record file read into memory
type Source struct {
	Path   string
	Format format.Format
	Lines  []model.LineRecord
}

// ReadFile reads line records from a file. The format comes from the file
// extension, or from the first bytes of the file when the extension is not a
// record format. Records that cannot be decoded are reported as warnings,
// as with ReadLines.
func ReadFile(path string) (*Source, []aggregation.Warning, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	br := bufio.NewReader(file)
	f := format.Detect(path)
	if !f.IsRecordFormat() {
		f, err = format.DetectFromReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	lines, warnings, err := ReadLines(br, f)
	if err != nil {
		return nil, warnings, fmt.Errorf("read %s: %w", path, err)
	}
	return &Source{Path: path, Format: f, Lines: lines}, warnings, nil
}
