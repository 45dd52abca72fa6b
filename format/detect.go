// Package format identifies the file formats read and written by edspdf.
package format

import (
	"bufio"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported record or report format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a single JSON array of line records.
	JSON
	// JSONLines indicates one JSON line record per line.
	JSONLines
	// MsgPack indicates a MessagePack array of line records.
	MsgPack
	// CSV indicates comma separated style records.
	CSV
	// Markdown indicates a Markdown table of style records.
	Markdown
	// Table indicates a column aligned plain text table.
	Table
	// HTML indicates zone text rendered as an HTML fragment.
	HTML
)

// ErrUnknownFormat is returned when a format name cannot be parsed.
var ErrUnknownFormat = errors.New("unknown format")

var names = map[Format]string{
	JSON:      "json",
	JSONLines: "jsonl",
	MsgPack:   "msgpack",
	CSV:       "csv",
	Markdown:  "markdown",
	Table:     "table",
	HTML:      "html",
}

// String returns the string representation of the format.
func (f Format) String() string {
	if name, ok := names[f]; ok {
		return name
	}
	return "unknown"
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case JSONLines:
		return ".jsonl"
	case MsgPack:
		return ".msgpack"
	case CSV:
		return ".csv"
	case Markdown:
		return ".md"
	case Table:
		return ".txt"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// IsRecordFormat reports whether line records can be read from and results
// written to the format.
func (f Format) IsRecordFormat() bool {
	return f == JSON || f == JSONLines || f == MsgPack
}

// Parse returns the format with the given name, as printed by String.
// "ndjson" and "md" are accepted as aliases.
func Parse(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "ndjson":
		return JSONLines, nil
	case "md":
		return Markdown, nil
	}
	for f, n := range names {
		if n == name {
			return f, nil
		}
	}
	return Unknown, ErrUnknownFormat
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return JSON
	case ".jsonl", ".ndjson":
		return JSONLines
	case ".msgpack", ".mpk":
		return MsgPack
	case ".csv":
		return CSV
	case ".md", ".markdown":
		return Markdown
	case ".txt":
		return Table
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromMagic inspects the first bytes of a record file.
// A JSON array starts with '[', a JSON Lines stream with '{' and a
// MessagePack array with an array marker. Returns Unknown otherwise.
func DetectFromMagic(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}

	// MessagePack fixarray (0x90-0x9f), array 16 (0xdc), array 32 (0xdd)
	if b := data[0]; b&0xf0 == 0x90 || b == 0xdc || b == 0xdd {
		return MsgPack
	}

	// Skip a UTF-8 BOM and leading whitespace
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.TrimLeft(text, " \t\r\n")
	if text == "" {
		return Unknown
	}

	switch text[0] {
	case '[':
		return JSON
	case '{':
		return JSONLines
	default:
		return Unknown
	}
}

// DetectFromReader peeks at the start of r without consuming it.
func DetectFromReader(r *bufio.Reader) (Format, error) {
	magic, err := r.Peek(512)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return Unknown, err
	}
	return DetectFromMagic(magic), nil
}
