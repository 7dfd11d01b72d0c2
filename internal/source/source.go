// Package source loads input records for the table renderer: JSON
// documents, NDJSON streams and SQLite queries.
package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadJSON decodes one JSON document from r. The decoded shape is
// returned as-is: the assembler owns the list-of-records check, so a
// top-level object surfaces its ExpectedList error instead of being
// silently wrapped.
func ReadJSON(r io.Reader) (any, error) {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// LoadJSON reads a JSON document from a file.
func LoadJSON(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadNDJSON decodes newline-delimited JSON objects from r. Blank lines
// are skipped; a malformed line fails with its line number.
func ReadNDJSON(r io.Reader) (any, error) {
	var records []any
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return nil, fmt.Errorf("ndjson line %d: %w", lineNo, err)
		}
		records = append(records, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ndjson: %w", err)
	}
	if records == nil {
		records = []any{}
	}
	return records, nil
}
