// Package jsonl reads and writes exported color matches as JSON Lines.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/colorhl"
)

// Compile-time interface verification.
var _ colorhl.RecordLoader = (*Loader)(nil)

// Loader reads records written by a Saver or a Writer.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every record in the file at path.
func (l *Loader) Load(path string) ([]colorhl.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := l.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Decode reads records from r until EOF. Blank lines are skipped and lines
// have no length limit, since a record carries its source line.
func (l *Loader) Decode(r io.Reader) ([]colorhl.Record, error) {
	br := bufio.NewReader(r)
	var records []colorhl.Record
	for n := 1; ; n++ {
		line, err := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			var rec colorhl.Record
			if jerr := json.Unmarshal(line, &rec); jerr != nil {
				return nil, fmt.Errorf("line %d: %w", n, jerr)
			}
			records = append(records, rec)
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
