// Package sweep holds the parameter-sweep bookkeeping: the configuration
// table that defines the sweep, and the index/naming convention shared by
// submission tooling and the status report.
package sweep

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrConfigLoad marks a fatal configuration-table failure. Everything else
// in a report degrades per task; this aborts the whole run.
var ErrConfigLoad = errors.New("config table load failed")

// ConfigRow is one sweep point: the raw whitespace-separated fields from a
// configuration line, plus its 1-based position which doubles as the array
// task index.
type ConfigRow struct {
	Index  int
	Fields []string
}

// Field returns the 1-based field at pos, or "" when the row is shorter.
// Malformed rows render as blank cells rather than crashing the report.
func (r ConfigRow) Field(pos int) string {
	if pos < 1 || pos > len(r.Fields) {
		return ""
	}
	return r.Fields[pos-1]
}

// LoadTable reads a configuration table: one header line (discarded), then
// one non-blank line per sweep point. The returned slice is ordered by line
// position; its length is N, the sweep size used everywhere else.
func LoadTable(path string) ([]ConfigRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}
	defer f.Close()

	var rows []ConfigRow
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		rows = append(rows, ConfigRow{
			Index:  len(rows) + 1,
			Fields: strings.Fields(line),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfigLoad, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no configuration rows in %s", ErrConfigLoad, path)
	}

	return rows, nil
}
