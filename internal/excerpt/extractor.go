package excerpt

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Extractor scans error logs for the first diagnostic line that is not on
// the denylist. It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	matchers []Matcher
	maxLen   int
}

// NewExtractor builds an extractor with the given denylist and excerpt
// length cap (in characters).
func NewExtractor(matchers []Matcher, maxLen int) *Extractor {
	return &Extractor{matchers: matchers, maxLen: maxLen}
}

// Extract returns the first non-benign line of the log at path, truncated
// to the length cap. A missing file returns "" — a task that never wrote to
// its error stream is not itself a failure signal. When the plain path is
// absent a gzip-compressed sibling ({path}.gz) is tried, covering logs that
// were rotated after the run.
func (e *Extractor) Extract(path string) string {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		return e.firstLine(f)
	}

	gz, err := os.Open(path + ".gz")
	if err != nil {
		return ""
	}
	defer gz.Close()

	r, err := gzip.NewReader(gz)
	if err != nil {
		return ""
	}
	defer r.Close()
	return e.firstLine(r)
}

func (e *Extractor) firstLine(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	// Diagnostic lines can carry long tracebacks.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
scan:
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		for _, m := range e.matchers {
			if m.Match(line) {
				continue scan
			}
		}
		return truncate(line, e.maxLen)
	}
	return ""
}

// truncate cuts s to at most maxLen characters. The cut is deliberately not
// word-aware: table-row width stability wins over readability.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
