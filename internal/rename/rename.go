// Package rename normalizes output filenames whose numeric configuration
// suffix was written unpadded, so directory listings sort by sweep index.
package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

var configSuffix = regexp.MustCompile(`Config(\d+)`)

// Change is one proposed rename within a directory.
type Change struct {
	From string
	To   string
}

// Plan scans dir (non-recursive) for filenames carrying an unpadded
// Config<digits> segment and proposes the padded replacement. Names already
// at the target width, or wider, are skipped, which makes applying a plan
// idempotent.
func Plan(dir string, width int) ([]Change, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		renamed := configSuffix.ReplaceAllStringFunc(name, func(m string) string {
			digits := configSuffix.FindStringSubmatch(m)[1]
			if len(digits) >= width {
				return m
			}
			n, err := strconv.Atoi(digits)
			if err != nil {
				return m
			}
			return fmt.Sprintf("Config%0*d", width, n)
		})
		if renamed != name {
			changes = append(changes, Change{From: name, To: renamed})
		}
	}
	return changes, nil
}

// Apply performs the renames. It refuses to overwrite: a collision with an
// existing file aborts before any rename in the colliding pair happens.
func Apply(dir string, changes []Change) error {
	for _, c := range changes {
		target := filepath.Join(dir, c.To)
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("refusing to overwrite existing file %s", c.To)
		}
		if err := os.Rename(filepath.Join(dir, c.From), target); err != nil {
			return fmt.Errorf("renaming %s: %w", c.From, err)
		}
	}
	return nil
}
