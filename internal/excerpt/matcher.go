// Package excerpt pulls a short diagnostic line out of a task's error log,
// filtering out known-benign toolchain noise first.
package excerpt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/models"
)

// Matcher decides whether a log line is known-benign noise.
type Matcher interface {
	Match(line string) bool
}

type substringMatcher struct {
	value string
}

func (m substringMatcher) Match(line string) bool {
	return strings.Contains(line, m.value)
}

type patternMatcher struct {
	re *regexp.Regexp
}

func (m patternMatcher) Match(line string) bool {
	return m.re.MatchString(line)
}

// NewMatcher builds one denylist matcher from its kind and parameters.
func NewMatcher(kind string, params map[string]any) (Matcher, error) {
	switch kind {
	case "substring":
		var v struct {
			Value string `mapstructure:"value"`
		}
		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}
		if v.Value == "" {
			return nil, fmt.Errorf("substring matcher requires a non-empty value")
		}
		return substringMatcher{value: v.Value}, nil
	case "pattern":
		var v struct {
			Pattern string `mapstructure:"pattern"`
		}
		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern matcher: %w", err)
		}
		return patternMatcher{re: re}, nil
	default:
		return nil, fmt.Errorf("unknown matcher type: %q (supported: substring, pattern)", kind)
	}
}

// BuildMatchers compiles a denylist from settings.
func BuildMatchers(configs []models.MatcherConfig) ([]Matcher, error) {
	matchers := make([]Matcher, 0, len(configs))
	for i, cfg := range configs {
		m, err := NewMatcher(cfg.Kind, cfg.Params)
		if err != nil {
			return nil, fmt.Errorf("denylist entry %d: %w", i, err)
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}
