package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Extractor scans free-form text (typed input or OCR output) for delivery
// addresses matching a house-number + street + optional-unit + locality
// pattern. The recognized locality set comes from configuration.
type Extractor struct {
	pattern *regexp.Regexp
}

func NewExtractor(localities []string) (*Extractor, error) {
	if len(localities) == 0 {
		return nil, errors.New("extractor: locality set must not be empty")
	}

	escaped := make([]string, 0, len(localities))
	for _, l := range localities {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(l))
	}
	if len(escaped) == 0 {
		return nil, errors.New("extractor: locality set must not be empty")
	}

	expr := fmt.Sprintf(
		`\d{1,5} [A-Za-z0-9 .,-]+(?:\s*(?:#|Apt|Apartment|Suite)\s*\d+)?, (?:%s)`,
		strings.Join(escaped, "|"),
	)
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("extractor: compile address pattern: %w", err)
	}

	return &Extractor{pattern: pattern}, nil
}

// Extract returns the candidate addresses found in text, de-duplicated
// with first-appearance order preserved. An empty result is not an error;
// callers treat it as "nothing found" and prompt for manual entry.
func (e *Extractor) Extract(text string) []string {
	// OCR output routinely sprinkles stray question marks into street
	// names; drop them before scanning so the pattern still matches.
	cleaned := strings.ReplaceAll(text, "?", "")

	matches := e.pattern.FindAllString(cleaned, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	return out
}
