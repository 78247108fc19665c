package features

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/racemarks/internal/models"
)

var (
	leadingIntPattern   = regexp.MustCompile(`^\d+`)
	digitsPattern       = regexp.MustCompile(`\d+`)
	bracketDeltaPattern = regexp.MustCompile(`\(\s*([+-]?\d+(?:\.\d+)?)\s*\)`)

	dateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"20060102",
		"2006年1月2日",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
)

// parseNumber coerces a raw field to a finite number, nil on failure
func parseNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parsePositive is parseNumber restricted to values above zero
func parsePositive(raw string) *float64 {
	v := parseNumber(raw)
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

// parseFinish reads a finish position such as "3" or "1(降)"; scratches and
// non-finishers resolve to nil
func parseFinish(raw string) *float64 {
	m := leadingIntPattern.FindString(strings.TrimSpace(raw))
	if m == "" {
		return nil
	}
	return parsePositive(m)
}

// parseDistance reads a distance such as "1600", "T1600" or "芝1600m"
func parseDistance(raw string) *float64 {
	m := digitsPattern.FindString(raw)
	if m == "" {
		return nil
	}
	return parsePositive(m)
}

func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseWeightChange prefers the explicit field and falls back to "480(+4)"
func parseWeightChange(result models.PastResult) *float64 {
	if v := parseNumber(result.WeightChange); v != nil {
		return v
	}
	if m := bracketDeltaPattern.FindStringSubmatch(result.BodyWeight); m != nil {
		return parseNumber(m[1])
	}
	return nil
}

// firstDefined returns the first value that parses
func firstDefined(parse func(string) *float64, raws ...string) *float64 {
	for _, raw := range raws {
		if v := parse(raw); v != nil {
			return v
		}
	}
	return nil
}
