package analysis

import (
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"documind/internal/model"
)

var ErrNoJSON = errors.New("failed to extract JSON from analysis response")

// Defaults applied per missing or malformed field.
const (
	DefaultType       = "Document"
	DefaultDepartment = "General"
	DefaultLanguage   = "English"
	DefaultSummary    = "No summary available"
	DateLayout        = "2006-01-02"
)

// Parse reads the first {...} span of raw. Each field falls back to its default
// independently; only the absence of a parseable object is an error.
func Parse(raw, fileName string, now time.Time) (model.Analysis, error) {
	obj, ok := jsonSpan(raw)
	if !ok {
		return model.Analysis{}, ErrNoJSON
	}
	root := gjson.Parse(obj)

	a := model.Analysis{
		Title:      stringOr(root.Get("title"), fileName),
		Type:       stringOr(root.Get("type"), DefaultType),
		Department: stringOr(root.Get("department"), DefaultDepartment),
		Date:       stringOr(root.Get("date"), now.Format(DateLayout)),
		Language:   stringOr(root.Get("language"), DefaultLanguage),
		Urgency:    urgency(root.Get("urgency")),
		Entities: model.Entities{
			Names:   stringList(root.Get("entities.names")),
			Places:  stringList(root.Get("entities.places")),
			Amounts: stringList(root.Get("entities.amounts")),
		},
		Summary:        stringOr(root.Get("summary"), DefaultSummary),
		KeyPoints:      stringList(first(root, "keyPoints", "key_points")),
		AnalyticsReady: truthy(first(root, "analyticsReady", "analytics_ready")),
	}
	return a, nil
}

// jsonSpan returns the text from the first '{' to the last '}' if it is valid JSON.
func jsonSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return "", false
	}
	s := raw[start : end+1]
	if !gjson.Valid(s) {
		return "", false
	}
	return s, true
}

func first(root gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := root.Get(p); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

func stringOr(r gjson.Result, def string) string {
	if r.Type != gjson.String {
		return def
	}
	if s := strings.TrimSpace(r.String()); s != "" {
		return s
	}
	return def
}

func urgency(r gjson.Result) string {
	// Exact, case-sensitive match; anything else is medium.
	switch v := r.String(); v {
	case model.AnalysisUrgencyLow, model.AnalysisUrgencyMedium, model.AnalysisUrgencyHigh:
		return v
	default:
		return model.AnalysisUrgencyMedium
	}
}

// stringList keeps the string elements of an array. Anything else is an empty list.
func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
	}
	return out
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	case gjson.JSON:
		return true
	default:
		return false
	}
}
