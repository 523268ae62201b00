package newsletter

import (
	"strings"
	"time"
)

// ExpandVars performs placeholder substitutions for config-provided text
// fields (title, preface, postscript).
//
// Supported variables:
// - {.CurrentDate} => YYYY-MM-DD (UTC)
// - {.Period}      => digest period key, e.g. 2026-W35
func ExpandVars(s string, now time.Time, period string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	out := strings.ReplaceAll(s, "{.CurrentDate}", now.UTC().Format("2006-01-02"))
	out = strings.ReplaceAll(out, "{.Period}", period)
	return out
}
