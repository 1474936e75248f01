// Package stats turns raw statistic fields from the roster API into display strings.
package stats

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// NotApplicableMarker is shown wherever a statistic has no meaningful value.
const NotApplicableMarker = "N/A"

// FormatAverage renders a batting average. A zero average means the player
// has not been dismissed yet, so it is shown as N/A rather than 0.00.
func FormatAverage(raw json.RawMessage) string {
	return render(Parse(raw), true)
}

func FormatStrikeRate(raw json.RawMessage) string {
	return render(Parse(raw), true)
}

// FormatEconomy renders an economy rate. Unlike average and strike rate a
// zero economy is kept as 0.00.
func FormatEconomy(raw json.RawMessage) string {
	return render(Parse(raw), false)
}

// FormatOptionalCount returns fallback when raw is absent or null and the
// value as sent otherwise.
func FormatOptionalCount(raw json.RawMessage, fallback string) string {
	token := bytes.TrimSpace(raw)
	if isAbsent(token) {
		return fallback
	}
	return display(token)
}

// Display renders a plain field as sent. Absent fields render empty.
func Display(raw json.RawMessage) string {
	token := bytes.TrimSpace(raw)
	if isAbsent(token) {
		return ""
	}
	return display(token)
}

func display(token []byte) string {
	if token[0] == '"' {
		var s string
		if err := json.Unmarshal(token, &s); err == nil {
			return s
		}
	}
	return string(token)
}

// render is the single mapping from a classified value to its display string.
func render(v Value, zeroIsNotApplicable bool) string {
	switch v.Kind() {
	case KindNumeric:
		n, _ := v.Int()
		if n == 0 && zeroIsNotApplicable {
			return NotApplicableMarker
		}
		// values are integers, so two decimals are always .00
		return strconv.FormatInt(n, 10) + ".00"
	case KindNotApplicable, KindMalformed:
		return NotApplicableMarker
	default:
		return NotApplicableMarker
	}
}
