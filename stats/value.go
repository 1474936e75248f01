package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NotANumber is the literal the roster API sends when an average has no defined value.
const NotANumber = "NAN"

type Kind int

const (
	KindNotApplicable Kind = iota
	KindNumeric
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindMalformed:
		return "malformed"
	default:
		return "not_applicable"
	}
}

// Value is a classified statistic field. The zero Value is NotApplicable.
type Value struct {
	kind Kind
	n    int64
	raw  string
}

func Numeric(n int64) Value { return Value{kind: KindNumeric, n: n} }

func NotApplicable() Value { return Value{kind: KindNotApplicable} }

func Malformed(original string) Value { return Value{kind: KindMalformed, raw: original} }

func (v Value) Kind() Kind { return v.kind }

// Int returns the integer of a Numeric value.
func (v Value) Int() (int64, bool) {
	return v.n, v.kind == KindNumeric
}

// Original returns the text a Malformed value was parsed from.
func (v Value) Original() string { return v.raw }

// Parse classifies a raw JSON token. Numbers are truncated toward zero,
// strings are read as their leading integer ("45.7" is 45, "12abc" is 12).
// Parse never fails: anything that is not a number degrades to Malformed.
func Parse(raw json.RawMessage) Value {
	token := bytes.TrimSpace(raw)
	if isAbsent(token) {
		return NotApplicable()
	}

	switch c := token[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(token, &s); err != nil {
			return Malformed(string(token))
		}
		return ParseString(s)
	case c == '-' || (c >= '0' && c <= '9'):
		f, err := strconv.ParseFloat(string(token), 64)
		if err != nil {
			return Malformed(string(token))
		}
		return parseNumber(f, string(token))
	default:
		return Malformed(string(token))
	}
}

// parseNumber reads a JSON number the way its shortest text form would be
// read. Very small and very large magnitudes print in exponent form, so only
// the integer part of the mantissa counts: 1e-7 is 1 and 2.5e21 is 2.
func parseNumber(f float64, original string) Value {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		n, ok := leadingInt(strconv.FormatFloat(f, 'e', -1, 64))
		if !ok {
			return Malformed(original)
		}
		return Numeric(n)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return Malformed(original)
	}
	return Numeric(int64(f))
}

// ParseString classifies a statistic that arrived as text.
func ParseString(s string) Value {
	if s == NotANumber {
		return NotApplicable()
	}
	n, ok := leadingInt(s)
	if !ok {
		return Malformed(s)
	}
	return Numeric(n)
}

func isAbsent(token []byte) bool {
	return len(token) == 0 || bytes.Equal(token, []byte("null"))
}

// leadingInt reads an optional sign, an optional 0x prefix and the longest
// run of digits after leading whitespace. Trailing text is ignored.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f', base == 16 && c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}
