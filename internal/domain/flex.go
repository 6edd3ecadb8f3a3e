package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The listing API is loose about numeric fields: mentions_count arrives as a
// number, a quoted number, an empty string or null depending on the record.
// FlexInt and FlexFloat absorb all of those shapes instead of failing the
// whole page decode.

// FlexInt decodes any of 42, "42", 42.0, "", null to an int.
// Values that cannot be read as a number, and negative values, become 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	n := parseLooseNumber(data)
	if n < 0 {
		n = 0
	}
	*f = FlexInt(int(n))
	return nil
}

// Int returns the coerced value.
func (f FlexInt) Int() int { return int(f) }

// FlexFloat decodes numbers, quoted numbers, "" and null to a float64.
// Unreadable values become 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(parseLooseNumber(data))
	return nil
}

// Float returns the coerced value.
func (f FlexFloat) Float() float64 { return float64(f) }

func parseLooseNumber(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return n
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0
	}
	return n
}
