package person

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decimal is a number carried as decimal text.
type Decimal string

// DecimalOf formats v with the shortest representation that round-trips.
func DecimalOf(v float64) Decimal {
	return Decimal(strconv.FormatFloat(v, 'f', -1, 64))
}

// FixedDecimal formats v with exactly places fractional digits.
func FixedDecimal(v float64, places int) Decimal {
	return Decimal(strconv.FormatFloat(v, 'f', places, 64))
}

// Parse converts the text to a float. Malformed or empty text reports false.
func (d Decimal) Parse() (float64, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Float returns the parsed value, or 0 when the text is not a number.
func (d Decimal) Float() float64 {
	v, _ := d.Parse()
	return v
}

func (d Decimal) String() string { return string(d) }

// MarshalJSON always emits the text form.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decimal: %w", err)
	}
	*d = Decimal(n.String())
	return nil
}
