package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a fixed-point decimal with two fractional digits, stored as
// hundredths. It can be unmarshaled from either a JSON number or a JSON
// string and round-trips a DECIMAL(6,2) column exactly.
type Price int64

// maxPriceUnits caps the whole part so values fit a DECIMAL(6,2) column
const maxPriceUnits = 9999

// ParsePrice parses a decimal string like "5.25" into a Price.
// At most two fractional digits are accepted, and the magnitude must not
// exceed 9999.99.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("Price: empty value")
	}

	negative := false
	if s[0] == '+' || s[0] == '-' {
		negative = s[0] == '-'
		s = s[1:]
	}

	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole = s[:idx]
		frac = s[idx+1:]
	}

	if whole == "" && frac == "" {
		return 0, fmt.Errorf("Price: invalid decimal %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("Price: at most two decimal places allowed, got %q", s)
	}

	units := uint64(0)
	if whole != "" {
		var err error
		units, err = strconv.ParseUint(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("Price: invalid decimal %q: %w", s, err)
		}
	}

	cents := uint64(0)
	if frac != "" {
		var err error
		cents, err = strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("Price: invalid decimal %q: %w", s, err)
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	if units > maxPriceUnits {
		return 0, fmt.Errorf("Price: magnitude must not exceed %d.99, got %q", maxPriceUnits, s)
	}

	total := int64(units*100 + cents)
	if negative {
		total = -total
	}
	return Price(total), nil
}

// String formats the price with two decimal places, e.g. "5.25".
func (p Price) String() string {
	v := int64(p)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Negative reports whether the price is below zero.
func (p Price) Negative() bool {
	return p < 0
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Price) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// A string token carries the decimal verbatim
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	// A number token is parsed from its raw text so "5.25" stays exact
	parsed, err := ParsePrice(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
// Prices serialize as decimal strings.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Value implements the driver.Valuer interface for database writes.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the sql.Scanner interface for database reads.
func (p *Price) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = 0
		return nil
	case []byte:
		parsed, err := ParsePrice(string(v))
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case string:
		parsed, err := ParsePrice(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case int64:
		*p = Price(v * 100)
		return nil
	case float64:
		*p = Price(math.Round(v * 100))
		return nil
	default:
		return fmt.Errorf("Price: cannot scan %T", value)
	}
}
