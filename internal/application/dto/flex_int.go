package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// FlexInt entero que también acepta texto libre en JSON: 4, "4", "8+", "4 personas".
// Se toman los dígitos iniciales; sin dígitos el valor queda en 0.
type FlexInt int

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		v, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return fmt.Errorf("guests: %w", err)
		}
		*f = FlexInt(int(v))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("guests: se esperaba número o texto")
	}
	*f = ParseFlexInt(s)
	return nil
}

// ParseFlexInt extrae los dígitos iniciales de s.
func ParseFlexInt(s string) FlexInt {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return FlexInt(v)
}
