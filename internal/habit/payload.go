package habit

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"habit_tracker/internal/domain"
)

var errNotNumeric = errors.New("value is not numeric")

// Value is a loosely typed JSON field. It keeps the raw token so that an
// absent field, an explicit null and a blank string stay distinguishable.
type Value struct {
	present bool
	raw     json.RawMessage
}

// UnmarshalJSON records the raw token. encoding/json calls it for null too.
func (v *Value) UnmarshalJSON(b []byte) error {
	v.present = true
	v.raw = append(v.raw[:0], bytes.TrimSpace(b)...)
	return nil
}

// MarshalJSON writes the raw token back, or null when absent.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Null returns a Value holding an explicit JSON null
func Null() Value { return Value{present: true, raw: json.RawMessage("null")} }

// String returns a Value holding a JSON string
func String(s string) Value {
	b, _ := json.Marshal(s)
	return Value{present: true, raw: b}
}

// Number returns a Value holding a JSON number
func Number(f float64) Value {
	return Value{present: true, raw: json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64))}
}

// IsAbsent reports whether the field was missing from the document
func (v Value) IsAbsent() bool { return !v.present }

// IsNull reports whether the field was an explicit null
func (v Value) IsNull() bool { return v.present && string(v.raw) == "null" }

// Str returns the decoded string when the field holds a JSON string
func (v Value) Str() (string, bool) {
	if !v.present || len(v.raw) == 0 || v.raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Text returns the trimmed string when the field holds a non-blank JSON string
func (v Value) Text() (string, bool) {
	s, ok := v.Str()
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

// IsBlank treats absent, null and whitespace-only strings the same way
func (v Value) IsBlank() bool {
	if v.IsAbsent() || v.IsNull() {
		return true
	}
	s, ok := v.Str()
	return ok && strings.TrimSpace(s) == ""
}

func (v Value) isNumberToken() bool {
	return v.present && len(v.raw) > 0 && (v.raw[0] == '-' || (v.raw[0] >= '0' && v.raw[0] <= '9'))
}

// Float parses the field as a finite float64. JSON numbers and numeric
// strings are accepted; anything else is an error, never a silent zero.
func (v Value) Float() (float64, error) {
	var text string
	if s, ok := v.Str(); ok {
		text = strings.TrimSpace(s)
	} else if v.isNumberToken() {
		text = string(v.raw)
	} else {
		return 0, errNotNumeric
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	return f, nil
}

// Int parses the field as a base 10 integer. Strings are trimmed first and
// must contain only the integer; JSON numbers must be integral.
func (v Value) Int() (int64, error) {
	if s, ok := v.Str(); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	if !v.isNumberToken() {
		return 0, errNotNumeric
	}
	if n, err := strconv.ParseInt(string(v.raw), 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(string(v.raw), 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errNotNumeric
	}
	return int64(f), nil
}

// Payload is the habit body accepted by create and update, keys in snake_case.
// Every field is a Value so that type mismatches reach the ordered checks
// instead of failing at binding.
type Payload struct {
	Name              Value `json:"name"`
	Description       Value `json:"description"`
	Category          Value `json:"category"`
	HabitType         Value `json:"habit_type"`
	TargetValue       Value `json:"target_value"`
	TargetUnit        Value `json:"target_unit"`
	TargetFrequencyID Value `json:"target_frequency_id"`
}

// Normalized is a validated payload ready to be persisted
type Normalized struct {
	UserID            uint
	Name              string
	Description       string
	Category          string
	HabitType         domain.HabitType
	TargetValue       *float64
	TargetUnit        *string
	TargetFrequencyID uint
}

// apply copies the normalized fields onto h, leaving id, owner and timestamps alone
func (n *Normalized) apply(h *domain.Habit) {
	h.Name = n.Name
	h.Description = n.Description
	h.Category = n.Category
	h.HabitType = n.HabitType
	h.TargetValue = n.TargetValue
	h.TargetUnit = n.TargetUnit
	h.TargetFrequencyID = n.TargetFrequencyID
}
