package info

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ConstantKind classifies the literal text of an option value
type ConstantKind int

const (
	IdentifierConstant ConstantKind = iota
	IntConstant
	FloatConstant
	StringConstant
	BoolConstant
)

func (k ConstantKind) String() string {
	switch k {
	case IdentifierConstant:
		return "identifier"
	case IntConstant:
		return "int"
	case FloatConstant:
		return "float"
	case StringConstant:
		return "string"
	case BoolConstant:
		return "bool"
	}
	return "unknown"
}

func (k ConstantKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ConstantKind) UnmarshalText(text []byte) error {
	for candidate := IdentifierConstant; candidate <= BoolConstant; candidate++ {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown constant kind: %s", text)
}

// Option represents an option statement or an inline [name = value] option
type Option struct {
	Name     string       // Option name, e.g. java_package or (my_option).a
	Value    string       // Literal text; string literals are unquoted with escapes kept verbatim
	Constant ConstantKind // Literal category of Value
}

// Int converts an integer option value
func (o *Option) Int() (int64, error) {
	if o.Constant != IntConstant {
		return 0, fmt.Errorf("option %v is not an integer: %v", o.Name, o.Constant)
	}
	return ParseInt(o.Value)
}

// Float converts a float option value, integers are widened
func (o *Option) Float() (float64, error) {
	switch o.Constant {
	case IntConstant:
		v, err := ParseInt(o.Value)
		return float64(v), err
	case FloatConstant:
		return ParseFloat(o.Value)
	}
	return 0, fmt.Errorf("option %v is not a number: %v", o.Name, o.Constant)
}

// Bool converts a boolean option value
func (o *Option) Bool() (bool, error) {
	if o.Constant != BoolConstant {
		return false, fmt.Errorf("option %v is not a boolean: %v", o.Name, o.Constant)
	}
	return o.Value == "true", nil
}

// ParseInt converts integer literal text, optionally signed. The base is taken from the
// literal prefix: 0x/0X hex, a leading 0 octal, decimal otherwise. The sign is kept as text
// so that -0x10 converts to -16.
func ParseInt(text string) (int64, error) {
	sign := ""
	digits := text
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}
	base := 10
	switch {
	case len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X'):
		base = 16
		digits = digits[2:]
	case len(digits) > 1 && digits[0] == '0' && isOctal(digits):
		base = 8
		digits = digits[1:]
	}
	value, err := strconv.ParseInt(sign+digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", text, err)
	}
	return value, nil
}

// ParseFloat converts float literal text including inf and nan
func ParseFloat(text string) (float64, error) {
	sign := 1.0
	body := text
	if strings.HasPrefix(body, "-") {
		sign, body = -1, body[1:]
	} else if strings.HasPrefix(body, "+") {
		body = body[1:]
	}
	switch body {
	case "inf":
		return math.Inf(int(sign)), nil
	case "nan":
		return math.NaN(), nil
	}
	value, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float literal %q: %w", text, err)
	}
	return sign * value, nil
}

func isOctal(digits string) bool {
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '7' {
			return false
		}
	}
	return true
}
