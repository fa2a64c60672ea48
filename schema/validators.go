package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Boolean accepts a bool or the strings "true" and "false" (any case).
func Boolean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}

	return nil, &ValidationError{Msg: fmt.Sprintf("expected boolean, got %v", describe(value))}
}

func String(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool, int, int64, float64:
		return fmt.Sprintf("%v", v), nil
	}

	return nil, &ValidationError{Msg: fmt.Sprintf("expected string, got %v", describe(value))}
}

// NonEmptyString is String that also rejects "".
func NonEmptyString(value any) (any, error) {
	s, err := String(value)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.(string)) == "" {
		return nil, &ValidationError{Msg: "string must not be empty"}
	}
	return s, nil
}

var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ID accepts identifiers usable as generated variable names.
func ID(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &ValidationError{Msg: fmt.Sprintf("expected id, got %v", describe(value))}
	}
	if !identifier.MatchString(s) {
		return nil, &ValidationError{Msg: fmt.Sprintf("%q is not a valid id", s)}
	}
	return s, nil
}

func describe(value any) string {
	if value == nil {
		return "null"
	}
	if s, ok := value.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%T %v", value, value)
}
