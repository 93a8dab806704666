package table

import (
	"fmt"
	"strconv"
	"strings"
)

// DType is the type of every non-null value in a column.
type DType int

const (
	DTypeString DType = iota
	DTypeInt64
	DTypeFloat64
	DTypeBool
)

// String returns the dtype name used in sidecar documents and API responses.
func (d DType) String() string {
	switch d {
	case DTypeInt64:
		return "int64"
	case DTypeFloat64:
		return "float64"
	case DTypeBool:
		return "bool"
	default:
		return "string"
	}
}

// ParseDType parses a dtype name as written in sidecars or CLI flags.
func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int64", "int":
		return DTypeInt64, nil
	case "float64", "float":
		return DTypeFloat64, nil
	case "bool":
		return DTypeBool, nil
	case "string", "str":
		return DTypeString, nil
	default:
		return DTypeString, fmt.Errorf("unknown dtype: %q", s)
	}
}

// castValue coerces a single value to the target dtype. Nulls pass through.
func castValue(v any, to DType) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch to {
	case DTypeInt64:
		switch x := v.(type) {
		case int64:
			return x, nil
		case float64:
			return int64(x), nil
		case bool:
			if x {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to int64", x)
			}
			return n, nil
		}
	case DTypeFloat64:
		switch x := v.(type) {
		case float64:
			return x, nil
		case int64:
			return float64(x), nil
		case bool:
			if x {
				return float64(1), nil
			}
			return float64(0), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to float64", x)
			}
			return f, nil
		}
	case DTypeBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case int64:
			return x != 0, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(x)) {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
			return nil, fmt.Errorf("cannot cast %q to bool", x)
		}
	case DTypeString:
		switch x := v.(type) {
		case string:
			return x, nil
		case int64:
			return strconv.FormatInt(x, 10), nil
		case float64:
			return strconv.FormatFloat(x, 'g', -1, 64), nil
		case bool:
			return strconv.FormatBool(x), nil
		}
	}

	return nil, fmt.Errorf("cannot cast %T to %s", v, to)
}
