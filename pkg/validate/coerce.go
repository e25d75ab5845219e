package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// intLiteral - десятичное целое со знаком; допускаются разделители "_" между цифрами.
var intLiteral = regexp.MustCompile(`^[+-]?[0-9]+(_[0-9]+)*$`)

// CoerceInt - единое приведение JSON-значения к int для полей site, val и type.
//
// Строки: пробелы по краям отбрасываются, далее только десятичное целое.
// Числа: целые принимаются как есть, дробные усекаются к нулю.
// null, bool, массивы и объекты - ErrTypeMismatch.
// Значение, не помещающееся в int, - ErrOutOfRange.
func CoerceInt(v any) (int, error) {
	switch val := v.(type) {
	case json.Number:
		return coerceNumber(val)
	case float64:
		return coerceFloat(val)
	case int:
		return val, nil
	case int64:
		return fromInt64(val)
	case string:
		return coerceString(val)
	default:
		return 0, fmt.Errorf("%w: %T is not an integer", ErrTypeMismatch, v)
	}
}

func coerceNumber(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return fromInt64(i)
	}
	f, err := n.Float64()
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrOutOfRange, n)
		}
		return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return coerceFloat(f)
}

func coerceFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not a finite number", ErrTypeMismatch, f)
	}
	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, f)
	}
	return fromInt64(int64(t))
}

func fromInt64(i int64) (int, error) {
	if i > math.MaxInt || i < math.MinInt {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	return int(i), nil
}

func coerceString(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !intLiteral.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, s)
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
		}
		return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return n, nil
}
