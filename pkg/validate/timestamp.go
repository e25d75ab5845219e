package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// OccurredAtLayout - канонический вид времени события (YYYY-MM-DDThh:mm:ss.ffffff±hhmm).
const OccurredAtLayout = "2006-01-02T15:04:05.000000-0700"

// parseLayout принимает 1–6 цифр дробной части и смещение ±hhmm либо Z.
const parseLayout = "2006-01-02T15:04:05.999999Z0700"

// occurredAtPattern - дата-время с обязательной дробной частью (до 6 цифр) и смещением
// в виде ±hhmm, ±hh:mm или Z.
var occurredAtPattern = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{1,6})(Z|[+-]\d{2}:?\d{2})$`,
)

// ParseOccurredAt - разбор значения ключа "at". Час берётся в смещении самой метки.
func ParseOccurredAt(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: at must be a string, got %T", ErrTypeMismatch, v)
	}
	m := occurredAtPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: at %q does not match %s", ErrTypeMismatch, s, OccurredAtLayout)
	}
	zone := strings.Replace(m[2], ":", "", 1)

	t, err := time.Parse(parseLayout, m[1]+zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return t, nil
}

// WithinOpeningHours - час события в [OpeningHour, ClosingHour] включительно.
func WithinOpeningHours(t time.Time) bool {
	h := t.Hour()
	return h >= OpeningHour && h <= ClosingHour
}
