//go:build integration

package testutil

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/validate"
)

// KioskEvent - сообщение киоска в том виде, в каком его шлёт устройство (все поля строками).
type KioskEvent struct {
	At   string  `json:"at,omitempty"`
	Site string  `json:"site,omitempty"`
	Val  string  `json:"val,omitempty"`
	Type *string `json:"type,omitempty"`
}

// JSON - сериализация события для записи в топик.
func (e KioskEvent) JSON() []byte {
	raw, _ := json.Marshal(e)
	return raw
}

// OpenTime - случайное время в часы работы музея, с точностью до микросекунд.
func OpenTime() time.Time {
	return time.Date(2024, time.Month(gofakeit.IntRange(1, 12)), gofakeit.IntRange(1, 28),
		gofakeit.IntRange(validate.OpeningHour, validate.ClosingHour),
		gofakeit.Minute(), gofakeit.Second(), gofakeit.IntRange(0, 999_999)*1000, time.UTC)
}

// MakeRatingEvent - валидная оценка.
func MakeRatingEvent(opts ...func(*KioskEvent)) KioskEvent {
	e := KioskEvent{
		At:   OpenTime().Format(validate.OccurredAtLayout),
		Site: itoa(gofakeit.IntRange(validate.MinExhibitionID, validate.MaxExhibitionID)),
		Val:  itoa(gofakeit.IntRange(0, validate.MaxRatingValue)),
	}
	for _, fn := range opts {
		fn(&e)
	}
	return e
}

// MakeHelpEvent - валидный вызов помощи.
func MakeHelpEvent(opts ...func(*KioskEvent)) KioskEvent {
	typ := itoa(gofakeit.IntRange(validate.MinAssistanceType, validate.MaxAssistanceType))
	e := KioskEvent{
		At:   OpenTime().Format(validate.OccurredAtLayout),
		Site: itoa(gofakeit.IntRange(validate.MinExhibitionID, validate.MaxExhibitionID)),
		Val:  itoa(domain.AssistanceRequested),
		Type: &typ,
	}
	for _, fn := range opts {
		fn(&e)
	}
	return e
}

func WithAt(at time.Time) func(*KioskEvent) {
	return func(e *KioskEvent) { e.At = at.Format(validate.OccurredAtLayout) }
}

func WithSite(site string) func(*KioskEvent) {
	return func(e *KioskEvent) { e.Site = site }
}

func WithVal(val string) func(*KioskEvent) {
	return func(e *KioskEvent) { e.Val = val }
}

func itoa(n int) string { return strconv.Itoa(n) }
