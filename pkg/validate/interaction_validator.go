package validate

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
)

// Проверка, что InteractionValidator удовлетворяет интерфейсу InteractionValidator.
var _ ports.InteractionValidator = (*InteractionValidator)(nil)

var (
	// ErrInvalidInteraction - базовая (sentinel error) ошибка валидации сообщения киоска.
	ErrInvalidInteraction = errors.New("interaction validation failed")

	// Классы отклонения: ключа нет / значение не приводится к типу / значение вне домена.
	ErrMissingKey   = errors.New("missing key")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrOutOfRange   = errors.New("out of range")
)

// Границы допустимых значений.
const (
	OpeningHour = 9
	ClosingHour = 18 // час 18 принимается целиком (18:59 тоже)

	MinExhibitionID = 0
	MaxExhibitionID = 5

	MinRatingValue = domain.AssistanceRequested
	MaxRatingValue = 4

	MinAssistanceType = 0
	MaxAssistanceType = 1
)

// Причины отклонения. Формулировки совпадают с историческим форматом error-log.txt.
const (
	ReasonMissingAt    = "Missing at key."
	ReasonInvalidTime  = "Invalid time format."
	ReasonMuseumClosed = "Museum closed, go home."
	ReasonMissingSite  = "Missing site key."
	ReasonInvalidSite  = "Invalid exhibition id."
	ReasonSiteRange    = "Exhibition id must be between 0 and 5."
	ReasonMissingVal   = "Missing val key."
	ReasonInvalidVal   = "Invalid val."
	ReasonValRange     = "Val must be an integer between -1 and 4."
	ReasonMissingType  = "Missing type key."
	ReasonInvalidType  = "Invalid type."
	ReasonTypeRange    = "Type must be either 0 or 1."
)

// RejectionError - отказ в приёме сообщения: поле, класс ошибки и человекочитаемая причина.
// errors.Is срабатывает и на ErrInvalidInteraction, и на класс (ErrMissingKey и т.д.).
type RejectionError struct {
	Field  string
	Class  error
	Reason string
}

func (e *RejectionError) Error() string { return e.Reason }

func (e *RejectionError) Unwrap() []error { return []error{ErrInvalidInteraction, e.Class} }

func reject(field string, class error, reason string) error {
	return &RejectionError{Field: field, Class: class, Reason: reason}
}

// ReasonOf - причина отклонения из ошибки валидации ("" если это не RejectionError).
func ReasonOf(err error) string {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason
	}
	return ""
}

// intRule - проверка целочисленного поля: наличие ключа, приведение к int, диапазон.
type intRule struct {
	key        string
	min, max   int
	missing    string
	invalid    string
	outOfRange string
}

var (
	siteRule = intRule{
		key: "site", min: MinExhibitionID, max: MaxExhibitionID,
		missing: ReasonMissingSite, invalid: ReasonInvalidSite, outOfRange: ReasonSiteRange,
	}
	valRule = intRule{
		key: "val", min: MinRatingValue, max: MaxRatingValue,
		missing: ReasonMissingVal, invalid: ReasonInvalidVal, outOfRange: ReasonValRange,
	}
	typeRule = intRule{
		key: "type", min: MinAssistanceType, max: MaxAssistanceType,
		missing: ReasonMissingType, invalid: ReasonInvalidType, outOfRange: ReasonTypeRange,
	}
)

func (r intRule) check(event domain.RawEvent) (int, error) {
	raw, ok := event[r.key]
	if !ok {
		return 0, reject(r.key, ErrMissingKey, r.missing)
	}
	n, err := CoerceInt(raw)
	switch {
	case errors.Is(err, ErrOutOfRange):
		return 0, reject(r.key, ErrOutOfRange, r.outOfRange)
	case err != nil:
		return 0, reject(r.key, ErrTypeMismatch, r.invalid)
	}
	if n < r.min || n > r.max {
		return 0, reject(r.key, ErrOutOfRange, r.outOfRange)
	}
	return n, nil
}

// InteractionValidator - упорядоченная цепочка проверок сообщения киоска.
// Первая неудачная проверка возвращает *RejectionError, остальные не выполняются.
type InteractionValidator struct{}

// NewInteractionValidator - конструктор InteractionValidator.
func NewInteractionValidator() *InteractionValidator { return &InteractionValidator{} }

// Validate - at → site → val → (type, только если val == -1).
func (v *InteractionValidator) Validate(_ context.Context, event domain.RawEvent) (domain.Interaction, error) {
	occurredAt, err := v.checkOccurredAt(event)
	if err != nil {
		return domain.Interaction{}, err
	}
	exhibitionID, err := siteRule.check(event)
	if err != nil {
		return domain.Interaction{}, err
	}
	value, err := valRule.check(event)
	if err != nil {
		return domain.Interaction{}, err
	}

	interaction := domain.Interaction{
		Kind:         domain.KindRating,
		ExhibitionID: exhibitionID,
		Value:        value,
		OccurredAt:   occurredAt,
	}
	if value != domain.AssistanceRequested {
		return interaction, nil
	}

	assistanceType, err := typeRule.check(event)
	if err != nil {
		return domain.Interaction{}, err
	}
	interaction.Kind = domain.KindHelp
	interaction.AssistanceTypeID = assistanceType
	return interaction, nil
}

// checkOccurredAt - время события: ключ "at", фиксированный формат, часы работы музея.
func (v *InteractionValidator) checkOccurredAt(event domain.RawEvent) (occurredAt time.Time, err error) {
	raw, ok := event["at"]
	if !ok {
		return occurredAt, reject("at", ErrMissingKey, ReasonMissingAt)
	}
	occurredAt, err = ParseOccurredAt(raw)
	if err != nil {
		return occurredAt, reject("at", ErrTypeMismatch, ReasonInvalidTime)
	}
	if !WithinOpeningHours(occurredAt) {
		return occurredAt, reject("at", ErrOutOfRange, ReasonMuseumClosed)
	}
	return occurredAt, nil
}
