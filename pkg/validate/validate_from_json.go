package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
)

// ErrMalformedPayload - полезная нагрузка не является JSON-объектом. Не восстанавливается.
var ErrMalformedPayload = errors.New("malformed payload")

// DecodeEvent - разбор сообщения в RawEvent. Числа сохраняются как json.Number,
// чтобы CoerceInt видел исходную запись числа.
func DecodeEvent(raw []byte) (domain.RawEvent, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrMalformedPayload, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrMalformedPayload)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected json object, got %T", ErrMalformedPayload, decoded)
	}
	return domain.RawEvent(obj), nil
}

// ValidateInteractionFromJSON - разбор и валидация одного сообщения.
func ValidateInteractionFromJSON(ctx context.Context, validator ports.InteractionValidator, raw []byte) (domain.Interaction, error) {
	event, err := DecodeEvent(raw)
	if err != nil {
		return domain.Interaction{}, err
	}
	return validator.Validate(ctx, event)
}
