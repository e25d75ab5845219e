package ports

import (
	"context"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
)

// InteractionValidator - проверка сырого сообщения и классификация его в оценку или вызов помощи.
type InteractionValidator interface {
	Validate(ctx context.Context, event domain.RawEvent) (domain.Interaction, error)
}
