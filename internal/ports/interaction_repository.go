package ports

import (
	"context"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
)

// InteractionRepository - хранилище фактов взаимодействия посетителей.
// Каждая запись - отдельная транзакция (insert + commit), без пакетирования.
type InteractionRepository interface {
	SaveRating(ctx context.Context, rating domain.Rating) error
	SaveHelp(ctx context.Context, help domain.Help) error
}
