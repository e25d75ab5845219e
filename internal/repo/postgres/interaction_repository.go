package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
)

// Проверка, что InteractionRepository удовлетворяет интерфейсу InteractionRepository.
var _ ports.InteractionRepository = (*InteractionRepository)(nil)

// InteractionRepository - запись оценок и вызовов помощи в Postgres (pgxpool).
// Колонки called_at / rated_at имеют тип TIMESTAMP: pgx отбрасывает зону и сохраняет
// время по часам самой метки, как оно пришло с киоска.
type InteractionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository - конструктор InteractionRepository.
func NewInteractionRepository(pool *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{pool: pool}
}

// ResetResult - сколько строк удалено из каждой таблицы.
type ResetResult struct {
	HelpDeleted   int64
	RatingDeleted int64
}

// SaveRating - одна оценка: insert + commit.
func (r *InteractionRepository) SaveRating(ctx context.Context, rating domain.Rating) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO exhibition_rating (exhibition_id, value, rated_at)
			VALUES ($1, $2, $3)
		`, rating.ExhibitionID, rating.Value, rating.RatedAt); err != nil {
			return fmt.Errorf("insert rating: %w", err)
		}
		return nil
	})
}

// SaveHelp - один вызов помощи: insert + commit.
func (r *InteractionRepository) SaveHelp(ctx context.Context, help domain.Help) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO exhibition_help (exhibition_id, type_id, called_at)
			VALUES ($1, $2, $3)
		`, help.ExhibitionID, help.TypeID, help.CalledAt); err != nil {
			return fmt.Errorf("insert help: %w", err)
		}
		return nil
	})
}

// Reset - удалить все строки из обеих таблиц одной транзакцией.
func (r *InteractionRepository) Reset(ctx context.Context) (ResetResult, error) {
	var res ResetResult
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM exhibition_rating`)
		if err != nil {
			return fmt.Errorf("delete ratings: %w", err)
		}
		res.RatingDeleted = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM exhibition_help`)
		if err != nil {
			return fmt.Errorf("delete help requests: %w", err)
		}
		res.HelpDeleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return ResetResult{}, err
	}
	return res, nil
}

// Ping - проверка доступности БД (для /healthz).
func (r *InteractionRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *InteractionRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// после Commit откат ничего не делает
	defer func() { _ = transaction.Rollback(ctx) }()

	if err := fn(transaction); err != nil {
		return err
	}
	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
