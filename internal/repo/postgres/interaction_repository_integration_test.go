//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	pgrepo "github.com/Gunvolt24/lmnh_kiosk/internal/repo/postgres"
	"github.com/Gunvolt24/lmnh_kiosk/internal/testutil"
)

func startRepo(t *testing.T) (context.Context, *pgxpool.Pool, *pgrepo.InteractionRepository) {
	t.Helper()

	// длинный контекст - только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	// короткий контекст - на сами БД-операции
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	pool, err := pgrepo.NewPool(ctx, pg.DSN, 2)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return ctx, pool, pgrepo.NewInteractionRepository(pool)
}

func count(t *testing.T, ctx context.Context, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n))
	return n
}

// 1) Оценка сохраняется с временем по часам самой метки
func TestRepo_SaveRating_TC(t *testing.T) {
	t.Parallel()
	ctx, pool, repo := startRepo(t)

	ratedAt := time.Date(2024, 3, 1, 10, 15, 0, 123456000, time.FixedZone("", 3*3600))
	require.NoError(t, repo.SaveRating(ctx, domain.Rating{ExhibitionID: 2, Value: 3, RatedAt: ratedAt}))

	var (
		site, value int
		stored      time.Time
	)
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT exhibition_id, value, rated_at FROM exhibition_rating`).Scan(&site, &value, &stored))

	require.Equal(t, 2, site)
	require.Equal(t, 3, value)
	// TIMESTAMP без зоны: 10:15 по часам киоска
	require.Equal(t, 10, stored.Hour())
	require.Equal(t, 15, stored.Minute())
	require.Equal(t, 123456000, stored.Nanosecond())
	require.Equal(t, 0, count(t, ctx, pool, "exhibition_help"))
}

// 2) Вызов помощи сохраняется в exhibition_help
func TestRepo_SaveHelp_TC(t *testing.T) {
	t.Parallel()
	ctx, pool, repo := startRepo(t)

	calledAt := time.Date(2024, 3, 1, 18, 59, 0, 0, time.UTC)
	require.NoError(t, repo.SaveHelp(ctx, domain.Help{ExhibitionID: 5, TypeID: 1, CalledAt: calledAt}))
	require.NoError(t, repo.SaveHelp(ctx, domain.Help{ExhibitionID: 0, TypeID: 0, CalledAt: calledAt}))

	require.Equal(t, 2, count(t, ctx, pool, "exhibition_help"))
	require.Equal(t, 0, count(t, ctx, pool, "exhibition_rating"))

	var typeID int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT type_id FROM exhibition_help WHERE exhibition_id = 5`).Scan(&typeID))
	require.Equal(t, 1, typeID)
}

// 3) CHECK-ограничения таблиц отбивают значения вне домена
func TestRepo_ConstraintViolation_TC(t *testing.T) {
	t.Parallel()
	ctx, pool, repo := startRepo(t)

	err := repo.SaveRating(ctx, domain.Rating{ExhibitionID: 9, Value: 1, RatedAt: time.Now()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "insert rating")
	require.Equal(t, 0, count(t, ctx, pool, "exhibition_rating"))

	// неудачные транзакции откатываются и не держат соединения пула (MaxConns = 2)
	for i := 0; i < 3; i++ {
		require.Error(t, repo.SaveHelp(ctx, domain.Help{ExhibitionID: 1, TypeID: 7, CalledAt: time.Now()}))
	}
	require.NoError(t, repo.SaveRating(ctx, domain.Rating{ExhibitionID: 1, Value: 1, RatedAt: time.Now()}))
	require.Equal(t, 1, count(t, ctx, pool, "exhibition_rating"))
	require.Equal(t, 0, count(t, ctx, pool, "exhibition_help"))
}

// 4) Reset очищает обе таблицы и возвращает число удалённых строк
func TestRepo_Reset_TC(t *testing.T) {
	t.Parallel()
	ctx, pool, repo := startRepo(t)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.SaveRating(ctx, domain.Rating{ExhibitionID: i, Value: i, RatedAt: at}))
	}
	require.NoError(t, repo.SaveHelp(ctx, domain.Help{ExhibitionID: 1, TypeID: 0, CalledAt: at}))

	res, err := repo.Reset(ctx)
	require.NoError(t, err)
	require.Equal(t, pgrepo.ResetResult{HelpDeleted: 1, RatingDeleted: 3}, res)

	require.Equal(t, 0, count(t, ctx, pool, "exhibition_help"))
	require.Equal(t, 0, count(t, ctx, pool, "exhibition_rating"))

	// повторный Reset на пустых таблицах - не ошибка
	res, err = repo.Reset(ctx)
	require.NoError(t, err)
	require.Equal(t, pgrepo.ResetResult{}, res)
}

// 5) Ping и отменённый контекст
func TestRepo_Ping_And_CanceledContext_TC(t *testing.T) {
	t.Parallel()
	ctx, _, repo := startRepo(t)

	require.NoError(t, repo.Ping(ctx))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, repo.SaveRating(canceled, domain.Rating{ExhibitionID: 1, Value: 1, RatedAt: time.Now()}))
}
