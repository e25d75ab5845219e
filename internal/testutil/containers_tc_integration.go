//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycleHooks - по строке в лог на запуск, готовность и остановку контейнера.
func lifecycleHooks(kind string) tc.ContainerLifecycleHooks {
	hook := func(stage string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			tcLogger.Printf("%s %s id=%s", kind, stage, id)
			return nil
		}
	}
	return tc.ContainerLifecycleHooks{
		PostStarts:     []tc.ContainerHook{hook("started")},
		PostReadies:    []tc.ContainerHook{hook("ready")},
		PostTerminates: []tc.ContainerHook{hook("terminated")},
	}
}

// PGContainer - Postgres для интеграционных тестов хранилища и пайплайна.
type PGContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
}

// StartPostgresTC - поднимает пустую базу museum; схему накатывает ApplyMigrationsGoose.
func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, err := postgres.Run(
		ctx,
		postgresImage,
		tc.WithLifecycleHooks(lifecycleHooks("postgres")),
		postgres.WithDatabase("museum"),
		postgres.WithUsername("kiosk"),
		postgres.WithPassword("kiosk"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, fmt.Errorf("postgres connection string: %w", err)
	}

	stop := func(c context.Context) error { return pg.Terminate(c) }
	return &PGContainer{Container: pg, DSN: dsn}, stop, nil
}

// KafkaEnv - Kafka-совместимый брокер (Redpanda) и префикс для имён топиков.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		redpandaImage,
		tc.WithLifecycleHooks(lifecycleHooks("redpanda")),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("redpanda seed broker: %w", err)
	}

	env := &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}
	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return env, stop, nil
}
