//go:build integration

package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"donations/internal/domain"
	"donations/internal/infra"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("donations"),
		tcpostgres.WithUsername("donations"),
		tcpostgres.WithPassword("donations"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := infra.NewDBPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := infra.NewRedisClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestDonationRepositoryPGContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pool := startPostgres(t)
	runner := infra.NewSQLRunner(pool, zerolog.Nop())

	runDonationRepositoryContract(t, func(t *testing.T) domain.DonationRepository {
		ctx := context.Background()
		_, err := pool.Exec(ctx, "drop table if exists donations")
		require.NoError(t, err)
		repo := NewDonationRepository(runner)
		require.NoError(t, repo.Migrate(ctx))
		require.NoError(t, repo.Ping(ctx))
		return repo
	})
}

func TestDonationRepositoryRedisContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	client := startRedis(t)

	var n int
	runDonationRepositoryContract(t, func(t *testing.T) domain.DonationRepository {
		n++
		repo := NewDonationRedisRepository(client, fmt.Sprintf("test%d", n))
		require.NoError(t, repo.Ping(context.Background()))
		return repo
	})
}

func TestDonationRepositoryRedisConcurrentCreates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	repo := NewDonationRedisRepository(startRedis(t), "concurrent")
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, domain.ValidDonation{DonorName: "A", Amount: 1, Currency: "EUR"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, writers)
	for i, d := range items {
		require.Equal(t, int64(i+1), d.ID)
	}
}
