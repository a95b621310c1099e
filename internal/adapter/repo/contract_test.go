package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donations/internal/domain"
)

func strPtr(s string) *string { return &s }

// runDonationRepositoryContract checks the create/list guarantees every backend must keep.
func runDonationRepositoryContract(t *testing.T, newRepo func(t *testing.T) domain.DonationRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		items, err := newRepo(t).List(ctx)
		require.NoError(t, err)
		require.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("create then list returns created record last", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, domain.ValidDonation{
			DonorName: "Test Donor",
			Amount:    50,
			Currency:  "EUR",
			Message:   strPtr("Test donation"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, created, items[len(items)-1])
	})

	t.Run("ids are sequential from one", func(t *testing.T) {
		repo := newRepo(t)
		const n = 5
		for i := 1; i <= n; i++ {
			d, err := repo.Create(ctx, domain.ValidDonation{DonorName: "Donor", Amount: float64(i), Currency: "USD"})
			require.NoError(t, err)
			assert.Equal(t, int64(i), d.ID)
		}

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, n)
		for i, d := range items {
			assert.Equal(t, int64(i+1), d.ID)
			assert.Equal(t, float64(i+1), d.Amount)
		}
	})

	t.Run("round trip keeps field values", func(t *testing.T) {
		repo := newRepo(t)
		in := domain.ValidDonation{DonorName: "Zoë Ångström", Amount: 12.34, Currency: "CHF"}
		_, err := repo.Create(ctx, in)
		require.NoError(t, err)

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		got := items[0]
		assert.Equal(t, in.DonorName, got.DonorName)
		assert.Equal(t, in.Amount, got.Amount)
		assert.Equal(t, in.Currency, got.Currency)
		assert.Nil(t, got.Message)
	})
}
