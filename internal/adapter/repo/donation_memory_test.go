package repo

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"donations/internal/domain"
)

func TestDonationMemoryRepositoryContract(t *testing.T) {
	runDonationRepositoryContract(t, func(*testing.T) domain.DonationRepository {
		return NewDonationMemoryRepository()
	})
}

type MemoryRepositorySuite struct {
	suite.Suite
	repo *DonationRepositoryMemory
	ctx  context.Context
}

func TestMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositorySuite))
}

func (s *MemoryRepositorySuite) SetupTest() {
	s.repo = NewDonationMemoryRepository()
	s.ctx = context.Background()
}

// TestListIsSnapshot verifies callers cannot mutate stored records through a listing.
func (s *MemoryRepositorySuite) TestListIsSnapshot() {
	_, err := s.repo.Create(s.ctx, domain.ValidDonation{DonorName: "A", Amount: 1, Currency: "EUR", Message: strPtr("hi")})
	s.Require().NoError(err)

	first, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	first[0].DonorName = "mutated"
	*first[0].Message = "mutated"

	second, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Equal("A", second[0].DonorName)
	s.Equal("hi", *second[0].Message)
}

// TestCreateDoesNotAliasInput verifies the stored message is independent of the caller's string.
func (s *MemoryRepositorySuite) TestCreateDoesNotAliasInput() {
	msg := "original"
	created, err := s.repo.Create(s.ctx, domain.ValidDonation{DonorName: "A", Amount: 1, Currency: "EUR", Message: &msg})
	s.Require().NoError(err)
	msg = "changed"
	*created.Message = "changed too"

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Equal("original", *items[0].Message)
}

// TestConcurrentCreatesKeepIDsUnique verifies id assignment and append are atomic.
func (s *MemoryRepositorySuite) TestConcurrentCreatesKeepIDsUnique() {
	const writers = 64
	var wg sync.WaitGroup
	ids := make([]int64, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := s.repo.Create(s.ctx, domain.ValidDonation{DonorName: "A", Amount: 1, Currency: "EUR"})
			s.NoError(err)
			ids[i] = d.ID
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	for i, id := range ids {
		s.Equal(int64(i+1), id)
	}

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, writers)
	for i, d := range items {
		s.Equal(int64(i+1), d.ID, "list must follow id order")
	}
}
