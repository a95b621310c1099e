package repo

import (
	"context"
	"sync"

	"donations/internal/domain"
)

// DonationRepositoryMemory keeps donations in process memory for the life of the process.
type DonationRepositoryMemory struct {
	mu        sync.RWMutex
	donations []domain.Donation
	nextID    int64
}

// NewDonationMemoryRepository returns an empty repository whose first ID is 1.
func NewDonationMemoryRepository() *DonationRepositoryMemory {
	return &DonationRepositoryMemory{nextID: 1}
}

// Create assigns the next sequential ID and appends the donation. ID
// assignment and append happen under one lock.
func (r *DonationRepositoryMemory) Create(_ context.Context, donation domain.ValidDonation) (domain.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := donation.WithID(r.nextID)
	r.nextID++
	r.donations = append(r.donations, stored)
	return stored.Clone(), nil
}

// List returns a snapshot of every donation, oldest first.
func (r *DonationRepositoryMemory) List(_ context.Context) ([]domain.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Donation, len(r.donations))
	for i, d := range r.donations {
		out[i] = d.Clone()
	}
	return out, nil
}

var _ domain.DonationRepository = (*DonationRepositoryMemory)(nil)
