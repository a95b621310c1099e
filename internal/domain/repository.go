package domain

import "context"

//go:generate mockgen -source=repository.go -destination=mocks/repository_mocks.go -package=mocks

// DonationRepository assigns identifiers and keeps donations in creation order.
type DonationRepository interface {
	Create(ctx context.Context, donation ValidDonation) (Donation, error)
	List(ctx context.Context) ([]Donation, error)
}

// Pinger is implemented by repositories backed by an external service.
type Pinger interface {
	Ping(ctx context.Context) error
}
