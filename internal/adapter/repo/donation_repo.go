package repo

import (
	"context"
	"fmt"

	"donations/internal/domain"
	"donations/internal/infra"
	"donations/internal/sqlinline"
)

// DonationRepositoryPG implements DonationRepository using PostgreSQL. IDs come
// from an identity column, so ordering by id is creation order.
type DonationRepositoryPG struct {
	db infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo over a marker-aware executor.
func NewDonationRepository(db infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{db: db}
}

// Create inserts a new donation record and returns it with the assigned ID.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation domain.ValidDonation) (domain.Donation, error) {
	var id int64
	row := r.db.QueryRow(ctx, sqlinline.QInsertDonation, donation.DonorName, donation.Amount, donation.Currency, donation.Message)
	if err := row.Scan(&id); err != nil {
		return domain.Donation{}, fmt.Errorf("%w: insert donation: %w", domain.ErrStorage, err)
	}
	return donation.WithID(id), nil
}

// List returns every donation ordered by ID.
func (r *DonationRepositoryPG) List(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListDonations)
	if err != nil {
		return nil, fmt.Errorf("%w: list donations: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	items := make([]domain.Donation, 0)
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.DonorName, &d.Amount, &d.Currency, &d.Message); err != nil {
			return nil, fmt.Errorf("%w: scan donation: %w", domain.ErrStorage, err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list donations: %w", domain.ErrStorage, err)
	}
	return items, nil
}

// Ping checks the database round trip.
func (r *DonationRepositoryPG) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, sqlinline.QPing).Scan(&one); err != nil {
		return fmt.Errorf("%w: ping: %w", domain.ErrStorage, err)
	}
	return nil
}

// Migrate creates the donations table when it does not exist.
func (r *DonationRepositoryPG) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, sqlinline.QCreateDonationsTable); err != nil {
		return fmt.Errorf("%w: migrate: %w", domain.ErrStorage, err)
	}
	return nil
}

var (
	_ domain.DonationRepository = (*DonationRepositoryPG)(nil)
	_ domain.Pinger             = (*DonationRepositoryPG)(nil)
)
