package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"donations/internal/domain"
)

// appendDonation bumps the sequence and pushes the wrapped payload in one
// atomic step, so list order always matches id order.
var appendDonation = redis.NewScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('RPUSH', KEYS[2], '{"id":' .. id .. ',"donation":' .. ARGV[1] .. '}')
return id
`)

type redisPayload struct {
	DonorName string  `json:"donor_name"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Message   *string `json:"message"`
}

type redisRecord struct {
	ID       int64        `json:"id"`
	Donation redisPayload `json:"donation"`
}

// DonationRepositoryRedis stores donations in a Redis list with an INCR sequence.
type DonationRepositoryRedis struct {
	client  redis.UniversalClient
	seqKey  string
	listKey string
}

// NewDonationRedisRepository namespaces its keys under prefix.
func NewDonationRedisRepository(client redis.UniversalClient, prefix string) *DonationRepositoryRedis {
	if prefix == "" {
		prefix = "donations"
	}
	return &DonationRepositoryRedis{
		client:  client,
		seqKey:  prefix + ":seq",
		listKey: prefix + ":list",
	}
}

// Create stores the donation and returns it with the id the script assigned.
func (r *DonationRepositoryRedis) Create(ctx context.Context, donation domain.ValidDonation) (domain.Donation, error) {
	payload, err := json.Marshal(redisPayload{
		DonorName: donation.DonorName,
		Amount:    donation.Amount,
		Currency:  donation.Currency,
		Message:   donation.Message,
	})
	if err != nil {
		return domain.Donation{}, fmt.Errorf("%w: encode donation: %w", domain.ErrStorage, err)
	}
	id, err := appendDonation.Run(ctx, r.client, []string{r.seqKey, r.listKey}, string(payload)).Int64()
	if err != nil {
		return domain.Donation{}, fmt.Errorf("%w: append donation: %w", domain.ErrStorage, err)
	}
	return donation.WithID(id), nil
}

// List returns every donation in append order, which is id order.
func (r *DonationRepositoryRedis) List(ctx context.Context) ([]domain.Donation, error) {
	raw, err := r.client.LRange(ctx, r.listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list donations: %w", domain.ErrStorage, err)
	}
	items := make([]domain.Donation, 0, len(raw))
	for _, entry := range raw {
		var rec redisRecord
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			return nil, fmt.Errorf("%w: decode donation: %w", domain.ErrStorage, err)
		}
		items = append(items, domain.Donation{
			ID:        rec.ID,
			DonorName: rec.Donation.DonorName,
			Amount:    rec.Donation.Amount,
			Currency:  rec.Donation.Currency,
			Message:   rec.Donation.Message,
		})
	}
	return items, nil
}

// Ping checks the Redis round trip.
func (r *DonationRepositoryRedis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %w", domain.ErrStorage, err)
	}
	return nil
}

var (
	_ domain.DonationRepository = (*DonationRepositoryRedis)(nil)
	_ domain.Pinger             = (*DonationRepositoryRedis)(nil)
)
