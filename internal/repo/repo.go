package repo

import (
	"context"
	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo/pgdb"
	"bid-approval-api/pkg/postgres"
)

type Diagnostics interface {
	Ping() error
}

type Bid interface {
	// CreateBid inserts the bid, its items and the creation history entries
	// in one transaction and returns the allocated bid ref.
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (string, error)
	GetBidByRef(ctx context.Context, ref string) (*entity.Bid, error)
	GetBids(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.Bid, error)

	// TransitionBid applies one lifecycle transition atomically: it locks the
	// bid row, verifies the current status against the expected set, applies
	// the field changes, adjusts submission selection flags when asked and
	// appends the history entry. Returns the status the bid ends up in.
	TransitionBid(ctx context.Context, ref string, t *entity.BidTransition) (string, error)
}

type Item interface {
	AddItem(ctx context.Context, bidRef string, input *entity.CreateItemInput) (string, error)
	GetItemByRef(ctx context.Context, ref string) (*entity.BidItem, error)
	GetItemsForBid(ctx context.Context, bidRef string) ([]entity.BidItem, error)
	DeleteItem(ctx context.Context, ref string) error
}

type Submission interface {
	CreateSubmission(ctx context.Context, input *entity.CreateSubmissionInput, hist *entity.HistoryInput) (string, error)
	GetSubmissionByRef(ctx context.Context, ref string) (*entity.BuyerSubmission, error)
	GetSubmissionsForBid(ctx context.Context, bidRef string) ([]entity.BuyerSubmission, error)

	// ReplaceItemRates drops the bidder's previous rate set for the bid and
	// inserts the new one, with the history entry, in one transaction.
	ReplaceItemRates(ctx context.Context, input *entity.SubmitRatesInput, hist *entity.HistoryInput) error
	GetRatesForBid(ctx context.Context, bidRef string) ([]entity.BidderItemRate, error)
}

type Party interface {
	CreateBuyer(ctx context.Context, input *entity.CreatePartyInput) (string, error)
	GetBuyerByRef(ctx context.Context, ref string) (*entity.Buyer, error)
	GetBuyers(ctx context.Context) ([]entity.Buyer, error)

	CreateBidder(ctx context.Context, input *entity.CreatePartyInput) (string, error)
	GetBidderByRef(ctx context.Context, ref string) (*entity.Bidder, error)
	GetBidders(ctx context.Context) ([]entity.Bidder, error)

	GetVendorByRef(ctx context.Context, ref string) (*entity.Vendor, error)
}

type History interface {
	// GetHistoryForBid returns the transition log newest first.
	GetHistoryForBid(ctx context.Context, bidRef string, pg *entity.PaginationInput) ([]entity.HistoryRecord, error)
}

type Repositories struct {
	Diagnostics
	Bid
	Item
	Submission
	Party
	History
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Bid:         pgdb.NewBidRepo(p),
		Item:        pgdb.NewItemRepo(p),
		Submission:  pgdb.NewSubmissionRepo(p),
		Party:       pgdb.NewPartyRepo(p),
		History:     pgdb.NewHistoryRepo(p),
	}
}
