package service

import (
	"context"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

// Lifecycle is the bid state machine: every method validates the bid's
// current status, applies the mutation and appends exactly one history entry
// (CreateBid with an assigned buyer appends two, matching the original
// workflow). Role checks happen upstream; the actor's name and role are
// trusted as given.
type Lifecycle interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetBidByRef(ctx context.Context, bidRef string) (*entity.BidOutputModel, error)
	GetBids(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)

	AssignBuyer(ctx context.Context, bidRef, buyerRef, vendorName string) (*entity.BidOutputModel, error)
	SelectSubmission(ctx context.Context, bidRef, submissionRef, justification, vendorName string) (*entity.BidOutputModel, error)
	BuyerRespond(ctx context.Context, bidRef, buyerRef, comment string) (*entity.BidOutputModel, error)

	A1Approve(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error)
	A1Reject(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error)
	A2Approve(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error)
	A2Reject(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error)
	A2Reopen(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error)

	AddItem(ctx context.Context, bidRef string, input *entity.CreateItemInput) (*entity.ItemOutputModel, error)
	GetItemsForBid(ctx context.Context, bidRef string) ([]entity.ItemOutputModel, error)
	DeleteItem(ctx context.Context, itemRef string) error
}

type Submission interface {
	SubmitBuyerSubmission(ctx context.Context, input *entity.CreateSubmissionInput) (*entity.SubmissionOutputModel, error)
	GetSubmissionsForBid(ctx context.Context, bidRef string) ([]entity.SubmissionOutputModel, error)
	SubmitItemRates(ctx context.Context, input *entity.SubmitRatesInput) error
}

type Comparison interface {
	// TotalsForBid ranks bidders by their total quoted amount, lowest first.
	TotalsForBid(ctx context.Context, bidRef string) ([]entity.BidderTotal, error)
}

type History interface {
	HistoryForBid(ctx context.Context, bidRef string, pg *entity.PaginationInput) ([]entity.HistoryOutputModel, error)
}

type Party interface {
	CreateBuyer(ctx context.Context, input *entity.CreatePartyInput) (*entity.PartyOutputModel, error)
	GetBuyers(ctx context.Context) ([]entity.PartyOutputModel, error)
	CreateBidder(ctx context.Context, input *entity.CreatePartyInput) (*entity.PartyOutputModel, error)
	GetBidders(ctx context.Context) ([]entity.PartyOutputModel, error)
}

// Renderer produces the downloadable approval summary. It is a pure function
// of its inputs and never touches lifecycle state.
type Renderer interface {
	Render(bid *entity.Bid, items []entity.BidItem, submissions []entity.BuyerSubmission, history []entity.HistoryRecord) ([]byte, error)
}

type Document interface {
	// ApprovalDocument renders the summary for an approved bid and returns
	// the byte stream plus a download file name.
	ApprovalDocument(ctx context.Context, bidRef string) ([]byte, string, error)
}

type Services struct {
	Diagnostics Diagnostics
	Lifecycle   Lifecycle
	Submission  Submission
	Comparison  Comparison
	History     History
	Party       Party
	Document    Document
}

func NewServices(repos *repo.Repositories, renderer Renderer) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Lifecycle:   NewLifecycleService(repos),
		Submission:  NewSubmissionService(repos),
		Comparison:  NewComparisonService(repos),
		History:     NewHistoryService(repos),
		Party:       NewPartyService(repos),
		Document:    NewDocumentService(repos, renderer),
	}
}
