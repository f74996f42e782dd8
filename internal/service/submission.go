package service

import (
	"context"
	"errors"
	"fmt"

	"bid-approval-api/internal/common"
	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo"
	"bid-approval-api/internal/repo/repo_errors"
)

type SubmissionService struct {
	bidRepo        repo.Bid
	itemRepo       repo.Item
	submissionRepo repo.Submission
	partyRepo      repo.Party
}

func NewSubmissionService(repos *repo.Repositories) *SubmissionService {
	return &SubmissionService{
		bidRepo:        repos.Bid,
		itemRepo:       repos.Item,
		submissionRepo: repos.Submission,
		partyRepo:      repos.Party,
	}
}

func (s *SubmissionService) SubmitBuyerSubmission(ctx context.Context, input *entity.CreateSubmissionInput) (*entity.SubmissionOutputModel, error) {
	if input.Amount.IsNegative() {
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	if _, err := s.bidRepo.GetBidByRef(ctx, input.BidRef); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	buyer, err := s.partyRepo.GetBuyerByRef(ctx, input.BuyerRef)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBuyerNotFound
		}

		return nil, err
	}
	input.BuyerName = buyer.Name

	hist := &entity.HistoryInput{
		ActionBy: buyer.Name,
		Role:     common.RoleBuyer,
		Action:   common.ActionSubmittedBid,
		Comment:  fmt.Sprintf("Bid Amount: %s", input.Amount.String()),
	}

	ref, err := s.submissionRepo.CreateSubmission(ctx, input, hist)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetSubmissionByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	return mapSubmission(submission), nil
}

func (s *SubmissionService) GetSubmissionsForBid(ctx context.Context, bidRef string) ([]entity.SubmissionOutputModel, error) {
	if _, err := s.bidRepo.GetBidByRef(ctx, bidRef); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	submissions, err := s.submissionRepo.GetSubmissionsForBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	return mapSubmissions(submissions), nil
}

func (s *SubmissionService) SubmitItemRates(ctx context.Context, input *entity.SubmitRatesInput) error {
	if len(input.Rates) == 0 {
		return &ValidationError{Field: "rates", Reason: "at least one item rate is required"}
	}

	if _, err := s.bidRepo.GetBidByRef(ctx, input.BidRef); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrBidNotFound
		}

		return err
	}

	bidder, err := s.partyRepo.GetBidderByRef(ctx, input.BidderRef)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrBidderNotFound
		}

		return err
	}

	items, err := s.itemRepo.GetItemsForBid(ctx, input.BidRef)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.Ref] = true
	}

	for _, rate := range input.Rates {
		if rate.UnitRate.IsNegative() {
			return &ValidationError{Field: "rates.unitRate", Reason: "must not be negative"}
		}
		if !known[rate.ItemRef] {
			return ErrItemNotFound
		}
	}

	hist := &entity.HistoryInput{
		ActionBy: bidder.Name,
		Role:     common.RoleBidder,
		Action:   common.ActionSubmittedItemBids,
		Comment:  fmt.Sprintf("Submitted unit rates for %d items", len(input.Rates)),
	}

	return s.submissionRepo.ReplaceItemRates(ctx, input, hist)
}
