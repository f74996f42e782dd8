package service

import (
	"context"
	"errors"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo"
	"bid-approval-api/internal/repo/repo_errors"
)

type HistoryService struct {
	bidRepo     repo.Bid
	historyRepo repo.History
}

func NewHistoryService(repos *repo.Repositories) *HistoryService {
	return &HistoryService{
		bidRepo:     repos.Bid,
		historyRepo: repos.History,
	}
}

func (s *HistoryService) HistoryForBid(ctx context.Context, bidRef string, pg *entity.PaginationInput) ([]entity.HistoryOutputModel, error) {
	if _, err := s.bidRepo.GetBidByRef(ctx, bidRef); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	records, err := s.historyRepo.GetHistoryForBid(ctx, bidRef, pg)
	if err != nil {
		return nil, err
	}

	return mapHistoryRecords(records), nil
}
