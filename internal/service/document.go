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

// documentHistoryLimit bounds the transition log included in the summary
// document; a bid's lifetime stays far below this in practice.
const documentHistoryLimit = 200

type DocumentService struct {
	bidRepo        repo.Bid
	itemRepo       repo.Item
	submissionRepo repo.Submission
	historyRepo    repo.History
	renderer       Renderer
}

func NewDocumentService(repos *repo.Repositories, renderer Renderer) *DocumentService {
	return &DocumentService{
		bidRepo:        repos.Bid,
		itemRepo:       repos.Item,
		submissionRepo: repos.Submission,
		historyRepo:    repos.History,
		renderer:       renderer,
	}
}

func (s *DocumentService) ApprovalDocument(ctx context.Context, bidRef string) ([]byte, string, error) {
	bid, err := s.bidRepo.GetBidByRef(ctx, bidRef)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, "", ErrBidNotFound
		}

		return nil, "", err
	}

	if bid.Status != common.Approved {
		return nil, "", &PreconditionError{Expected: []string{common.Approved}, Actual: bid.Status}
	}

	items, err := s.itemRepo.GetItemsForBid(ctx, bidRef)
	if err != nil {
		return nil, "", err
	}

	submissions, err := s.submissionRepo.GetSubmissionsForBid(ctx, bidRef)
	if err != nil {
		return nil, "", err
	}

	history, err := s.historyRepo.GetHistoryForBid(ctx, bidRef, entity.NewPaginationInput(documentHistoryLimit, 0))
	if err != nil {
		return nil, "", err
	}

	document, err := s.renderer.Render(bid, items, submissions, history)
	if err != nil {
		return nil, "", err
	}

	return document, fmt.Sprintf("bid_%s_approval.txt", bidRef), nil
}
