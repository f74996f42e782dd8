package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bid-approval-api/internal/common"
	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo"
	"bid-approval-api/internal/repo/repo_errors"
)

type LifecycleService struct {
	bidRepo        repo.Bid
	itemRepo       repo.Item
	submissionRepo repo.Submission
	partyRepo      repo.Party
}

func NewLifecycleService(repos *repo.Repositories) *LifecycleService {
	return &LifecycleService{
		bidRepo:        repos.Bid,
		itemRepo:       repos.Item,
		submissionRepo: repos.Submission,
		partyRepo:      repos.Party,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// loadBid translates the repo's not-found into the service sentinel.
func (s *LifecycleService) loadBid(ctx context.Context, bidRef string) (*entity.Bid, error) {
	bid, err := s.bidRepo.GetBidByRef(ctx, bidRef)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	return bid, nil
}

func requireStatus(bid *entity.Bid, expected ...string) error {
	for _, status := range expected {
		if bid.Status == status {
			return nil
		}
	}

	return &PreconditionError{Expected: expected, Actual: bid.Status}
}

// transition runs the repo's atomic unit and maps a racing status change to
// the same precondition failure the pre-check produces.
func (s *LifecycleService) transition(ctx context.Context, bidRef string, t *entity.BidTransition) (*entity.BidOutputModel, error) {
	actual, err := s.bidRepo.TransitionBid(ctx, bidRef, t)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}
		if errors.Is(err, repo_errors.ErrStatusConflict) {
			return nil, &PreconditionError{Expected: t.Expected, Actual: actual}
		}

		return nil, err
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

func (s *LifecycleService) CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	if blank(input.ContractName) {
		return nil, &ValidationError{Field: "contractName", Reason: "this field is required"}
	}
	if input.ContractValue.IsNegative() {
		return nil, &ValidationError{Field: "contractValue", Reason: "must not be negative"}
	}
	for _, item := range input.Items {
		if blank(item.ItemName) {
			return nil, &ValidationError{Field: "items.itemName", Reason: "this field is required"}
		}
		if item.Quantity.IsNegative() {
			return nil, &ValidationError{Field: "items.quantity", Reason: "must not be negative"}
		}
	}

	input.Status = common.Draft
	if input.AssignedBuyerRef != "" {
		buyer, err := s.partyRepo.GetBuyerByRef(ctx, input.AssignedBuyerRef)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return nil, ErrBuyerNotFound
			}

			return nil, err
		}
		input.AssignedBuyerName = buyer.Name
		input.Status = common.AwaitingBuyer
	}

	bidRef, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		return nil, err
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

func (s *LifecycleService) GetBidByRef(ctx context.Context, bidRef string) (*entity.BidOutputModel, error) {
	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

func (s *LifecycleService) GetBids(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	if status != "" && !common.ValidStatus(status) {
		return nil, &ValidationError{Field: "status", Reason: "unknown status value"}
	}

	bids, err := s.bidRepo.GetBids(ctx, status, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *LifecycleService) AssignBuyer(ctx context.Context, bidRef, buyerRef, vendorName string) (*entity.BidOutputModel, error) {
	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	buyer, err := s.partyRepo.GetBuyerByRef(ctx, buyerRef)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBuyerNotFound
		}

		return nil, err
	}

	if err := requireStatus(bid, common.Draft, common.AwaitingBuyer); err != nil {
		return nil, err
	}

	return s.transition(ctx, bidRef, &entity.BidTransition{
		Expected:         []string{common.Draft, common.AwaitingBuyer},
		NewStatus:        common.AwaitingBuyer,
		SetSelectedBuyer: &buyerRef,
		History: entity.HistoryInput{
			ActionBy: vendorName,
			Role:     common.RoleVendor,
			Action:   common.ActionAssignedBuyer,
			Comment:  fmt.Sprintf("Assigned buyer %s (%s)", buyer.Name, buyerRef),
		},
	})
}

func (s *LifecycleService) SelectSubmission(ctx context.Context, bidRef, submissionRef, justification, vendorName string) (*entity.BidOutputModel, error) {
	if blank(justification) {
		return nil, &ValidationError{Field: "justification", Reason: "this field is required"}
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetSubmissionByRef(ctx, submissionRef)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}

		return nil, err
	}
	if submission.BidRef != bidRef {
		return nil, ErrSubmissionNotFound
	}

	expected := []string{common.Draft, common.AwaitingBuyer, common.UnderReview, common.PendingA1}
	if err := requireStatus(bid, expected...); err != nil {
		return nil, err
	}

	// Coming back from an A1 rejection is a resubmission, not a first pick.
	action := common.ActionSelectedForA1
	if bid.Status == common.UnderReview {
		action = common.ActionResubmittedForA1
	}

	return s.transition(ctx, bidRef, &entity.BidTransition{
		Expected:              expected,
		NewStatus:             common.PendingA1,
		SetSelectedBuyer:      &submission.BuyerRef,
		SetSelectedSubmission: &submission.Ref,
		SetJustification:      &justification,
		StampSubmissionDate:   true,
		ResetApprovals:        true,
		SelectSubmissionRef:   &submission.Ref,
		History: entity.HistoryInput{
			ActionBy: vendorName,
			Role:     common.RoleVendor,
			Action:   action,
			Comment: fmt.Sprintf("Selected Submission: %s (Buyer: %s), Justification: %s",
				submission.Ref, submission.BuyerRef, justification),
		},
	})
}

func (s *LifecycleService) BuyerRespond(ctx context.Context, bidRef, buyerRef, comment string) (*entity.BidOutputModel, error) {
	if blank(comment) {
		return nil, &ValidationError{Field: "comment", Reason: "this field is required"}
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	if bid.SelectedBuyerRef == "" || bid.SelectedBuyerRef != buyerRef {
		return nil, ErrBuyerNotAssigned
	}

	expected := []string{common.Draft, common.AwaitingBuyer, common.UnderReview}
	if err := requireStatus(bid, expected...); err != nil {
		return nil, err
	}

	actorName := buyerRef
	if buyer, err := s.partyRepo.GetBuyerByRef(ctx, buyerRef); err == nil {
		actorName = buyer.Name
	}

	assigned := common.SubmissionAssigned
	return s.transition(ctx, bidRef, &entity.BidTransition{
		Expected:              expected,
		NewStatus:             common.PendingA1,
		SetBuyerComment:       &comment,
		SetSelectedSubmission: &assigned,
		StampSubmissionDate:   true,
		ResetApprovals:        true,
		History: entity.HistoryInput{
			ActionBy: actorName,
			Role:     common.RoleBuyer,
			Action:   common.ActionSubmittedForA1,
			Comment:  comment,
		},
	})
}

func (s *LifecycleService) A1Approve(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error) {
	if blank(comment) {
		return nil, &ValidationError{Field: "comment", Reason: "this field is required"}
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(bid, common.PendingA1); err != nil {
		return nil, err
	}

	return s.transition(ctx, bidRef, &entity.BidTransition{
		Expected:  []string{common.PendingA1},
		NewStatus: common.PendingA2,
		SetA1:     &entity.ApprovalBlock{Status: common.ApprovalApproved, Comment: comment},
		History: entity.HistoryInput{
			ActionBy: approverName,
			Role:     common.RoleA1,
			Action:   common.ActionApproved,
			Comment:  comment,
		},
	})
}

// competitiveSelection reports whether the bid went through a competitive
// submission pick rather than a single assigned buyer.
func competitiveSelection(bid *entity.Bid) bool {
	return bid.SelectedSubmissionId != "" && bid.SelectedSubmissionId != common.SubmissionAssigned
}

func (s *LifecycleService) A1Reject(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error) {
	if blank(comment) {
		return nil, &ValidationError{Field: "comment", Reason: "this field is required"}
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(bid, common.PendingA1); err != nil {
		return nil, err
	}

	// Competitive bids go back to the vendor for reselection; assigned bids
	// return to the buyer for another response.
	newStatus := common.AwaitingBuyer
	if competitiveSelection(bid) {
		newStatus = common.UnderReview
	}

	return s.transition(ctx, bidRef, &entity.BidTransition{
		Expected:  []string{common.PendingA1},
		NewStatus: newStatus,
		SetA1:     &entity.ApprovalBlock{Status: common.ApprovalRejected, Comment: comment},
		History: entity.HistoryInput{
			ActionBy: approverName,
			Role:     common.RoleA1,
			Action:   common.ActionRejected,
			Comment:  comment,
		},
	})
}

func (s *LifecycleService) A2Approve(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error) {
	if blank(comment) {
		return nil, &ValidationError{Field: "comment", Reason: "this field is required"}
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(bid, common.PendingA2); err != nil {
		return nil, err
	}

	return s.transition(ctx, bidRef, &entity.BidTransition{
		Expected:  []string{common.PendingA2},
		NewStatus: common.Approved,
		SetA2:     &entity.ApprovalBlock{Status: common.ApprovalApproved, Comment: comment},
		History: entity.HistoryInput{
			ActionBy: approverName,
			Role:     common.RoleA2,
			Action:   common.ActionApprovedFinal,
			Comment:  comment,
		},
	})
}

func (s *LifecycleService) A2Reject(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error) {
	if blank(comment) {
		return nil, &ValidationError{Field: "comment", Reason: "this field is required"}
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(bid, common.PendingA2); err != nil {
		return nil, err
	}

	// A1 must re-decide, so only its status returns to Pending; the prior
	// comment and date stay on record.
	return s.transition(ctx, bidRef, &entity.BidTransition{
		Expected:      []string{common.PendingA2},
		NewStatus:     common.PendingA1,
		SetA2:         &entity.ApprovalBlock{Status: common.ApprovalRejected, Comment: comment},
		ResetA1Status: true,
		History: entity.HistoryInput{
			ActionBy: approverName,
			Role:     common.RoleA2,
			Action:   common.ActionRejectedToA1,
			Comment:  comment,
		},
	})
}

func (s *LifecycleService) A2Reopen(ctx context.Context, bidRef, comment, approverName string) (*entity.BidOutputModel, error) {
	if blank(comment) {
		return nil, &ValidationError{Field: "comment", Reason: "this field is required"}
	}

	bid, err := s.loadBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	if err := requireStatus(bid, common.Approved); err != nil {
		return nil, err
	}

	newStatus := common.AwaitingBuyer
	if competitiveSelection(bid) {
		newStatus = common.UnderReview
	}

	empty := ""
	return s.transition(ctx, bidRef, &entity.BidTransition{
		Expected:              []string{common.Approved},
		NewStatus:             newStatus,
		SetSelectedSubmission: &empty,
		SetJustification:      &empty,
		SetBuyerComment:       &empty,
		ClearSubmissionDate:   true,
		ResetApprovals:        true,
		ClearSelectedFlags:    true,
		History: entity.HistoryInput{
			ActionBy: approverName,
			Role:     common.RoleA2,
			Action:   common.ActionReopened,
			Comment:  comment,
		},
	})
}

func (s *LifecycleService) AddItem(ctx context.Context, bidRef string, input *entity.CreateItemInput) (*entity.ItemOutputModel, error) {
	if blank(input.ItemName) {
		return nil, &ValidationError{Field: "itemName", Reason: "this field is required"}
	}
	if input.Quantity.IsNegative() {
		return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}

	if _, err := s.loadBid(ctx, bidRef); err != nil {
		return nil, err
	}

	ref, err := s.itemRepo.AddItem(ctx, bidRef, input)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetItemByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	return mapItem(item), nil
}

func (s *LifecycleService) GetItemsForBid(ctx context.Context, bidRef string) ([]entity.ItemOutputModel, error) {
	if _, err := s.loadBid(ctx, bidRef); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.GetItemsForBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	return mapItems(items), nil
}

func (s *LifecycleService) DeleteItem(ctx context.Context, itemRef string) error {
	if err := s.itemRepo.DeleteItem(ctx, itemRef); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrItemNotFound
		}

		return err
	}

	return nil
}
