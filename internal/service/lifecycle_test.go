package service

import (
	"context"
	"errors"
	"testing"

	"bid-approval-api/internal/common"
	"bid-approval-api/internal/entity"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func seedBuyer(t *testing.T, m *memRepo, name string) string {
	t.Helper()

	ref, err := m.CreateBuyer(context.Background(), &entity.CreatePartyInput{Name: name})
	check.Nil(t, err)

	return ref
}

func seedBidder(t *testing.T, m *memRepo, name string) string {
	t.Helper()

	ref, err := m.CreateBidder(context.Background(), &entity.CreatePartyInput{Name: name})
	check.Nil(t, err)

	return ref
}

// seedAssignedBid creates a bid with an assigned buyer, ready for the
// single-buyer workflow.
func seedAssignedBid(t *testing.T, s *LifecycleService, m *memRepo) (bidRef, buyerRef string) {
	t.Helper()

	buyerRef = seedBuyer(t, m, "Acme Supplies")
	bid, err := s.CreateBid(context.Background(), &entity.CreateBidInput{
		ContractName:     "Office Fitout",
		ContractValue:    decimal.NewFromInt(50000),
		VendorName:       "Jordan Vale",
		AssignedBuyerRef: buyerRef,
	})
	check.Nil(t, err)

	return bid.Ref, buyerRef
}

func TestCreateBid_Draft(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())

	bid, err := s.CreateBid(context.Background(), &entity.CreateBidInput{
		ContractName:  "Warehouse Racking",
		ContractValue: decimal.NewFromInt(12000),
		VendorName:    "Jordan Vale",
		Items: []entity.CreateItemInput{
			{ItemName: "Pallet rack", Quantity: decimal.NewFromInt(10), Unit: "pcs"},
		},
	})

	check.Nil(t, err)
	check.Equal(t, "BID001", bid.Ref)
	check.Equal(t, common.Draft, bid.Status)
	check.Equal(t, common.ApprovalPending, bid.A1.Status)
	check.Equal(t, common.ApprovalPending, bid.A2.Status)

	history, err := m.GetHistoryForBid(context.Background(), bid.Ref, entity.NewPaginationInput(10, 0))
	check.Nil(t, err)
	check.Equal(t, 1, len(history))
	check.Equal(t, common.ActionCreatedBid, history[0].Action)
	check.Equal(t, "", history[0].PreviousStatus)
	check.Equal(t, common.Draft, history[0].NewStatus)

	items, err := s.GetItemsForBid(context.Background(), bid.Ref)
	check.Nil(t, err)
	check.Equal(t, 1, len(items))
	check.Equal(t, "Pallet rack", items[0].ItemName)
}

func TestCreateBid_WithAssignedBuyer(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())

	bidRef, buyerRef := seedAssignedBid(t, s, m)

	bid, err := s.GetBidByRef(context.Background(), bidRef)
	check.Nil(t, err)
	check.Equal(t, common.AwaitingBuyer, bid.Status)
	check.Equal(t, buyerRef, bid.SelectedBuyerRef)

	history, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(10, 0))
	check.Nil(t, err)
	check.Equal(t, 2, len(history))
	check.Equal(t, common.ActionAssignedBuyer, history[0].Action)
	check.Equal(t, common.ActionCreatedBid, history[1].Action)
}

func TestCreateBid_Validation(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())

	_, err := s.CreateBid(context.Background(), &entity.CreateBidInput{ContractName: "  "})
	check.True(t, errors.Is(err, ErrValidationFailed))

	_, err = s.CreateBid(context.Background(), &entity.CreateBidInput{
		ContractName:  "Negative",
		ContractValue: decimal.NewFromInt(-1),
	})
	check.True(t, errors.Is(err, ErrValidationFailed))

	_, err = s.CreateBid(context.Background(), &entity.CreateBidInput{
		ContractName:     "Ghost buyer",
		AssignedBuyerRef: "V999",
	})
	check.True(t, errors.Is(err, ErrBuyerNotFound))
}

func TestAssignBuyer(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	buyerRef := seedBuyer(t, m, "Acme Supplies")

	created, err := s.CreateBid(context.Background(), &entity.CreateBidInput{
		ContractName: "Courier Services",
		VendorName:   "Jordan Vale",
	})
	check.Nil(t, err)
	check.Equal(t, common.Draft, created.Status)

	bid, err := s.AssignBuyer(context.Background(), created.Ref, buyerRef, "Jordan Vale")
	check.Nil(t, err)
	check.Equal(t, common.AwaitingBuyer, bid.Status)
	check.Equal(t, buyerRef, bid.SelectedBuyerRef)

	_, err = s.AssignBuyer(context.Background(), created.Ref, "V999", "Jordan Vale")
	check.True(t, errors.Is(err, ErrBuyerNotFound))
}

func TestBuyerRespond(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, buyerRef := seedAssignedBid(t, s, m)

	bid, err := s.BuyerRespond(context.Background(), bidRef, buyerRef, "Quoted per catalogue prices")
	check.Nil(t, err)
	check.Equal(t, common.PendingA1, bid.Status)
	check.Equal(t, common.SubmissionAssigned, bid.SelectedSubmissionId)
	check.Equal(t, "Quoted per catalogue prices", bid.BuyerComment)
	check.NotEqual(t, "", bid.SubmissionDate)
	check.Equal(t, common.ApprovalPending, bid.A1.Status)
	check.Equal(t, common.ApprovalPending, bid.A2.Status)
}

func TestBuyerRespond_NotAssigned(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, _ := seedAssignedBid(t, s, m)
	otherRef := seedBuyer(t, m, "Borealis Trading")

	_, err := s.BuyerRespond(context.Background(), bidRef, otherRef, "I want this one")
	check.True(t, errors.Is(err, ErrBuyerNotAssigned))
}

func TestA1Approve(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, buyerRef := seedAssignedBid(t, s, m)

	_, err := s.BuyerRespond(context.Background(), bidRef, buyerRef, "Ready for review")
	check.Nil(t, err)

	bid, err := s.A1Approve(context.Background(), bidRef, "Looks good", "Sam Reyes")
	check.Nil(t, err)
	check.Equal(t, common.PendingA2, bid.Status)
	check.Equal(t, common.ApprovalApproved, bid.A1.Status)
	check.Equal(t, "Looks good", bid.A1.Comment)
	check.NotEqual(t, "", bid.A1.Date)

	history, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(10, 0))
	check.Nil(t, err)
	check.Equal(t, common.ActionApproved, history[0].Action)
	check.Equal(t, common.RoleA1, history[0].Role)
}

func TestA1Reject_AssignedGoesBackToBuyer(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, buyerRef := seedAssignedBid(t, s, m)

	_, err := s.BuyerRespond(context.Background(), bidRef, buyerRef, "First attempt")
	check.Nil(t, err)

	bid, err := s.A1Reject(context.Background(), bidRef, "Pricing unclear", "Sam Reyes")
	check.Nil(t, err)
	check.Equal(t, common.AwaitingBuyer, bid.Status)
	check.Equal(t, common.ApprovalRejected, bid.A1.Status)

	// The buyer can respond again; the resubmission wipes the rejection.
	bid, err = s.BuyerRespond(context.Background(), bidRef, buyerRef, "Revised pricing attached")
	check.Nil(t, err)
	check.Equal(t, common.PendingA1, bid.Status)
	check.Equal(t, common.ApprovalPending, bid.A1.Status)
	check.Equal(t, "", bid.A1.Comment)
}

func TestA2Approve(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, buyerRef := seedAssignedBid(t, s, m)

	_, err := s.BuyerRespond(context.Background(), bidRef, buyerRef, "Ready")
	check.Nil(t, err)
	_, err = s.A1Approve(context.Background(), bidRef, "Fine by me", "Sam Reyes")
	check.Nil(t, err)

	bid, err := s.A2Approve(context.Background(), bidRef, "Final sign-off", "Dana Cole")
	check.Nil(t, err)
	check.Equal(t, common.Approved, bid.Status)
	check.Equal(t, common.ApprovalApproved, bid.A2.Status)

	history, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(10, 0))
	check.Nil(t, err)
	check.Equal(t, common.ActionApprovedFinal, history[0].Action)
}

func TestA2Reject_ResetsOnlyA1Status(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, buyerRef := seedAssignedBid(t, s, m)

	_, err := s.BuyerRespond(context.Background(), bidRef, buyerRef, "Ready")
	check.Nil(t, err)
	_, err = s.A1Approve(context.Background(), bidRef, "Fine by me", "Sam Reyes")
	check.Nil(t, err)

	bid, err := s.A2Reject(context.Background(), bidRef, "Budget exceeded", "Dana Cole")
	check.Nil(t, err)
	check.Equal(t, common.PendingA1, bid.Status)
	check.Equal(t, common.ApprovalRejected, bid.A2.Status)
	check.Equal(t, "Budget exceeded", bid.A2.Comment)

	// A1 must decide again, but the earlier comment stays on record.
	check.Equal(t, common.ApprovalPending, bid.A1.Status)
	check.Equal(t, "Fine by me", bid.A1.Comment)

	history, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(10, 0))
	check.Nil(t, err)
	check.Equal(t, common.ActionRejectedToA1, history[0].Action)
}

func TestA2Reopen_Assigned(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, buyerRef := seedAssignedBid(t, s, m)

	_, err := s.BuyerRespond(context.Background(), bidRef, buyerRef, "Ready")
	check.Nil(t, err)
	_, err = s.A1Approve(context.Background(), bidRef, "Fine", "Sam Reyes")
	check.Nil(t, err)
	_, err = s.A2Approve(context.Background(), bidRef, "Sign-off", "Dana Cole")
	check.Nil(t, err)

	bid, err := s.A2Reopen(context.Background(), bidRef, "Contract terms changed", "Dana Cole")
	check.Nil(t, err)
	check.Equal(t, common.AwaitingBuyer, bid.Status)
	check.Equal(t, "", bid.SelectedSubmissionId)
	check.Equal(t, "", bid.VendorJustification)
	check.Equal(t, "", bid.BuyerComment)
	check.Equal(t, "", bid.SubmissionDate)
	check.Equal(t, common.ApprovalPending, bid.A1.Status)
	check.Equal(t, common.ApprovalPending, bid.A2.Status)

	// The assignment itself survives the reopen.
	check.Equal(t, buyerRef, bid.SelectedBuyerRef)
}

func seedCompetitiveBid(t *testing.T, s *LifecycleService, sub *SubmissionService, m *memRepo) (bidRef string, submissionRefs []string) {
	t.Helper()

	created, err := s.CreateBid(context.Background(), &entity.CreateBidInput{
		ContractName:  "Fleet Maintenance",
		ContractValue: decimal.NewFromInt(90000),
		VendorName:    "Jordan Vale",
	})
	check.Nil(t, err)

	for _, name := range []string{"Acme Supplies", "Borealis Trading"} {
		buyerRef := seedBuyer(t, m, name)
		submission, err := sub.SubmitBuyerSubmission(context.Background(), &entity.CreateSubmissionInput{
			BidRef:   created.Ref,
			BuyerRef: buyerRef,
			Amount:   decimal.NewFromInt(80000),
		})
		check.Nil(t, err)
		submissionRefs = append(submissionRefs, submission.Ref)
	}

	return created.Ref, submissionRefs
}

func TestSelectSubmission(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	sub := NewSubmissionService(m.repositories())
	bidRef, submissionRefs := seedCompetitiveBid(t, s, sub, m)

	bid, err := s.SelectSubmission(context.Background(), bidRef, submissionRefs[1], "Best delivery terms", "Jordan Vale")
	check.Nil(t, err)
	check.Equal(t, common.PendingA1, bid.Status)
	check.Equal(t, submissionRefs[1], bid.SelectedSubmissionId)
	check.Equal(t, "Best delivery terms", bid.VendorJustification)
	check.NotEqual(t, "", bid.SubmissionDate)

	submissions, err := sub.GetSubmissionsForBid(context.Background(), bidRef)
	check.Nil(t, err)
	selected := 0
	for _, submission := range submissions {
		if submission.IsSelected {
			selected++
			check.Equal(t, submissionRefs[1], submission.Ref)
		}
	}
	check.Equal(t, 1, selected)

	history, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(10, 0))
	check.Nil(t, err)
	check.Equal(t, common.ActionSelectedForA1, history[0].Action)
}

func TestSelectSubmission_ResubmissionAfterReject(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	sub := NewSubmissionService(m.repositories())
	bidRef, submissionRefs := seedCompetitiveBid(t, s, sub, m)

	_, err := s.SelectSubmission(context.Background(), bidRef, submissionRefs[0], "Lowest total", "Jordan Vale")
	check.Nil(t, err)

	// Competitive rejections land in Under Review, not Awaiting Buyer.
	bid, err := s.A1Reject(context.Background(), bidRef, "Pick the other one", "Sam Reyes")
	check.Nil(t, err)
	check.Equal(t, common.UnderReview, bid.Status)

	bid, err = s.SelectSubmission(context.Background(), bidRef, submissionRefs[1], "Reselected as advised", "Jordan Vale")
	check.Nil(t, err)
	check.Equal(t, common.PendingA1, bid.Status)
	check.Equal(t, submissionRefs[1], bid.SelectedSubmissionId)
	check.Equal(t, common.ApprovalPending, bid.A1.Status)

	history, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(10, 0))
	check.Nil(t, err)
	check.Equal(t, common.ActionResubmittedForA1, history[0].Action)
}

func TestSelectSubmission_WrongBid(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	sub := NewSubmissionService(m.repositories())
	bidRef, _ := seedCompetitiveBid(t, s, sub, m)
	otherRef, otherSubmissions := seedCompetitiveBid(t, s, sub, m)

	_, err := s.SelectSubmission(context.Background(), bidRef, otherSubmissions[0], "Oops", "Jordan Vale")
	check.True(t, errors.Is(err, ErrSubmissionNotFound))

	_, err = s.SelectSubmission(context.Background(), otherRef, "SUB999", "Oops", "Jordan Vale")
	check.True(t, errors.Is(err, ErrSubmissionNotFound))
}

func TestA2Reopen_CompetitiveClearsSelection(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	sub := NewSubmissionService(m.repositories())
	bidRef, submissionRefs := seedCompetitiveBid(t, s, sub, m)

	_, err := s.SelectSubmission(context.Background(), bidRef, submissionRefs[0], "Lowest total", "Jordan Vale")
	check.Nil(t, err)
	_, err = s.A1Approve(context.Background(), bidRef, "Fine", "Sam Reyes")
	check.Nil(t, err)
	_, err = s.A2Approve(context.Background(), bidRef, "Sign-off", "Dana Cole")
	check.Nil(t, err)

	bid, err := s.A2Reopen(context.Background(), bidRef, "Scope changed", "Dana Cole")
	check.Nil(t, err)
	check.Equal(t, common.UnderReview, bid.Status)
	check.Equal(t, "", bid.SelectedSubmissionId)

	submissions, err := sub.GetSubmissionsForBid(context.Background(), bidRef)
	check.Nil(t, err)
	for _, submission := range submissions {
		check.False(t, submission.IsSelected)
	}
}

func TestIllegalTransitions(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, buyerRef := seedAssignedBid(t, s, m)

	cases := []struct {
		name string
		op   func() error
	}{
		{"a1 approve before submission", func() error {
			_, err := s.A1Approve(context.Background(), bidRef, "c", "a")
			return err
		}},
		{"a2 approve before a1", func() error {
			_, err := s.A2Approve(context.Background(), bidRef, "c", "a")
			return err
		}},
		{"a2 reject before a1", func() error {
			_, err := s.A2Reject(context.Background(), bidRef, "c", "a")
			return err
		}},
		{"reopen before approval", func() error {
			_, err := s.A2Reopen(context.Background(), bidRef, "c", "a")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.op()
			check.True(t, errors.Is(err, ErrPreconditionFailed))

			var pre *PreconditionError
			check.True(t, errors.As(err, &pre))
			check.Equal(t, common.AwaitingBuyer, pre.Actual)
		})
	}

	// Once the bid is pending approval the buyer can no longer respond.
	_, err := s.BuyerRespond(context.Background(), bidRef, buyerRef, "First")
	check.Nil(t, err)
	_, err = s.BuyerRespond(context.Background(), bidRef, buyerRef, "Second")
	check.True(t, errors.Is(err, ErrPreconditionFailed))
}

func TestFailedOperationsLeaveNoHistory(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, _ := seedAssignedBid(t, s, m)

	before, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(50, 0))
	check.Nil(t, err)

	_, _ = s.A1Approve(context.Background(), bidRef, "c", "a")
	_, _ = s.A2Approve(context.Background(), bidRef, "", "a")
	_, _ = s.BuyerRespond(context.Background(), bidRef, "V999", "c")

	after, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(50, 0))
	check.Nil(t, err)
	check.Equal(t, len(before), len(after))
}

func TestHistoryChainIsContiguous(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())
	bidRef, buyerRef := seedAssignedBid(t, s, m)

	_, err := s.BuyerRespond(context.Background(), bidRef, buyerRef, "Ready")
	check.Nil(t, err)
	_, err = s.A1Approve(context.Background(), bidRef, "Fine", "Sam Reyes")
	check.Nil(t, err)
	_, err = s.A2Reject(context.Background(), bidRef, "Over budget", "Dana Cole")
	check.Nil(t, err)
	_, err = s.A1Approve(context.Background(), bidRef, "Still fine", "Sam Reyes")
	check.Nil(t, err)
	_, err = s.A2Approve(context.Background(), bidRef, "Sign-off", "Dana Cole")
	check.Nil(t, err)

	history, err := m.GetHistoryForBid(context.Background(), bidRef, entity.NewPaginationInput(50, 0))
	check.Nil(t, err)
	check.Equal(t, common.Approved, history[0].NewStatus)

	// Newest first: every entry's previous status is the next entry's new
	// status, all the way back to the creation entry.
	for i := 0; i+1 < len(history); i++ {
		check.Equal(t, history[i+1].NewStatus, history[i].PreviousStatus)
	}
	check.Equal(t, "", history[len(history)-1].PreviousStatus)
}

func TestGetBids_StatusFilter(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())

	_, err := s.CreateBid(context.Background(), &entity.CreateBidInput{ContractName: "One", VendorName: "Jordan Vale"})
	check.Nil(t, err)
	bidRef, buyerRef := seedAssignedBid(t, s, m)
	_, err = s.BuyerRespond(context.Background(), bidRef, buyerRef, "Ready")
	check.Nil(t, err)

	pending, err := s.GetBids(context.Background(), common.PendingA1, entity.NewPaginationInput(50, 0))
	check.Nil(t, err)
	check.Equal(t, 1, len(pending))
	check.Equal(t, bidRef, pending[0].Ref)

	all, err := s.GetBids(context.Background(), "", entity.NewPaginationInput(50, 0))
	check.Nil(t, err)
	check.Equal(t, 2, len(all))

	_, err = s.GetBids(context.Background(), "Nonsense", entity.NewPaginationInput(50, 0))
	check.True(t, errors.Is(err, ErrValidationFailed))
}

func TestItems(t *testing.T) {
	m := newMemRepo()
	s := NewLifecycleService(m.repositories())

	created, err := s.CreateBid(context.Background(), &entity.CreateBidInput{ContractName: "Spares", VendorName: "Jordan Vale"})
	check.Nil(t, err)

	item, err := s.AddItem(context.Background(), created.Ref, &entity.CreateItemInput{
		ItemName: "Bearing",
		Quantity: decimal.NewFromInt(40),
		Unit:     "pcs",
	})
	check.Nil(t, err)
	check.Equal(t, created.Ref, item.BidRef)
	check.Equal(t, "40", item.Quantity)

	_, err = s.AddItem(context.Background(), "BID999", &entity.CreateItemInput{ItemName: "Bolt"})
	check.True(t, errors.Is(err, ErrBidNotFound))

	check.Nil(t, s.DeleteItem(context.Background(), item.Ref))
	check.True(t, errors.Is(s.DeleteItem(context.Background(), item.Ref), ErrItemNotFound))
}
