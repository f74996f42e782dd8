package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bid-approval-api/internal/common"
	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo"
	"bid-approval-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// memRepo is an in-memory stand-in for the Postgres repositories. It mirrors
// the transactional behaviour of the real repo closely enough for the service
// layer: TransitionBid checks the expected status set, applies the field
// changes, flips submission selection flags and appends the history entry as
// one step.
type memRepo struct {
	bids        map[string]*entity.Bid
	items       map[string]*entity.BidItem
	submissions map[string]*entity.BuyerSubmission
	rates       []entity.BidderItemRate
	buyers      map[string]*entity.Buyer
	bidders     map[string]*entity.Bidder
	vendors     map[string]*entity.Vendor
	history     []entity.HistoryRecord

	bidSeq        int
	itemSeq       int
	submissionSeq int
	buyerSeq      int
	bidderSeq     int
	historySeq    int64

	clock time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		bids:        make(map[string]*entity.Bid),
		items:       make(map[string]*entity.BidItem),
		submissions: make(map[string]*entity.BuyerSubmission),
		buyers:      make(map[string]*entity.Buyer),
		bidders:     make(map[string]*entity.Bidder),
		vendors:     make(map[string]*entity.Vendor),
		clock:       time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memRepo) repositories() *repo.Repositories {
	return &repo.Repositories{
		Diagnostics: m,
		Bid:         m,
		Item:        m,
		Submission:  m,
		Party:       m,
		History:     m,
	}
}

// now returns a strictly increasing timestamp so history ordering is
// deterministic.
func (m *memRepo) now() string {
	m.clock = m.clock.Add(time.Minute)
	return m.clock.Format(time.RFC3339)
}

func (m *memRepo) appendHistory(bidRef string, hist *entity.HistoryInput, prev, next string) {
	m.historySeq++
	m.history = append(m.history, entity.HistoryRecord{
		Id:             m.historySeq,
		BidRef:         bidRef,
		ActionDate:     m.now(),
		ActionBy:       hist.ActionBy,
		Role:           hist.Role,
		Action:         hist.Action,
		Comment:        hist.Comment,
		PreviousStatus: prev,
		NewStatus:      next,
	})
}

func (m *memRepo) Ping() error { return nil }

func (m *memRepo) CreateBid(_ context.Context, input *entity.CreateBidInput) (string, error) {
	m.bidSeq++
	ref := fmt.Sprintf("BID%03d", m.bidSeq)
	m.bids[ref] = &entity.Bid{
		Id:                  uuid.New(),
		Ref:                 ref,
		ContractName:        input.ContractName,
		ContractDescription: input.ContractDescription,
		ContractValue:       input.ContractValue,
		VendorName:          input.VendorName,
		Status:              input.Status,
		SelectedBuyerRef:    input.AssignedBuyerRef,
		A1:                  entity.ApprovalBlock{Status: common.ApprovalPending},
		A2:                  entity.ApprovalBlock{Status: common.ApprovalPending},
		CreatedAt:           m.now(),
	}

	for _, item := range input.Items {
		if _, err := m.AddItem(context.Background(), ref, &item); err != nil {
			return "", err
		}
	}

	m.appendHistory(ref, &entity.HistoryInput{
		ActionBy: input.VendorName,
		Role:     common.RoleVendor,
		Action:   common.ActionCreatedBid,
		Comment:  fmt.Sprintf("Created new bid: %s", input.ContractName),
	}, "", input.Status)

	if input.AssignedBuyerRef != "" {
		m.appendHistory(ref, &entity.HistoryInput{
			ActionBy: input.VendorName,
			Role:     common.RoleVendor,
			Action:   common.ActionAssignedBuyer,
			Comment:  fmt.Sprintf("Assigned buyer %s (%s)", input.AssignedBuyerName, input.AssignedBuyerRef),
		}, input.Status, common.AwaitingBuyer)
	}

	return ref, nil
}

func (m *memRepo) GetBidByRef(_ context.Context, ref string) (*entity.Bid, error) {
	bid, ok := m.bids[ref]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *bid
	return &copied, nil
}

func (m *memRepo) GetBids(_ context.Context, status string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	refs := make([]string, 0, len(m.bids))
	for ref, bid := range m.bids {
		if status == "" || bid.Status == status {
			refs = append(refs, ref)
		}
	}
	sort.Strings(refs)

	bids := make([]entity.Bid, 0, len(refs))
	for i, ref := range refs {
		if i < pg.Offset || len(bids) >= pg.Limit {
			continue
		}
		bids = append(bids, *m.bids[ref])
	}

	return bids, nil
}

func (m *memRepo) TransitionBid(_ context.Context, ref string, t *entity.BidTransition) (string, error) {
	bid, ok := m.bids[ref]
	if !ok {
		return "", repo_errors.ErrNotFound
	}

	allowed := false
	for _, expected := range t.Expected {
		if bid.Status == expected {
			allowed = true
			break
		}
	}
	if !allowed {
		return bid.Status, repo_errors.ErrStatusConflict
	}

	previous := bid.Status
	bid.Status = t.NewStatus

	if t.SetSelectedBuyer != nil {
		bid.SelectedBuyerRef = *t.SetSelectedBuyer
	}
	if t.SetSelectedSubmission != nil {
		bid.SelectedSubmissionId = *t.SetSelectedSubmission
	}
	if t.SetJustification != nil {
		bid.VendorJustification = *t.SetJustification
	}
	if t.SetBuyerComment != nil {
		bid.BuyerComment = *t.SetBuyerComment
	}
	if t.StampSubmissionDate {
		bid.SubmissionDate = m.now()
	}
	if t.ClearSubmissionDate {
		bid.SubmissionDate = ""
	}
	if t.ResetApprovals {
		bid.A1 = entity.ApprovalBlock{Status: common.ApprovalPending}
		bid.A2 = entity.ApprovalBlock{Status: common.ApprovalPending}
	}
	if t.SetA1 != nil {
		bid.A1 = entity.ApprovalBlock{Status: t.SetA1.Status, Comment: t.SetA1.Comment, Date: m.now()}
	}
	if t.SetA2 != nil {
		bid.A2 = entity.ApprovalBlock{Status: t.SetA2.Status, Comment: t.SetA2.Comment, Date: m.now()}
	}
	if t.ResetA1Status {
		bid.A1.Status = common.ApprovalPending
	}

	if t.SelectSubmissionRef != nil || t.ClearSelectedFlags {
		for _, submission := range m.submissions {
			if submission.BidRef == ref {
				submission.IsSelected = false
			}
		}
	}
	if t.SelectSubmissionRef != nil {
		if submission, ok := m.submissions[*t.SelectSubmissionRef]; ok && submission.BidRef == ref {
			submission.IsSelected = true
		}
	}

	m.appendHistory(ref, &t.History, previous, t.NewStatus)

	return t.NewStatus, nil
}

func (m *memRepo) AddItem(_ context.Context, bidRef string, input *entity.CreateItemInput) (string, error) {
	m.itemSeq++
	ref := fmt.Sprintf("ITEM%03d", m.itemSeq)
	m.items[ref] = &entity.BidItem{
		Ref:             ref,
		BidRef:          bidRef,
		ItemName:        input.ItemName,
		ItemDescription: input.ItemDescription,
		Quantity:        input.Quantity,
		Unit:            input.Unit,
	}

	return ref, nil
}

func (m *memRepo) GetItemByRef(_ context.Context, ref string) (*entity.BidItem, error) {
	item, ok := m.items[ref]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *item
	return &copied, nil
}

func (m *memRepo) GetItemsForBid(_ context.Context, bidRef string) ([]entity.BidItem, error) {
	items := make([]entity.BidItem, 0)
	for _, item := range m.items {
		if item.BidRef == bidRef {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Ref < items[j].Ref })

	return items, nil
}

func (m *memRepo) DeleteItem(_ context.Context, ref string) error {
	if _, ok := m.items[ref]; !ok {
		return repo_errors.ErrNotFound
	}
	delete(m.items, ref)

	return nil
}

func (m *memRepo) CreateSubmission(_ context.Context, input *entity.CreateSubmissionInput, hist *entity.HistoryInput) (string, error) {
	m.submissionSeq++
	ref := fmt.Sprintf("SUB%03d", m.submissionSeq)
	m.submissions[ref] = &entity.BuyerSubmission{
		Id:             uuid.New(),
		Ref:            ref,
		BidRef:         input.BidRef,
		BuyerRef:       input.BuyerRef,
		BuyerName:      input.BuyerName,
		Amount:         input.Amount,
		Description:    input.Description,
		SubmissionDate: m.now(),
	}

	m.appendHistory(input.BidRef, hist, "", "")

	return ref, nil
}

func (m *memRepo) GetSubmissionByRef(_ context.Context, ref string) (*entity.BuyerSubmission, error) {
	submission, ok := m.submissions[ref]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *submission
	return &copied, nil
}

func (m *memRepo) GetSubmissionsForBid(_ context.Context, bidRef string) ([]entity.BuyerSubmission, error) {
	submissions := make([]entity.BuyerSubmission, 0)
	for _, submission := range m.submissions {
		if submission.BidRef == bidRef {
			submissions = append(submissions, *submission)
		}
	}
	sort.Slice(submissions, func(i, j int) bool { return submissions[i].Ref < submissions[j].Ref })

	return submissions, nil
}

func (m *memRepo) ReplaceItemRates(_ context.Context, input *entity.SubmitRatesInput, hist *entity.HistoryInput) error {
	kept := m.rates[:0]
	for _, rate := range m.rates {
		if rate.BidRef != input.BidRef || rate.BidderRef != input.BidderRef {
			kept = append(kept, rate)
		}
	}
	m.rates = kept

	for _, rate := range input.Rates {
		m.rates = append(m.rates, entity.BidderItemRate{
			Id:             uuid.New(),
			BidRef:         input.BidRef,
			BidderRef:      input.BidderRef,
			ItemRef:        rate.ItemRef,
			UnitRate:       rate.UnitRate,
			SubmissionDate: m.now(),
		})
	}

	m.appendHistory(input.BidRef, hist, "", "")

	return nil
}

func (m *memRepo) GetRatesForBid(_ context.Context, bidRef string) ([]entity.BidderItemRate, error) {
	rates := make([]entity.BidderItemRate, 0)
	for _, rate := range m.rates {
		if rate.BidRef == bidRef {
			rates = append(rates, rate)
		}
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].BidderRef != rates[j].BidderRef {
			return rates[i].BidderRef < rates[j].BidderRef
		}
		return rates[i].ItemRef < rates[j].ItemRef
	})

	return rates, nil
}

func (m *memRepo) CreateBuyer(_ context.Context, input *entity.CreatePartyInput) (string, error) {
	m.buyerSeq++
	ref := fmt.Sprintf("V%03d", m.buyerSeq)
	m.buyers[ref] = &entity.Buyer{
		Ref:          ref,
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
	}

	return ref, nil
}

func (m *memRepo) GetBuyerByRef(_ context.Context, ref string) (*entity.Buyer, error) {
	buyer, ok := m.buyers[ref]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *buyer
	return &copied, nil
}

func (m *memRepo) GetBuyers(_ context.Context) ([]entity.Buyer, error) {
	buyers := make([]entity.Buyer, 0, len(m.buyers))
	for _, buyer := range m.buyers {
		buyers = append(buyers, *buyer)
	}
	sort.Slice(buyers, func(i, j int) bool { return buyers[i].Ref < buyers[j].Ref })

	return buyers, nil
}

func (m *memRepo) CreateBidder(_ context.Context, input *entity.CreatePartyInput) (string, error) {
	m.bidderSeq++
	ref := fmt.Sprintf("BIDDER%03d", m.bidderSeq)
	m.bidders[ref] = &entity.Bidder{
		Ref:          ref,
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
	}

	return ref, nil
}

func (m *memRepo) GetBidderByRef(_ context.Context, ref string) (*entity.Bidder, error) {
	bidder, ok := m.bidders[ref]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *bidder
	return &copied, nil
}

func (m *memRepo) GetBidders(_ context.Context) ([]entity.Bidder, error) {
	bidders := make([]entity.Bidder, 0, len(m.bidders))
	for _, bidder := range m.bidders {
		bidders = append(bidders, *bidder)
	}
	sort.Slice(bidders, func(i, j int) bool { return bidders[i].Ref < bidders[j].Ref })

	return bidders, nil
}

func (m *memRepo) GetVendorByRef(_ context.Context, ref string) (*entity.Vendor, error) {
	vendor, ok := m.vendors[ref]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *vendor
	return &copied, nil
}

func (m *memRepo) GetHistoryForBid(_ context.Context, bidRef string, pg *entity.PaginationInput) ([]entity.HistoryRecord, error) {
	records := make([]entity.HistoryRecord, 0)
	for _, record := range m.history {
		if record.BidRef == bidRef {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Id > records[j].Id })

	page := make([]entity.HistoryRecord, 0, pg.Limit)
	for i, record := range records {
		if i < pg.Offset || len(page) >= pg.Limit {
			continue
		}
		page = append(page, record)
	}

	return page, nil
}
