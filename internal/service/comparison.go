package service

import (
	"context"
	"errors"
	"sort"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo"
	"bid-approval-api/internal/repo/repo_errors"

	"github.com/shopspring/decimal"
)

type ComparisonService struct {
	bidRepo        repo.Bid
	itemRepo       repo.Item
	submissionRepo repo.Submission
	partyRepo      repo.Party
}

func NewComparisonService(repos *repo.Repositories) *ComparisonService {
	return &ComparisonService{
		bidRepo:        repos.Bid,
		itemRepo:       repos.Item,
		submissionRepo: repos.Submission,
		partyRepo:      repos.Party,
	}
}

// TotalsForBid computes each bidder's total quoted amount over the bid's
// items (rate x quantity; an unquoted item contributes 0 and marks the
// submission incomplete) and returns them lowest total first. The sort is
// stable over bidder refs so equal totals keep a deterministic order.
func (s *ComparisonService) TotalsForBid(ctx context.Context, bidRef string) ([]entity.BidderTotal, error) {
	if _, err := s.bidRepo.GetBidByRef(ctx, bidRef); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	items, err := s.itemRepo.GetItemsForBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	rates, err := s.submissionRepo.GetRatesForBid(ctx, bidRef)
	if err != nil {
		return nil, err
	}

	quoted := make(map[string]map[string]entity.BidderItemRate)
	bidderRefs := make([]string, 0)
	for _, rate := range rates {
		byItem, ok := quoted[rate.BidderRef]
		if !ok {
			byItem = make(map[string]entity.BidderItemRate)
			quoted[rate.BidderRef] = byItem
			bidderRefs = append(bidderRefs, rate.BidderRef)
		}
		byItem[rate.ItemRef] = rate
	}
	sort.Strings(bidderRefs)

	totals := make([]entity.BidderTotal, 0, len(bidderRefs))
	for _, bidderRef := range bidderRefs {
		bidder, err := s.partyRepo.GetBidderByRef(ctx, bidderRef)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				continue
			}

			return nil, err
		}

		byItem := quoted[bidderRef]
		total := decimal.Zero
		quotes := make([]entity.ItemQuote, 0, len(items))
		complete := true
		submissionDate := ""

		for _, item := range items {
			rate, ok := byItem[item.Ref]
			if !ok {
				complete = false
				continue
			}
			if submissionDate == "" {
				submissionDate = rate.SubmissionDate
			}
			lineTotal := rate.UnitRate.Mul(item.Quantity)
			total = total.Add(lineTotal)
			quotes = append(quotes, entity.ItemQuote{
				ItemRef:         item.Ref,
				ItemName:        item.ItemName,
				ItemDescription: item.ItemDescription,
				Quantity:        item.Quantity,
				Unit:            item.Unit,
				UnitRate:        rate.UnitRate,
				Total:           lineTotal,
			})
		}

		totals = append(totals, entity.BidderTotal{
			BidderRef:      bidderRef,
			BidderName:     bidder.Name,
			ContactEmail:   bidder.ContactEmail,
			ContactPhone:   bidder.ContactPhone,
			TotalBidAmount: total,
			Items:          quotes,
			SubmissionDate: submissionDate,
			Complete:       complete,
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalBidAmount.Cmp(totals[j].TotalBidAmount) < 0
	})

	return totals, nil
}
