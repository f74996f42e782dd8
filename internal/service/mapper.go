package service

import (
	"bid-approval-api/internal/entity"
)

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Ref:                  b.Ref,
		ContractName:         b.ContractName,
		ContractDescription:  b.ContractDescription,
		ContractValue:        b.ContractValue.String(),
		VendorName:           b.VendorName,
		Status:               b.Status,
		SelectedBuyerRef:     b.SelectedBuyerRef,
		SelectedSubmissionId: b.SelectedSubmissionId,
		VendorJustification:  b.VendorJustification,
		BuyerComment:         b.BuyerComment,
		SubmissionDate:       b.SubmissionDate,
		A1:                   b.A1,
		A2:                   b.A2,
		CreatedAt:            b.CreatedAt,
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid))
	}

	return s
}

func mapItem(i *entity.BidItem) *entity.ItemOutputModel {
	return &entity.ItemOutputModel{
		Ref:             i.Ref,
		BidRef:          i.BidRef,
		ItemName:        i.ItemName,
		ItemDescription: i.ItemDescription,
		Quantity:        i.Quantity.String(),
		Unit:            i.Unit,
	}
}

func mapItems(items []entity.BidItem) []entity.ItemOutputModel {
	s := make([]entity.ItemOutputModel, 0)
	for _, item := range items {
		s = append(s, *mapItem(&item))
	}

	return s
}

func mapSubmission(sub *entity.BuyerSubmission) *entity.SubmissionOutputModel {
	return &entity.SubmissionOutputModel{
		Ref:            sub.Ref,
		BidRef:         sub.BidRef,
		BuyerRef:       sub.BuyerRef,
		BuyerName:      sub.BuyerName,
		Amount:         sub.Amount.String(),
		Description:    sub.Description,
		SubmissionDate: sub.SubmissionDate,
		IsSelected:     sub.IsSelected,
	}
}

func mapSubmissions(subs []entity.BuyerSubmission) []entity.SubmissionOutputModel {
	s := make([]entity.SubmissionOutputModel, 0)
	for _, sub := range subs {
		s = append(s, *mapSubmission(&sub))
	}

	return s
}

func mapHistoryRecord(r *entity.HistoryRecord) *entity.HistoryOutputModel {
	return &entity.HistoryOutputModel{
		Id:             r.Id,
		BidRef:         r.BidRef,
		ActionDate:     r.ActionDate,
		ActionBy:       r.ActionBy,
		Role:           r.Role,
		Action:         r.Action,
		Comment:        r.Comment,
		PreviousStatus: r.PreviousStatus,
		NewStatus:      r.NewStatus,
	}
}

func mapHistoryRecords(records []entity.HistoryRecord) []entity.HistoryOutputModel {
	s := make([]entity.HistoryOutputModel, 0)
	for _, record := range records {
		s = append(s, *mapHistoryRecord(&record))
	}

	return s
}

func mapBuyer(b *entity.Buyer) *entity.PartyOutputModel {
	return &entity.PartyOutputModel{
		Ref:          b.Ref,
		Name:         b.Name,
		ContactEmail: b.ContactEmail,
		ContactPhone: b.ContactPhone,
	}
}

func mapBidder(b *entity.Bidder) *entity.PartyOutputModel {
	return &entity.PartyOutputModel{
		Ref:          b.Ref,
		Name:         b.Name,
		ContactEmail: b.ContactEmail,
		ContactPhone: b.ContactPhone,
	}
}
