package service

import (
	"context"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo"
)

type PartyService struct {
	partyRepo repo.Party
}

func NewPartyService(repos *repo.Repositories) *PartyService {
	return &PartyService{partyRepo: repos.Party}
}

func (s *PartyService) CreateBuyer(ctx context.Context, input *entity.CreatePartyInput) (*entity.PartyOutputModel, error) {
	if blank(input.Name) {
		return nil, &ValidationError{Field: "name", Reason: "this field is required"}
	}

	ref, err := s.partyRepo.CreateBuyer(ctx, input)
	if err != nil {
		return nil, err
	}

	buyer, err := s.partyRepo.GetBuyerByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	return mapBuyer(buyer), nil
}

func (s *PartyService) GetBuyers(ctx context.Context) ([]entity.PartyOutputModel, error) {
	buyers, err := s.partyRepo.GetBuyers(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]entity.PartyOutputModel, 0)
	for _, buyer := range buyers {
		models = append(models, *mapBuyer(&buyer))
	}

	return models, nil
}

func (s *PartyService) CreateBidder(ctx context.Context, input *entity.CreatePartyInput) (*entity.PartyOutputModel, error) {
	if blank(input.Name) {
		return nil, &ValidationError{Field: "name", Reason: "this field is required"}
	}

	ref, err := s.partyRepo.CreateBidder(ctx, input)
	if err != nil {
		return nil, err
	}

	bidder, err := s.partyRepo.GetBidderByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	return mapBidder(bidder), nil
}

func (s *PartyService) GetBidders(ctx context.Context) ([]entity.PartyOutputModel, error) {
	bidders, err := s.partyRepo.GetBidders(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]entity.PartyOutputModel, 0)
	for _, bidder := range bidders {
		models = append(models, *mapBidder(&bidder))
	}

	return models, nil
}
