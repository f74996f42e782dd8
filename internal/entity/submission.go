package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model for competitive whole-bid submissions
type BuyerSubmission struct {
	Id             uuid.UUID       `json:"id" db:"id"`
	Ref            string          `json:"ref" db:"ref"`
	BidRef         string          `json:"bidRef" db:"bid_ref"`
	BuyerRef       string          `json:"buyerRef" db:"buyer_ref"`
	BuyerName      string          `json:"buyerName" db:"buyer_name"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Description    string          `json:"description" db:"description"`
	SubmissionDate string          `json:"submissionDate" db:"submission_date"`
	IsSelected     bool            `json:"isSelected" db:"is_selected"`
}

// service + repo input model
type CreateSubmissionInput struct {
	BidRef      string
	BuyerRef    string
	BuyerName   string
	Amount      decimal.Decimal
	Description string
}

// db model for per-item unit rates (multi-bidder variant)
type BidderItemRate struct {
	Id             uuid.UUID       `json:"id" db:"id"`
	BidRef         string          `json:"bidRef" db:"bid_ref"`
	BidderRef      string          `json:"bidderRef" db:"bidder_ref"`
	ItemRef        string          `json:"itemRef" db:"item_ref"`
	UnitRate       decimal.Decimal `json:"unitRate" db:"unit_rate"`
	SubmissionDate string          `json:"submissionDate" db:"submission_date"`
}

// service + repo input model; one row per item the bidder quoted
type SubmitRatesInput struct {
	BidRef    string
	BidderRef string
	Rates     []ItemRateInput
}

type ItemRateInput struct {
	ItemRef  string
	UnitRate decimal.Decimal
}

// controller model
type SubmissionOutputModel struct {
	Ref            string `json:"submissionId"`
	BidRef         string `json:"bidId"`
	BuyerRef       string `json:"buyerId"`
	BuyerName      string `json:"buyerName"`
	Amount         string `json:"amount"`
	Description    string `json:"description"`
	SubmissionDate string `json:"submissionDate"`
	IsSelected     bool   `json:"isSelected"`
}
