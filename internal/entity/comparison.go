package entity

import "github.com/shopspring/decimal"

// ItemQuote is one line of a bidder's total: the item, the quoted unit rate
// and the resulting amount (rate x quantity).
type ItemQuote struct {
	ItemRef         string          `json:"itemId"`
	ItemName        string          `json:"itemName"`
	ItemDescription string          `json:"itemDescription"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	UnitRate        decimal.Decimal `json:"unitRate"`
	Total           decimal.Decimal `json:"total"`
}

// BidderTotal aggregates one bidder's quoted rates for a bid. Complete is
// false when at least one item of the bid has no rate from this bidder;
// missing items contribute 0 to the total.
type BidderTotal struct {
	BidderRef      string          `json:"bidderId"`
	BidderName     string          `json:"bidderName"`
	ContactEmail   string          `json:"contactEmail"`
	ContactPhone   string          `json:"contactPhone"`
	TotalBidAmount decimal.Decimal `json:"totalBidAmount"`
	Items          []ItemQuote     `json:"bidItems"`
	SubmissionDate string          `json:"submissionDate"`
	Complete       bool            `json:"complete"`
}
