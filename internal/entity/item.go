package entity

import "github.com/shopspring/decimal"

// db model
type BidItem struct {
	Ref             string          `json:"ref" db:"ref"`
	BidRef          string          `json:"bidRef" db:"bid_ref"`
	ItemName        string          `json:"itemName" db:"item_name"`
	ItemDescription string          `json:"itemDescription" db:"item_description"`
	Quantity        decimal.Decimal `json:"quantity" db:"quantity"`
	Unit            string          `json:"unit" db:"unit"`
}

// service + repo input model
type CreateItemInput struct {
	ItemName        string
	ItemDescription string
	Quantity        decimal.Decimal
	Unit            string
}

// controller model
type ItemOutputModel struct {
	Ref             string `json:"itemId"`
	BidRef          string `json:"bidId"`
	ItemName        string `json:"itemName"`
	ItemDescription string `json:"itemDescription"`
	Quantity        string `json:"quantity"`
	Unit            string `json:"unit"`
}
