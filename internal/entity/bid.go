package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApprovalBlock is one approver's decision on a bid (A1 or A2).
type ApprovalBlock struct {
	Status  string `json:"status" db:"status"`
	Comment string `json:"comment" db:"comment"`
	Date    string `json:"date" db:"date"`
}

// db model
type Bid struct {
	Id                   uuid.UUID       `json:"id" db:"id"`
	Ref                  string          `json:"ref" db:"ref"`
	ContractName         string          `json:"contractName" db:"contract_name"`
	ContractDescription  string          `json:"contractDescription" db:"contract_description"`
	ContractValue        decimal.Decimal `json:"contractValue" db:"contract_value"`
	VendorName           string          `json:"vendorName" db:"vendor_name"`
	Status               string          `json:"status" db:"status"`
	SelectedBuyerRef     string          `json:"selectedBuyerRef" db:"selected_buyer_ref"`
	SelectedSubmissionId string          `json:"selectedSubmissionId" db:"selected_submission_ref"`
	VendorJustification  string          `json:"vendorJustification" db:"vendor_justification"`
	BuyerComment         string          `json:"buyerComment" db:"buyer_comment"`
	SubmissionDate       string          `json:"submissionDate" db:"submission_date"`
	A1                   ApprovalBlock   `json:"a1"`
	A2                   ApprovalBlock   `json:"a2"`
	CreatedAt            string          `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateBidInput struct {
	ContractName        string
	ContractDescription string
	ContractValue       decimal.Decimal
	VendorName          string
	AssignedBuyerRef    string // optional; bid starts as Awaiting Buyer when set
	AssignedBuyerName   string // resolved by the service for the history entry
	Items               []CreateItemInput
	Status              string // should be set: Draft or Awaiting Buyer
}

// BidTransition is the unit of work of one lifecycle operation: the repo
// applies it to the bid row, flips submission selection flags when asked,
// and appends the history entry in a single transaction. Nil pointers leave
// the corresponding column untouched.
type BidTransition struct {
	// The transition is applied only while the current status is one of
	// Expected; otherwise the repo reports a status conflict.
	Expected  []string
	NewStatus string

	SetSelectedBuyer      *string
	SetSelectedSubmission *string
	SetJustification      *string
	SetBuyerComment       *string
	StampSubmissionDate   bool
	ClearSubmissionDate   bool

	SetA1          *ApprovalBlock
	SetA2          *ApprovalBlock
	ResetApprovals bool // both blocks back to Pending with blank comment/date
	ResetA1Status  bool // A2 reject: only a1_status returns to Pending

	// Competitive submissions: mark exactly this one selected for the bid,
	// clearing the flag on all others.
	SelectSubmissionRef *string
	// Reopen: clear the flag on every submission of the bid.
	ClearSelectedFlags bool

	History HistoryInput
}

// controller model
type BidOutputModel struct {
	Ref                  string        `json:"bidId"`
	ContractName         string        `json:"contractName"`
	ContractDescription  string        `json:"contractDescription"`
	ContractValue        string        `json:"contractValue"`
	VendorName           string        `json:"vendorName"`
	Status               string        `json:"status"`
	SelectedBuyerRef     string        `json:"selectedBuyerId,omitempty"`
	SelectedSubmissionId string        `json:"selectedSubmissionId,omitempty"`
	VendorJustification  string        `json:"vendorJustification,omitempty"`
	BuyerComment         string        `json:"buyerComment,omitempty"`
	SubmissionDate       string        `json:"submissionDate,omitempty"`
	A1                   ApprovalBlock `json:"a1"`
	A2                   ApprovalBlock `json:"a2"`
	CreatedAt            string        `json:"createdAt"`
}
