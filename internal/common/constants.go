package common

// Bid lifecycle statuses.
const (
	Draft         = "Draft"
	AwaitingBuyer = "Awaiting Buyer"
	UnderReview   = "Under Review"
	PendingA1     = "Pending A1"
	PendingA2     = "Pending A2"
	Approved      = "Approved"
)

// Approval block states (A1/A2).
const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)

// Actor roles as recorded in history.
const (
	RoleVendor = "Vendor"
	RoleBuyer  = "Buyer"
	RoleBidder = "Bidder"
	RoleA1     = "A1 Approver"
	RoleA2     = "A2 Approver"
)

// SubmissionAssigned marks the sentinel selected_submission_id used when the
// bid has a single assigned buyer instead of a competitive submission set.
const SubmissionAssigned = "ASSIGNED"

// History action labels.
const (
	ActionCreatedBid        = "Created Bid"
	ActionAssignedBuyer     = "Assigned Buyer"
	ActionSubmittedForA1    = "Submitted for A1 Approval"
	ActionSelectedForA1     = "Selected Submission & Submitted for A1 Approval"
	ActionResubmittedForA1  = "Resubmitted for A1 Approval"
	ActionApproved          = "Approved"
	ActionRejected          = "Rejected"
	ActionApprovedFinal     = "Approved - Final"
	ActionRejectedToA1      = "Rejected - Sent back to A1"
	ActionReopened          = "Reopened Bid for Modifications"
	ActionSubmittedBid      = "Submitted Bid"
	ActionSubmittedItemBids = "Submitted Item Bids"
)

func ValidStatus(s string) bool {
	switch s {
	case Draft, AwaitingBuyer, UnderReview, PendingA1, PendingA2, Approved:
		return true
	default:
		return false
	}
}
