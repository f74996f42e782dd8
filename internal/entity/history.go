package entity

// db model; append-only, one row per successful transition
type HistoryRecord struct {
	Id             int64  `json:"id" db:"id"`
	BidRef         string `json:"bidRef" db:"bid_ref"`
	ActionDate     string `json:"actionDate" db:"action_date"`
	ActionBy       string `json:"actionBy" db:"action_by"`
	Role           string `json:"role" db:"role"`
	Action         string `json:"action" db:"action"`
	Comment        string `json:"comment" db:"comment"`
	PreviousStatus string `json:"previousStatus" db:"previous_status"`
	NewStatus      string `json:"newStatus" db:"new_status"`
}

// repo input model; previous/new status are stamped by the repo from the
// transition it applies, or left blank for actions outside the state machine
// (submission records).
type HistoryInput struct {
	ActionBy string
	Role     string
	Action   string
	Comment  string
}

// controller model
type HistoryOutputModel struct {
	Id             int64  `json:"historyId"`
	BidRef         string `json:"bidId"`
	ActionDate     string `json:"actionDate"`
	ActionBy       string `json:"actionBy"`
	Role           string `json:"role"`
	Action         string `json:"action"`
	Comment        string `json:"comment"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	NewStatus      string `json:"newStatus,omitempty"`
}
