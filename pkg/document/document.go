// Package document renders the downloadable approval summary for a bid.
// The output is a plain-text byte stream; callers treat it as opaque.
package document

import (
	"bytes"
	"fmt"

	"bid-approval-api/internal/entity"
)

type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Render(bid *entity.Bid, items []entity.BidItem, submissions []entity.BuyerSubmission, history []entity.HistoryRecord) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "BID APPROVAL SUMMARY\n")
	fmt.Fprintf(&buf, "====================\n\n")
	fmt.Fprintf(&buf, "Bid:            %s\n", bid.Ref)
	fmt.Fprintf(&buf, "Contract:       %s\n", bid.ContractName)
	if bid.ContractDescription != "" {
		fmt.Fprintf(&buf, "Description:    %s\n", bid.ContractDescription)
	}
	fmt.Fprintf(&buf, "Value:          %s\n", bid.ContractValue.String())
	fmt.Fprintf(&buf, "Vendor:         %s\n", bid.VendorName)
	fmt.Fprintf(&buf, "Status:         %s\n", bid.Status)
	if bid.SelectedBuyerRef != "" {
		fmt.Fprintf(&buf, "Assigned buyer: %s\n", bid.SelectedBuyerRef)
	}
	if bid.VendorJustification != "" {
		fmt.Fprintf(&buf, "Justification:  %s\n", bid.VendorJustification)
	}

	fmt.Fprintf(&buf, "\nApprovals\n---------\n")
	fmt.Fprintf(&buf, "A1: %s", bid.A1.Status)
	if bid.A1.Comment != "" {
		fmt.Fprintf(&buf, " (%s)", bid.A1.Comment)
	}
	if bid.A1.Date != "" {
		fmt.Fprintf(&buf, " on %s", bid.A1.Date)
	}
	fmt.Fprintf(&buf, "\nA2: %s", bid.A2.Status)
	if bid.A2.Comment != "" {
		fmt.Fprintf(&buf, " (%s)", bid.A2.Comment)
	}
	if bid.A2.Date != "" {
		fmt.Fprintf(&buf, " on %s", bid.A2.Date)
	}
	fmt.Fprintf(&buf, "\n")

	if len(items) > 0 {
		fmt.Fprintf(&buf, "\nItems\n-----\n")
		for _, item := range items {
			fmt.Fprintf(&buf, "%s  %s  %s %s\n", item.Ref, item.ItemName, item.Quantity.String(), item.Unit)
		}
	}

	if len(submissions) > 0 {
		fmt.Fprintf(&buf, "\nSubmissions\n-----------\n")
		for _, submission := range submissions {
			marker := " "
			if submission.IsSelected {
				marker = "*"
			}
			fmt.Fprintf(&buf, "%s %s  %s (%s)  amount %s\n", marker, submission.Ref,
				submission.BuyerName, submission.BuyerRef, submission.Amount.String())
		}
	}

	if len(history) > 0 {
		fmt.Fprintf(&buf, "\nHistory (newest first)\n----------------------\n")
		for _, record := range history {
			fmt.Fprintf(&buf, "%s  [%s] %s: %s", record.ActionDate, record.Role, record.ActionBy, record.Action)
			if record.PreviousStatus != "" || record.NewStatus != "" {
				fmt.Fprintf(&buf, " (%s -> %s)", record.PreviousStatus, record.NewStatus)
			}
			if record.Comment != "" {
				fmt.Fprintf(&buf, ": %s", record.Comment)
			}
			fmt.Fprintf(&buf, "\n")
		}
	}

	return buf.Bytes(), nil
}
