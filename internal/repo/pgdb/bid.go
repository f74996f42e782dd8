package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bid-approval-api/internal/common"
	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo/repo_errors"
	"bid-approval-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

const bidColumns = "id, ref, contract_name, contract_description, contract_value, vendor_name, status, " +
	"selected_buyer_ref, selected_submission_ref, vendor_justification, buyer_comment, submission_date, " +
	"a1_status, a1_comment, a1_date, a2_status, a2_comment, a2_date, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBid(row rowScanner) (*entity.Bid, error) {
	var bid entity.Bid
	var submissionDate, a1Date, a2Date sql.NullTime
	var createdAt time.Time

	err := row.Scan(&bid.Id, &bid.Ref, &bid.ContractName, &bid.ContractDescription, &bid.ContractValue,
		&bid.VendorName, &bid.Status, &bid.SelectedBuyerRef, &bid.SelectedSubmissionId,
		&bid.VendorJustification, &bid.BuyerComment, &submissionDate,
		&bid.A1.Status, &bid.A1.Comment, &a1Date,
		&bid.A2.Status, &bid.A2.Comment, &a2Date, &createdAt)
	if err != nil {
		return nil, err
	}

	if submissionDate.Valid {
		bid.SubmissionDate = submissionDate.Time.Format(time.RFC3339)
	}
	if a1Date.Valid {
		bid.A1.Date = a1Date.Time.Format(time.RFC3339)
	}
	if a2Date.Valid {
		bid.A2.Date = a2Date.Time.Format(time.RFC3339)
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (string, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("id", "contract_name", "contract_description", "contract_value", "vendor_name", "status", "selected_buyer_ref").
		Values(uuid.New(), input.ContractName, input.ContractDescription, input.ContractValue,
			input.VendorName, input.Status, input.AssignedBuyerRef).
		Suffix("RETURNING ref").
		ToSql()

	var bidRef string
	if err = tx.QueryRow(createBidSql, args...).Scan(&bidRef); err != nil {
		if e := tx.Rollback(); e != nil {
			return "", e
		}

		return "", err
	}

	for _, item := range input.Items {
		createItemSql, args, _ := r.SqlBuilder.
			Insert("bid_item").
			Columns("bid_ref", "item_name", "item_description", "quantity", "unit").
			Values(bidRef, item.ItemName, item.ItemDescription, item.Quantity, item.Unit).
			ToSql()

		if _, err = tx.Exec(createItemSql, args...); err != nil {
			if e := tx.Rollback(); e != nil {
				return "", e
			}

			return "", err
		}
	}

	created := &entity.HistoryInput{
		ActionBy: input.VendorName,
		Role:     common.RoleVendor,
		Action:   common.ActionCreatedBid,
		Comment:  fmt.Sprintf("Created new bid: %s", input.ContractName),
	}
	if err = insertHistory(tx, r.SqlBuilder, bidRef, created, nil, &input.Status); err != nil {
		if e := tx.Rollback(); e != nil {
			return "", e
		}

		return "", err
	}

	if input.AssignedBuyerRef != "" {
		buyerLabel := input.AssignedBuyerName
		if buyerLabel == "" {
			buyerLabel = input.AssignedBuyerRef
		}
		assigned := &entity.HistoryInput{
			ActionBy: input.VendorName,
			Role:     common.RoleVendor,
			Action:   common.ActionAssignedBuyer,
			Comment:  fmt.Sprintf("Assigned buyer %s (%s)", buyerLabel, input.AssignedBuyerRef),
		}
		newStatus := common.AwaitingBuyer
		if err = insertHistory(tx, r.SqlBuilder, bidRef, assigned, &input.Status, &newStatus); err != nil {
			if e := tx.Rollback(); e != nil {
				return "", e
			}

			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}

	return bidRef, nil
}

func (r *BidRepo) GetBidByRef(ctx context.Context, ref string) (*entity.Bid, error) {
	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("ref = ?", ref).
		ToSql()

	bid, err := scanBid(r.Database.QueryRow(getBidSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return bid, nil
}

func (r *BidRepo) GetBids(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	query := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		OrderBy("ref ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit))

	if status != "" {
		query = query.Where("status = ?", status)
	}

	getBidsSql, args, _ := query.ToSql()

	rows, err := r.Database.Query(getBidsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, err
		}
		bids = append(bids, *bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func (r *BidRepo) TransitionBid(ctx context.Context, ref string, t *entity.BidTransition) (string, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}

	lockSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("ref = ?", ref).
		Suffix("FOR UPDATE").
		ToSql()

	bid, err := scanBid(tx.QueryRow(lockSql, args...))
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return "", e
		}

		if errors.Is(err, sql.ErrNoRows) {
			return "", repo_errors.ErrNotFound
		}

		return "", err
	}

	allowed := false
	for _, expected := range t.Expected {
		if bid.Status == expected {
			allowed = true
			break
		}
	}
	if !allowed {
		if e := tx.Rollback(); e != nil {
			return "", e
		}

		return bid.Status, repo_errors.ErrStatusConflict
	}

	update := r.SqlBuilder.
		Update("bid").
		Set("status", t.NewStatus).
		Where("ref = ?", ref)

	if t.SetSelectedBuyer != nil {
		update = update.Set("selected_buyer_ref", *t.SetSelectedBuyer)
	}
	if t.SetSelectedSubmission != nil {
		update = update.Set("selected_submission_ref", *t.SetSelectedSubmission)
	}
	if t.SetJustification != nil {
		update = update.Set("vendor_justification", *t.SetJustification)
	}
	if t.SetBuyerComment != nil {
		update = update.Set("buyer_comment", *t.SetBuyerComment)
	}
	if t.StampSubmissionDate {
		update = update.Set("submission_date", squirrel.Expr("now()"))
	}
	if t.ClearSubmissionDate {
		update = update.Set("submission_date", nil)
	}
	if t.ResetApprovals {
		update = update.
			Set("a1_status", common.ApprovalPending).
			Set("a1_comment", "").
			Set("a1_date", nil).
			Set("a2_status", common.ApprovalPending).
			Set("a2_comment", "").
			Set("a2_date", nil)
	}
	if t.SetA1 != nil {
		update = update.
			Set("a1_status", t.SetA1.Status).
			Set("a1_comment", t.SetA1.Comment).
			Set("a1_date", squirrel.Expr("now()"))
	}
	if t.SetA2 != nil {
		update = update.
			Set("a2_status", t.SetA2.Status).
			Set("a2_comment", t.SetA2.Comment).
			Set("a2_date", squirrel.Expr("now()"))
	}
	if t.ResetA1Status {
		update = update.Set("a1_status", common.ApprovalPending)
	}

	updateSql, args, _ := update.ToSql()
	if _, err = tx.Exec(updateSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return "", e
		}

		return "", err
	}

	if t.SelectSubmissionRef != nil || t.ClearSelectedFlags {
		clearSql, args, _ := r.SqlBuilder.
			Update("buyer_submission").
			Set("is_selected", false).
			Where("bid_ref = ?", ref).
			ToSql()

		if _, err = tx.Exec(clearSql, args...); err != nil {
			if e := tx.Rollback(); e != nil {
				return "", e
			}

			return "", err
		}
	}

	if t.SelectSubmissionRef != nil {
		selectSql, args, _ := r.SqlBuilder.
			Update("buyer_submission").
			Set("is_selected", true).
			Where("bid_ref = ?", ref).
			Where("ref = ?", *t.SelectSubmissionRef).
			ToSql()

		if _, err = tx.Exec(selectSql, args...); err != nil {
			if e := tx.Rollback(); e != nil {
				return "", e
			}

			return "", err
		}
	}

	if err = insertHistory(tx, r.SqlBuilder, ref, &t.History, &bid.Status, &t.NewStatus); err != nil {
		if e := tx.Rollback(); e != nil {
			return "", e
		}

		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}

	return t.NewStatus, nil
}
