package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo/repo_errors"
	"bid-approval-api/pkg/postgres"

	"github.com/google/uuid"
)

type SubmissionRepo struct {
	*postgres.Postgres
}

func NewSubmissionRepo(pgdb *postgres.Postgres) *SubmissionRepo {
	return &SubmissionRepo{pgdb}
}

func (r *SubmissionRepo) CreateSubmission(ctx context.Context, input *entity.CreateSubmissionInput, hist *entity.HistoryInput) (string, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("buyer_submission").
		Columns("id", "bid_ref", "buyer_ref", "buyer_name", "amount", "description", "is_selected").
		Values(uuid.New(), input.BidRef, input.BuyerRef, input.BuyerName, input.Amount, input.Description, false).
		Suffix("RETURNING ref").
		ToSql()

	var ref string
	if err = tx.QueryRow(createSql, args...).Scan(&ref); err != nil {
		if e := tx.Rollback(); e != nil {
			return "", e
		}

		return "", err
	}

	if err = insertHistory(tx, r.SqlBuilder, input.BidRef, hist, nil, nil); err != nil {
		if e := tx.Rollback(); e != nil {
			return "", e
		}

		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}

	return ref, nil
}

const submissionColumns = "id, ref, bid_ref, buyer_ref, buyer_name, amount, description, submission_date, is_selected"

func scanSubmission(row rowScanner) (*entity.BuyerSubmission, error) {
	var submission entity.BuyerSubmission
	var submissionDate time.Time

	err := row.Scan(&submission.Id, &submission.Ref, &submission.BidRef, &submission.BuyerRef,
		&submission.BuyerName, &submission.Amount, &submission.Description, &submissionDate, &submission.IsSelected)
	if err != nil {
		return nil, err
	}
	submission.SubmissionDate = submissionDate.Format(time.RFC3339)

	return &submission, nil
}

func (r *SubmissionRepo) GetSubmissionByRef(ctx context.Context, ref string) (*entity.BuyerSubmission, error) {
	getSql, args, _ := r.SqlBuilder.
		Select(submissionColumns).
		From("buyer_submission").
		Where("ref = ?", ref).
		ToSql()

	submission, err := scanSubmission(r.Database.QueryRow(getSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return submission, nil
}

func (r *SubmissionRepo) GetSubmissionsForBid(ctx context.Context, bidRef string) ([]entity.BuyerSubmission, error) {
	getSql, args, _ := r.SqlBuilder.
		Select(submissionColumns).
		From("buyer_submission").
		Where("bid_ref = ?", bidRef).
		OrderBy("submission_date ASC", "ref ASC").
		ToSql()

	rows, err := r.Database.Query(getSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]entity.BuyerSubmission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return submissions, err
		}
		submissions = append(submissions, *submission)
	}
	if err = rows.Err(); err != nil {
		return submissions, err
	}

	return submissions, nil
}

func (r *SubmissionRepo) ReplaceItemRates(ctx context.Context, input *entity.SubmitRatesInput, hist *entity.HistoryInput) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	deleteSql, args, _ := r.SqlBuilder.
		Delete("bidder_item_rate").
		Where("bid_ref = ?", input.BidRef).
		Where("bidder_ref = ?", input.BidderRef).
		ToSql()

	if _, err = tx.Exec(deleteSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	for _, rate := range input.Rates {
		insertSql, args, _ := r.SqlBuilder.
			Insert("bidder_item_rate").
			Columns("id", "bid_ref", "bidder_ref", "item_ref", "unit_rate").
			Values(uuid.New(), input.BidRef, input.BidderRef, rate.ItemRef, rate.UnitRate).
			ToSql()

		if _, err = tx.Exec(insertSql, args...); err != nil {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return err
		}
	}

	if err = insertHistory(tx, r.SqlBuilder, input.BidRef, hist, nil, nil); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *SubmissionRepo) GetRatesForBid(ctx context.Context, bidRef string) ([]entity.BidderItemRate, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("id, bid_ref, bidder_ref, item_ref, unit_rate, submission_date").
		From("bidder_item_rate").
		Where("bid_ref = ?", bidRef).
		OrderBy("bidder_ref ASC", "item_ref ASC").
		ToSql()

	rows, err := r.Database.Query(getSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make([]entity.BidderItemRate, 0)
	for rows.Next() {
		var rate entity.BidderItemRate
		var submissionDate time.Time
		if err := rows.Scan(&rate.Id, &rate.BidRef, &rate.BidderRef, &rate.ItemRef,
			&rate.UnitRate, &submissionDate); err != nil {
			return rates, err
		}
		rate.SubmissionDate = submissionDate.Format(time.RFC3339)
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return rates, err
	}

	return rates, nil
}
