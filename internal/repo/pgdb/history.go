package pgdb

import (
	"context"
	"time"

	"bid-approval-api/internal/entity"
	"bid-approval-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
)

type HistoryRepo struct {
	*postgres.Postgres
}

func NewHistoryRepo(pgdb *postgres.Postgres) *HistoryRepo {
	return &HistoryRepo{pgdb}
}

// insertHistory appends one ledger row. Runs on whatever runner the caller is
// inside: a transaction during a lifecycle mutation, the plain connection
// otherwise. prev/next are nil for actions that don't move the state machine.
func insertHistory(run squirrel.BaseRunner, b squirrel.StatementBuilderType, bidRef string, hist *entity.HistoryInput, prev, next *string) error {
	insertSql, args, _ := b.
		Insert("history").
		Columns("bid_ref", "action_by", "role", "action", "comment", "previous_status", "new_status").
		Values(bidRef, hist.ActionBy, hist.Role, hist.Action, hist.Comment, prev, next).
		ToSql()

	if _, err := run.Exec(insertSql, args...); err != nil {
		return err
	}

	return nil
}

func (r *HistoryRepo) GetHistoryForBid(ctx context.Context, bidRef string, pg *entity.PaginationInput) ([]entity.HistoryRecord, error) {
	getHistorySql, args, _ := r.SqlBuilder.
		Select("id, bid_ref, action_date, action_by, role, action, comment, coalesce(previous_status, ''), coalesce(new_status, '')").
		From("history").
		Where("bid_ref = ?", bidRef).
		OrderBy("action_date DESC", "id DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.Query(getHistorySql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]entity.HistoryRecord, 0)
	for rows.Next() {
		var record entity.HistoryRecord
		var actionDate time.Time
		if err := rows.Scan(&record.Id, &record.BidRef, &actionDate, &record.ActionBy,
			&record.Role, &record.Action, &record.Comment, &record.PreviousStatus, &record.NewStatus); err != nil {
			return records, err
		}
		record.ActionDate = actionDate.Format(time.RFC3339)
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return records, err
	}

	return records, nil
}
