package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo/repo_errors"
	"bid-approval-api/pkg/postgres"
)

type ItemRepo struct {
	*postgres.Postgres
}

func NewItemRepo(pgdb *postgres.Postgres) *ItemRepo {
	return &ItemRepo{pgdb}
}

func (r *ItemRepo) AddItem(ctx context.Context, bidRef string, input *entity.CreateItemInput) (string, error) {
	addItemSql, args, _ := r.SqlBuilder.
		Insert("bid_item").
		Columns("bid_ref", "item_name", "item_description", "quantity", "unit").
		Values(bidRef, input.ItemName, input.ItemDescription, input.Quantity, input.Unit).
		Suffix("RETURNING ref").
		ToSql()

	var ref string
	if err := r.Database.QueryRow(addItemSql, args...).Scan(&ref); err != nil {
		return "", err
	}

	return ref, nil
}

func (r *ItemRepo) GetItemByRef(ctx context.Context, ref string) (*entity.BidItem, error) {
	getItemSql, args, _ := r.SqlBuilder.
		Select("ref, bid_ref, item_name, item_description, quantity, unit").
		From("bid_item").
		Where("ref = ?", ref).
		ToSql()

	var item entity.BidItem
	err := r.Database.QueryRow(getItemSql, args...).
		Scan(&item.Ref, &item.BidRef, &item.ItemName, &item.ItemDescription, &item.Quantity, &item.Unit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &item, nil
}

func (r *ItemRepo) GetItemsForBid(ctx context.Context, bidRef string) ([]entity.BidItem, error) {
	getItemsSql, args, _ := r.SqlBuilder.
		Select("ref, bid_ref, item_name, item_description, quantity, unit").
		From("bid_item").
		Where("bid_ref = ?", bidRef).
		OrderBy("ref ASC").
		ToSql()

	rows, err := r.Database.Query(getItemsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.BidItem, 0)
	for rows.Next() {
		var item entity.BidItem
		if err := rows.Scan(&item.Ref, &item.BidRef, &item.ItemName, &item.ItemDescription,
			&item.Quantity, &item.Unit); err != nil {
			return items, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return items, err
	}

	return items, nil
}

func (r *ItemRepo) DeleteItem(ctx context.Context, ref string) error {
	deleteItemSql, args, _ := r.SqlBuilder.
		Delete("bid_item").
		Where("ref = ?", ref).
		ToSql()

	result, err := r.Database.Exec(deleteItemSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}
