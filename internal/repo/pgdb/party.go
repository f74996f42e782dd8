package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/repo/repo_errors"
	"bid-approval-api/pkg/postgres"
)

type PartyRepo struct {
	*postgres.Postgres
}

func NewPartyRepo(pgdb *postgres.Postgres) *PartyRepo {
	return &PartyRepo{pgdb}
}

func (r *PartyRepo) CreateBuyer(ctx context.Context, input *entity.CreatePartyInput) (string, error) {
	createSql, args, _ := r.SqlBuilder.
		Insert("buyer").
		Columns("name", "contact_email", "contact_phone", "password").
		Values(input.Name, input.ContactEmail, input.ContactPhone, input.Password).
		Suffix("RETURNING ref").
		ToSql()

	var ref string
	if err := r.Database.QueryRow(createSql, args...).Scan(&ref); err != nil {
		return "", err
	}

	return ref, nil
}

func (r *PartyRepo) GetBuyerByRef(ctx context.Context, ref string) (*entity.Buyer, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("ref, name, contact_email, contact_phone").
		From("buyer").
		Where("ref = ?", ref).
		ToSql()

	var buyer entity.Buyer
	err := r.Database.QueryRow(getSql, args...).
		Scan(&buyer.Ref, &buyer.Name, &buyer.ContactEmail, &buyer.ContactPhone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &buyer, nil
}

func (r *PartyRepo) GetBuyers(ctx context.Context) ([]entity.Buyer, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("ref, name, contact_email, contact_phone").
		From("buyer").
		OrderBy("ref ASC").
		ToSql()

	rows, err := r.Database.Query(getSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buyers := make([]entity.Buyer, 0)
	for rows.Next() {
		var buyer entity.Buyer
		if err := rows.Scan(&buyer.Ref, &buyer.Name, &buyer.ContactEmail, &buyer.ContactPhone); err != nil {
			return buyers, err
		}
		buyers = append(buyers, buyer)
	}
	if err = rows.Err(); err != nil {
		return buyers, err
	}

	return buyers, nil
}

func (r *PartyRepo) CreateBidder(ctx context.Context, input *entity.CreatePartyInput) (string, error) {
	createSql, args, _ := r.SqlBuilder.
		Insert("bidder").
		Columns("name", "contact_email", "contact_phone", "password").
		Values(input.Name, input.ContactEmail, input.ContactPhone, input.Password).
		Suffix("RETURNING ref").
		ToSql()

	var ref string
	if err := r.Database.QueryRow(createSql, args...).Scan(&ref); err != nil {
		return "", err
	}

	return ref, nil
}

func (r *PartyRepo) GetBidderByRef(ctx context.Context, ref string) (*entity.Bidder, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("ref, name, contact_email, contact_phone").
		From("bidder").
		Where("ref = ?", ref).
		ToSql()

	var bidder entity.Bidder
	err := r.Database.QueryRow(getSql, args...).
		Scan(&bidder.Ref, &bidder.Name, &bidder.ContactEmail, &bidder.ContactPhone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &bidder, nil
}

func (r *PartyRepo) GetBidders(ctx context.Context) ([]entity.Bidder, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("ref, name, contact_email, contact_phone").
		From("bidder").
		OrderBy("ref ASC").
		ToSql()

	rows, err := r.Database.Query(getSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bidders := make([]entity.Bidder, 0)
	for rows.Next() {
		var bidder entity.Bidder
		if err := rows.Scan(&bidder.Ref, &bidder.Name, &bidder.ContactEmail, &bidder.ContactPhone); err != nil {
			return bidders, err
		}
		bidders = append(bidders, bidder)
	}
	if err = rows.Err(); err != nil {
		return bidders, err
	}

	return bidders, nil
}

func (r *PartyRepo) GetVendorByRef(ctx context.Context, ref string) (*entity.Vendor, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("ref, name, contact_email").
		From("vendor").
		Where("ref = ?", ref).
		ToSql()

	var vendor entity.Vendor
	err := r.Database.QueryRow(getSql, args...).
		Scan(&vendor.Ref, &vendor.Name, &vendor.ContactEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &vendor, nil
}
