// Package store provides durable keyed storage of product records. It is
// pure persistence: business rules such as quantity merging live in the
// services layer.
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/naresh-2026/warehouseProducts/internal/apperr"
	"github.com/naresh-2026/warehouseProducts/internal/models"
)

// UpdateFields is a partial field change for Update. Nil fields are left
// untouched.
type UpdateFields struct {
	Quantity *int
	IsPublic *bool
}

// ProductStore defines the persistence operations the ledger builds on.
type ProductStore interface {
	Insert(ctx context.Context, p models.Product) (models.Product, error)
	FindOne(ctx context.Context, owner, name, category string) (models.Product, error)
	ListByOwner(ctx context.Context, owner string, limit int) ([]models.Product, error)
	Update(ctx context.Context, id string, fields UpdateFields) error
	Remove(ctx context.Context, id string) error
}

// SQLProductStore implements ProductStore on a sql database.
type SQLProductStore struct {
	db *sql.DB
}

// NewSQLProductStore creates a new SQLProductStore.
func NewSQLProductStore(db *sql.DB) *SQLProductStore {
	return &SQLProductStore{db: db}
}

const productColumns = "id, username, product_name, item_type, quantity, is_public, created_at"

// Insert stores a new record, assigning its ID and creation time when
// absent. A quantity below 1 is rejected before touching the database.
func (s *SQLProductStore) Insert(ctx context.Context, p models.Product) (models.Product, error) {
	if p.Quantity < 1 {
		return models.Product{}, apperr.Validation("quantity must be at least 1")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO products (id, username, product_name, item_type, quantity, is_public, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Product{}, apperr.Storage(err, "could not save product")
	}
	defer stmt.Close()

	if _, err = stmt.ExecContext(ctx, p.ID, p.Username, p.Name, p.Category, p.Quantity, p.IsPublic, p.CreatedAt); err != nil {
		return models.Product{}, apperr.Storage(err, "could not save product")
	}
	return p, nil
}

// FindOne looks up a record by its natural key. When repeated adds have
// produced several records sharing the key, the earliest insert wins.
func (s *SQLProductStore) FindOne(ctx context.Context, owner, name, category string) (models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE username = ? AND product_name = ? AND item_type = ?
		ORDER BY created_at ASC, id ASC LIMIT 1`, owner, name, category)

	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Product{}, apperr.NotFound("item not found")
		}
		return models.Product{}, apperr.Storage(err, "could not look up product")
	}
	return p, nil
}

// ListByOwner returns the owner's records newest first. A limit of zero or
// below returns the full set.
func (s *SQLProductStore) ListByOwner(ctx context.Context, owner string, limit int) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE username = ? ORDER BY created_at DESC, id DESC`
	args := []any{owner}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(err, "could not list products")
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Username, &p.Name, &p.Category, &p.Quantity, &p.IsPublic, &p.CreatedAt); err != nil {
			return nil, apperr.Storage(err, "could not list products")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err, "could not list products")
	}
	return products, nil
}

// Update applies a partial field change to an existing record.
func (s *SQLProductStore) Update(ctx context.Context, id string, fields UpdateFields) error {
	var sets []string
	var args []any
	if fields.Quantity != nil {
		if *fields.Quantity < 1 {
			return apperr.Validation("quantity must be at least 1")
		}
		sets = append(sets, "quantity = ?")
		args = append(args, *fields.Quantity)
	}
	if fields.IsPublic != nil {
		sets = append(sets, "is_public = ?")
		args = append(args, *fields.IsPublic)
	}
	if len(sets) == 0 {
		return apperr.Validation("no fields to update")
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, "UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return apperr.Storage(err, "could not update product")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err, "could not update product")
	}
	if affected == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}

// Remove deletes a record. Removing an absent ID is not an error.
func (s *SQLProductStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return apperr.Storage(err, "could not delete product")
	}
	return nil
}

func scanProduct(row *sql.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Username, &p.Name, &p.Category, &p.Quantity, &p.IsPublic, &p.CreatedAt)
	return p, err
}
