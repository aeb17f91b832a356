package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/divvy-app/divvy/internal/ledger"
	"github.com/divvy-app/divvy/internal/money"
)

// Repository handles database operations for settlements
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create records a settlement
func (r *Repository) Create(ctx context.Context, groupID, debtorID, creditorID int64, amount money.Money) (*Settlement, error) {
	settlement := &Settlement{}
	query := `
		INSERT INTO settlements (group_id, debtor_id, creditor_id, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, group_id, debtor_id, creditor_id, amount, created_at
	`
	err := r.db.QueryRowContext(ctx, query, groupID, debtorID, creditorID, amount).Scan(
		&settlement.ID, &settlement.GroupID, &settlement.DebtorID,
		&settlement.CreditorID, &settlement.Amount, &settlement.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}
	return settlement, nil
}

// ListByGroup retrieves one page of a group's settlements, newest first,
// along with the total count
func (r *Repository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT id, group_id, debtor_id, creditor_id, amount, created_at
		FROM settlements
		WHERE group_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		settlement := &Settlement{}
		err := rows.Scan(
			&settlement.ID, &settlement.GroupID, &settlement.DebtorID,
			&settlement.CreditorID, &settlement.Amount, &settlement.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	return settlements, total, rows.Err()
}

// SettlementRowsByGroup returns a group's settlements as ledger rows.
func (r *Repository) SettlementRowsByGroup(ctx context.Context, groupID int64) ([]ledger.SettlementRow, error) {
	query := `
		SELECT debtor_id, creditor_id, amount
		FROM settlements
		WHERE group_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlement rows: %w", err)
	}
	defer rows.Close()

	var out []ledger.SettlementRow
	for rows.Next() {
		var row ledger.SettlementRow
		if err := rows.Scan(&row.DebtorID, &row.CreditorID, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
