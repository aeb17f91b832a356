package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/divvy-app/divvy/internal/ledger"
	"github.com/divvy-app/divvy/internal/money"
)

// Repository handles database operations for expenses and their splits
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an expense and its splits in a single transaction.
func (r *Repository) Create(ctx context.Context, groupID, createdBy int64, name, description string, amount money.Money, shares []ledger.Share) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expense := &Expense{}
	query := `
		INSERT INTO expenses (group_id, created_by, name, description, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, created_by, name, description, amount, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query, groupID, createdBy, name, description, amount).Scan(
		&expense.ID, &expense.GroupID, &expense.CreatedBy, &expense.Name,
		&expense.Description, &expense.Amount, &expense.CreatedAt, &expense.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `INSERT INTO expense_splits (expense_id, user_id, share) VALUES ($1, $2, $3)`
	for _, s := range shares {
		if _, err := tx.ExecContext(ctx, splitQuery, expense.ID, s.UserID, s.Amount); err != nil {
			return nil, fmt.Errorf("failed to create expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return expense, nil
}

// GetByID retrieves an expense by ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	expense := &Expense{}
	query := `
		SELECT id, group_id, created_by, name, description, amount, created_at, updated_at
		FROM expenses
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID, &expense.GroupID, &expense.CreatedBy, &expense.Name,
		&expense.Description, &expense.Amount, &expense.CreatedAt, &expense.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListByGroup retrieves one page of a group's expenses, newest first,
// along with the total count
func (r *Repository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT id, group_id, created_by, name, description, amount, created_at, updated_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		err := rows.Scan(
			&expense.ID, &expense.GroupID, &expense.CreatedBy, &expense.Name,
			&expense.Description, &expense.Amount, &expense.CreatedAt, &expense.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, total, rows.Err()
}

// GetSplits retrieves the splits of an expense ordered by user ID
func (r *Repository) GetSplits(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT id, expense_id, user_id, share
		FROM expense_splits
		WHERE expense_id = $1
		ORDER BY user_id
	`
	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		split := &Split{}
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &split.Share); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		splits = append(splits, split)
	}
	return splits, rows.Err()
}

// Update modifies an expense's fields and bumps updated_at
func (r *Repository) Update(ctx context.Context, id int64, name, description string, amount money.Money) (*Expense, error) {
	expense := &Expense{}
	query := `
		UPDATE expenses
		SET name = $2, description = $3, amount = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, group_id, created_by, name, description, amount, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, id, name, description, amount).Scan(
		&expense.ID, &expense.GroupID, &expense.CreatedBy, &expense.Name,
		&expense.Description, &expense.Amount, &expense.CreatedAt, &expense.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// Delete removes an expense; its splits go with it via ON DELETE CASCADE
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SplitRowsByGroup returns every split of every expense in a group as ledger rows.
func (r *Repository) SplitRowsByGroup(ctx context.Context, groupID int64) ([]ledger.SplitRow, error) {
	query := `
		SELECT e.created_by, s.user_id, s.share
		FROM expense_splits s
		JOIN expenses e ON e.id = s.expense_id
		WHERE e.group_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load split rows: %w", err)
	}
	defer rows.Close()

	var out []ledger.SplitRow
	for rows.Next() {
		var row ledger.SplitRow
		if err := rows.Scan(&row.CreatorID, &row.UserID, &row.Share); err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
