package group

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/divvy-app/divvy/internal/money"
)

// Repository handles group and membership data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group and its creator's membership in one transaction
func (r *Repository) Create(ctx context.Context, name string, createdBy int64, inviteCode string) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (name, created_by, invite_code)
		VALUES ($1, $2, $3)
		RETURNING id, name, created_by, invite_code, created_at
	`

	group := &Group{}
	err = tx.QueryRowContext(ctx, query, name, createdBy, inviteCode).Scan(
		&group.ID,
		&group.Name,
		&group.CreatedBy,
		&group.InviteCode,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`,
		group.ID, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group creation: %w", err)
	}
	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `SELECT id, name, created_by, invite_code, created_at FROM groups WHERE id = $1`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.CreatedBy,
		&group.InviteCode,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// GetByInviteCode retrieves a group by its canonical invite code
func (r *Repository) GetByInviteCode(ctx context.Context, code string) (*Group, error) {
	query := `SELECT id, name, created_by, invite_code, created_at FROM groups WHERE invite_code = $1`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&group.ID,
		&group.Name,
		&group.CreatedBy,
		&group.InviteCode,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group by invite code: %w", err)
	}

	return group, nil
}

// Update renames a group
func (r *Repository) Update(ctx context.Context, id int64, name string) (*Group, error) {
	query := `
		UPDATE groups SET name = $2 WHERE id = $1
		RETURNING id, name, created_by, invite_code, created_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, name).Scan(
		&group.ID,
		&group.Name,
		&group.CreatedBy,
		&group.InviteCode,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return group, nil
}

// Delete removes a group; members, expenses, splits and settlements cascade
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddMember records a membership. Adding an existing member is a no-op, so
// joining twice never duplicates membership.
func (r *Repository) AddMember(ctx context.Context, groupID, userID int64) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership record
func (r *Repository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// IsMember reports whether a user belongs to a group
func (r *Repository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`,
		groupID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// GetMembers retrieves all members of a group with user details
func (r *Repository) GetMembers(ctx context.Context, groupID int64) ([]*Member, error) {
	query := `
		SELECT m.group_id, m.user_id, u.name, u.email
		FROM group_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.group_id = $1
		ORDER BY m.user_id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(&member.GroupID, &member.UserID, &member.Name, &member.Email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// ListMemberIDs returns member user ids in ascending order. This is the
// membership snapshot used when allocating expense splits.
func (r *Repository) ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY user_id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list member ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByUserID retrieves a user's groups newest first, with the total count
func (r *Repository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Group, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM group_members WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	query := `
		SELECT g.id, g.name, g.created_by, g.invite_code, g.created_at
		FROM groups g
		JOIN group_members m ON g.id = m.group_id
		WHERE m.user_id = $1
		ORDER BY g.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedBy, &group.InviteCode, &group.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, total, rows.Err()
}

// ExpenseCounts returns the number of expenses per group
func (r *Repository) ExpenseCounts(ctx context.Context, groupIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	if len(groupIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT group_id, COUNT(*)
		FROM expenses
		WHERE group_id = ANY($1)
		GROUP BY group_id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID int64
		var count int
		if err := rows.Scan(&groupID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan expense count: %w", err)
		}
		counts[groupID] = count
	}
	return counts, rows.Err()
}

// LastActivityByGroup returns the newest expense timestamp per group
func (r *Repository) LastActivityByGroup(ctx context.Context, groupIDs []int64) (map[int64]*time.Time, error) {
	activity := make(map[int64]*time.Time)
	if len(groupIDs) == 0 {
		return activity, nil
	}

	query := `
		SELECT group_id, MAX(created_at)
		FROM expenses
		WHERE group_id = ANY($1)
		GROUP BY group_id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get last activity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID int64
		var last time.Time
		if err := rows.Scan(&groupID, &last); err != nil {
			return nil, fmt.Errorf("failed to scan last activity: %w", err)
		}
		activity[groupID] = &last
	}
	return activity, rows.Err()
}

// UserBalancesByGroup computes the user's signed net balance per group from
// expense shares and settlements in two aggregate queries. Positive means
// the user is owed money in that group.
func (r *Repository) UserBalancesByGroup(ctx context.Context, groupIDs []int64, userID int64) (map[int64]money.Money, error) {
	balances := make(map[int64]money.Money)
	if len(groupIDs) == 0 {
		return balances, nil
	}

	expenseQuery := `
		SELECT e.group_id,
		       COALESCE(SUM(CASE WHEN e.created_by = $2 THEN s.share ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN s.user_id = $2 THEN s.share ELSE 0 END), 0)
		FROM expense_splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = ANY($1)
		  AND s.user_id <> e.created_by
		  AND (s.user_id = $2 OR e.created_by = $2)
		GROUP BY e.group_id
	`
	rows, err := r.db.QueryContext(ctx, expenseQuery, pq.Array(groupIDs), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID int64
		var credited, debited money.Money
		if err := rows.Scan(&groupID, &credited, &debited); err != nil {
			return nil, fmt.Errorf("failed to scan expense balance: %w", err)
		}
		balances[groupID] += credited - debited
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	settlementQuery := `
		SELECT group_id,
		       COALESCE(SUM(CASE WHEN debtor_id = $2 THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN creditor_id = $2 THEN amount ELSE 0 END), 0)
		FROM settlements
		WHERE group_id = ANY($1)
		  AND (debtor_id = $2 OR creditor_id = $2)
		GROUP BY group_id
	`
	settlementRows, err := r.db.QueryContext(ctx, settlementQuery, pq.Array(groupIDs), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement balances: %w", err)
	}
	defer settlementRows.Close()

	for settlementRows.Next() {
		var groupID int64
		var paid, received money.Money
		if err := settlementRows.Scan(&groupID, &paid, &received); err != nil {
			return nil, fmt.Errorf("failed to scan settlement balance: %w", err)
		}
		balances[groupID] += paid - received
	}
	return balances, settlementRows.Err()
}
