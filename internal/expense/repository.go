package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sohail/spendora/internal/expense/split"
	"github.com/sohail/spendora/internal/money"
)

// Repository handles expense persistence. The share breakdown is stored as
// the split codec's textual encoding in split_data; that blob is the single
// source of truth for who owes what on a given expense.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new expense. The id is assigned here; the record is
// written in one statement so it is never observable half-created.
func (r *Repository) Create(ctx context.Context, e *Expense) (*Expense, error) {
	query := `
		INSERT INTO expenses (id, group_id, payer_id, description, amount, category, split_mode, split_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	e.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		e.ID,
		e.GroupID,
		e.Payer.ID,
		e.Description,
		e.Total.Units(),
		e.Category,
		string(e.SplitMode),
		e.SplitData,
	).Scan(&e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return e, nil
}

// GetByID retrieves an expense by its ID. Returns nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.category, e.split_mode, e.split_data, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// ListForUser retrieves expenses the user paid for or participates in,
// newest first. Participation is matched against the participant reference
// inside the encoded split.
func (r *Repository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*Expense, int, error) {
	match := `%"id":"` + userID + `"%`

	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE payer_id = $1 OR split_data LIKE $2`
	if err := r.db.QueryRowContext(ctx, countQuery, userID, match).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.category, e.split_mode, e.split_data, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.payer_id = $1 OR e.split_data LIKE $2
		ORDER BY e.created_at DESC
		LIMIT $3 OFFSET $4
	`
	expenses, err := r.queryExpenses(ctx, query, userID, match, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListByGroup retrieves all expenses for a group, newest first.
func (r *Repository) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.category, e.split_mode, e.split_data, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`
	expenses, err := r.queryExpenses(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// AllForUser retrieves the user's complete expense history as a snapshot,
// without pagination. Balance aggregation needs every record at once.
func (r *Repository) AllForUser(ctx context.Context, userID string) ([]*Expense, error) {
	match := `%"id":"` + userID + `"%`
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.category, e.split_mode, e.split_data, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.payer_id = $1 OR e.split_data LIKE $2
	`
	return r.queryExpenses(ctx, query, userID, match)
}

// AllByGroup retrieves a group's complete expense history as a snapshot.
func (r *Repository) AllByGroup(ctx context.Context, groupID string) ([]*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.category, e.split_mode, e.split_data, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
	`
	return r.queryExpenses(ctx, query, groupID)
}

// Delete removes an expense.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *Repository) queryExpenses(ctx context.Context, query string, args ...any) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*Expense, error) {
	e := &Expense{}
	var amount int64
	var mode string
	err := row.Scan(
		&e.ID,
		&e.GroupID,
		&e.Payer.ID,
		&e.Description,
		&amount,
		&e.Category,
		&mode,
		&e.SplitData,
		&e.CreatedAt,
		&e.Payer.DisplayName,
	)
	if err != nil {
		return nil, err
	}
	e.Total = money.FromUnits(amount)
	e.SplitMode = split.Mode(mode)
	return e, nil
}
