package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sohail/spendora/internal/category"
	"github.com/sohail/spendora/internal/expense/split"
	"github.com/sohail/spendora/internal/money"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotPayer        = errors.New("only the payer can delete an expense")
	ErrInvalidAmount   = errors.New("amount must be a positive decimal")
	ErrPersonalSplit   = errors.New("personal expenses cannot be split; provide a group_id")
	ErrEmptyGroup      = errors.New("group has no members to split between")
)

// DefaultCategory is used when neither the caller nor the classifier
// provides a category.
const DefaultCategory = "Other"

// Store abstracts expense persistence for the service.
type Store interface {
	Create(ctx context.Context, e *Expense) (*Expense, error)
	GetByID(ctx context.Context, id string) (*Expense, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]*Expense, int, error)
	ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error)
	Delete(ctx context.Context, id string) error
}

// GroupDirectory supplies the participant set for equal-mode splits.
type GroupDirectory interface {
	Participants(ctx context.Context, groupID string) ([]split.Participant, error)
}

// UserDirectory resolves payer identities to participants.
type UserDirectory interface {
	Participant(ctx context.Context, userID string) (split.Participant, error)
}

// Service handles expense business logic: it resolves participants,
// computes and validates the split, classifies the category best-effort,
// and persists the finished record.
type Service struct {
	repo            Store
	groups          GroupDirectory
	users           UserDirectory
	categories      category.Resolver
	splitFactory    *split.Factory
	classifyTimeout time.Duration
}

// NewService creates a new expense service with dependencies injected
func NewService(repo Store, groups GroupDirectory, users UserDirectory, categories category.Resolver, splitFactory *split.Factory, classifyTimeout time.Duration) *Service {
	return &Service{
		repo:            repo,
		groups:          groups,
		users:           users,
		categories:      categories,
		splitFactory:    splitFactory,
		classifyTimeout: classifyTimeout,
	}
}

// CreateExpense creates a new expense with its split resolved and
// validated. A rejected split blocks creation with the specific rule that
// failed; nothing is ever auto-corrected.
func (s *Service) CreateExpense(ctx context.Context, payerID string, req *CreateExpenseRequest) (*Expense, error) {
	total, err := money.Parse(req.Amount)
	if err != nil {
		return nil, err
	}
	if !total.IsPositive() {
		return nil, ErrInvalidAmount
	}

	payer, err := s.users.Participant(ctx, payerID)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		GroupID:     req.GroupID,
		Payer:       payer,
		Description: req.Description,
		Total:       total,
	}

	if req.GroupID == nil {
		// Personal expense: no split at all.
		if req.SplitMode != "" || len(req.Participants) > 0 {
			return nil, ErrPersonalSplit
		}
	} else {
		sp, err := s.resolveSplit(ctx, total, *req.GroupID, req)
		if err != nil {
			return nil, err
		}
		if err := split.Validate(total, sp); err != nil {
			return nil, err
		}
		encoded, err := split.Encode(sp)
		if err != nil {
			return nil, err
		}
		e.SplitMode = sp.Mode
		e.SplitData = encoded
	}

	e.Category = s.resolveCategory(ctx, req.Category, req.Description, total)

	return s.repo.Create(ctx, e)
}

// resolveSplit determines the participant set and computes the shares.
// Equal mode falls back to the group member directory when the caller
// names no participants; custom mode requires explicit amounts.
func (s *Service) resolveSplit(ctx context.Context, total money.Money, groupID string, req *CreateExpenseRequest) (*split.Split, error) {
	mode := split.ModeEqual
	if req.SplitMode != "" {
		mode = split.Mode(req.SplitMode)
	}

	var participants []split.Participant
	var explicit []money.Money

	if len(req.Participants) == 0 {
		if mode == split.ModeCustom {
			return nil, split.ErrMismatchedContribution
		}
		members, err := s.groups.Participants(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, ErrEmptyGroup
		}
		participants = members
	} else {
		participants = make([]split.Participant, len(req.Participants))
		for i, p := range req.Participants {
			participants[i] = split.Participant{ID: p.UserID, DisplayName: p.DisplayName}
			if mode == split.ModeCustom {
				if p.Amount == nil {
					return nil, split.ErrMismatchedContribution
				}
				amt, err := money.Parse(*p.Amount)
				if err != nil {
					return nil, err
				}
				explicit = append(explicit, amt)
			}
		}
	}

	strategy, err := s.splitFactory.Create(mode, explicit)
	if err != nil {
		return nil, err
	}
	return strategy.Compute(total, participants)
}

// resolveCategory picks the category known at commit time. A user-entered
// category always wins; otherwise the classifier is consulted with a short
// deadline, and its failure falls back silently to the default.
func (s *Service) resolveCategory(ctx context.Context, userCategory, description string, total money.Money) string {
	if userCategory != "" {
		return userCategory
	}
	if s.categories == nil {
		return DefaultCategory
	}

	cctx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	label, err := s.categories.Resolve(cctx, description, total)
	if err != nil {
		slog.Warn("category classification unavailable, using fallback",
			"description", description,
			"error", err,
		)
		return DefaultCategory
	}
	return label
}

// GetExpense retrieves an expense by ID.
func (s *Service) GetExpense(ctx context.Context, id string) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}
	return e, nil
}

// ListForUser retrieves the viewing user's expense history.
func (s *Service) ListForUser(ctx context.Context, userID string, page, perPage int) ([]*Expense, int, error) {
	page, perPage = normalizePaging(page, perPage)
	return s.repo.ListForUser(ctx, userID, perPage, (page-1)*perPage)
}

// ListByGroup retrieves expenses for a group.
func (s *Service) ListByGroup(ctx context.Context, groupID string, page, perPage int) ([]*Expense, int, error) {
	page, perPage = normalizePaging(page, perPage)
	return s.repo.ListByGroup(ctx, groupID, perPage, (page-1)*perPage)
}

// DeleteExpense removes an expense. Records are immutable, so corrections
// are delete-and-recreate; only the payer may delete.
func (s *Service) DeleteExpense(ctx context.Context, id, userID string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}
	if e.Payer.ID != userID {
		return fmt.Errorf("%w: expense %s", ErrNotPayer, id)
	}
	return s.repo.Delete(ctx, id)
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
