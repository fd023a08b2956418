package group

import (
	"context"
	"errors"

	"github.com/sohail/spendora/internal/expense/split"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
	ErrNotCreator          = errors.New("only the group creator can perform this action")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group and enrolls the creator as its first member.
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*Group, error) {
	g, err := s.repo.Create(ctx, creatorID, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.AddMember(ctx, g.ID, creatorID); err != nil {
		return nil, err
	}

	return g, nil
}

// GetByID retrieves a group by ID
func (s *Service) GetByID(ctx context.Context, id string) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// ListForUser retrieves the groups the user belongs to
func (s *Service) ListForUser(ctx context.Context, userID string, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.ListByMember(ctx, userID, perPage, (page-1)*perPage)
}

// Update renames a group; only the creator may do so.
func (s *Service) Update(ctx context.Context, id, userID string, req *UpdateGroupRequest) (*Group, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGroupNotFound
	}
	if existing.CreatorID != userID {
		return nil, ErrNotCreator
	}

	g, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// Delete removes a group; only the creator may do so.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrGroupNotFound
	}
	if existing.CreatorID != userID {
		return ErrNotCreator
	}

	return s.repo.Delete(ctx, id)
}

// AddMember enrolls a user into a group
func (s *Service) AddMember(ctx context.Context, groupID string, req *AddMemberRequest) (*Member, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	exists, err := s.repo.HasMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMemberAlreadyExists
	}

	return s.repo.AddMember(ctx, groupID, req.UserID)
}

// ListMembers retrieves the members of a group
func (s *Service) ListMembers(ctx context.Context, groupID string) ([]*Member, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.ListMembers(ctx, groupID)
}

// RemoveMember removes a membership record
func (s *Service) RemoveMember(ctx context.Context, groupID, memberID string) error {
	m, err := s.repo.GetMember(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMemberNotFound
	}

	return s.repo.RemoveMember(ctx, groupID, memberID)
}

// Participants returns the group's member directory as the ordered
// participant set for equal-mode splits. Order is stable (join order) so
// remainder distribution is deterministic.
func (s *Service) Participants(ctx context.Context, groupID string) ([]split.Participant, error) {
	members, err := s.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	participants := make([]split.Participant, len(members))
	for i, m := range members {
		participants[i] = split.Participant{ID: m.UserID, DisplayName: m.Username}
	}
	return participants, nil
}
