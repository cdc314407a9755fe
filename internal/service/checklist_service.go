package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jefanko/app-updates/internal/domain"
	"go.uber.org/zap"
)

// ChecklistService handles organisation document checklists
type ChecklistService struct {
	sync   *Sync
	logger *zap.Logger
	now    func() time.Time
}

// NewChecklistService creates a new ChecklistService instance
func NewChecklistService(sync *Sync, logger *zap.Logger) *ChecklistService {
	return &ChecklistService{sync: sync, logger: logger, now: time.Now}
}

// List returns the checklists of one org, or all when org is empty
func (s *ChecklistService) List(ctx context.Context, org domain.Org) []domain.Checklist {
	return s.sync.Store.Checklists.Filter(func(c domain.Checklist) bool {
		return org == "" || c.Org == org
	})
}

// GetByID returns a mirrored checklist
func (s *ChecklistService) GetByID(ctx context.Context, id string) (*domain.Checklist, error) {
	checklist, ok := s.sync.Store.Checklists.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &checklist, nil
}

// Create adds a checklist optimistically
func (s *ChecklistService) Create(ctx context.Context, req *domain.CreateChecklistRequest) (*domain.Checklist, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: checklist name is required", ErrInvalidInput)
	}
	if !req.Org.IsValid() {
		return nil, fmt.Errorf("%w: unknown org %q", ErrInvalidInput, req.Org)
	}

	creator := user.CreatorRef()
	draft := domain.Checklist{
		Org:         req.Org,
		Name:        name,
		Description: req.Description,
		Items:       withItemIDs(req.Items),
		Approvers:   withApproverIDs(req.Approvers),
		CreatedBy:   &domain.CreatorRef{Email: creator.Email, Name: creator.Name},
		CreatedAt:   s.now().UTC(),
	}
	draft.ID = s.sync.Checklists.Create(ctx, draft)
	return &draft, nil
}

// Update merges the non-nil fields of req into the checklist
func (s *ChecklistService) Update(ctx context.Context, id string, req *domain.UpdateChecklistRequest) (*domain.Checklist, error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}

	patch := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: checklist name is required", ErrInvalidInput)
		}
		req.Name = &name
		patch["name"] = name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	var items domain.ChecklistItems
	if req.Items != nil {
		items = withItemIDs(*req.Items)
		patch["items"] = items
	}
	var approvers domain.Approvers
	if req.Approvers != nil {
		approvers = withApproverIDs(*req.Approvers)
		patch["approvers"] = approvers
	}
	if req.Deficiencies != nil {
		patch["deficiencies"] = *req.Deficiencies
	}
	if len(patch) == 0 {
		return s.GetByID(ctx, id)
	}

	now := s.now().UTC()
	err := s.sync.Checklists.Update(ctx, id, func(c domain.Checklist) domain.Checklist {
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Items != nil {
			c.Items = items
		}
		if req.Approvers != nil {
			c.Approvers = approvers
		}
		if req.Deficiencies != nil {
			c.Deficiencies = *req.Deficiencies
		}
		c.UpdatedAt = &now
		return c
	}, patch)
	if err != nil {
		return nil, mutationError(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a checklist
func (s *ChecklistService) Delete(ctx context.Context, id string) error {
	if _, err := currentUser(ctx); err != nil {
		return err
	}
	return mutationError(s.sync.Checklists.Delete(ctx, id))
}

func withItemIDs(items domain.ChecklistItems) domain.ChecklistItems {
	out := make(domain.ChecklistItems, len(items))
	for i, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		out[i] = item
	}
	return out
}

func withApproverIDs(approvers domain.Approvers) domain.Approvers {
	out := make(domain.Approvers, len(approvers))
	for i, a := range approvers {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		out[i] = a
	}
	return out
}
