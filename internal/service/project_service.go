package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jefanko/app-updates/internal/auth"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/mapper"
	"github.com/jefanko/app-updates/internal/milestone"
	"github.com/jefanko/app-updates/internal/optimistic"
	"go.uber.org/zap"
)

// Project-specific service errors
var (
	// ErrClientRequired is returned when an AI project has no client
	ErrClientRequired = errors.New("projects of this org require a client")

	// ErrProjectNotOwned is returned when editing a project created by someone else
	ErrProjectNotOwned = errors.New("project belongs to another user")
)

// ProjectFilter narrows the project list. Zero values match everything.
type ProjectFilter struct {
	Org      domain.Org
	ClientID string
	Status   domain.TenderStatus
	Search   string
}

func (f ProjectFilter) matches(p domain.Project) bool {
	if f.Org != "" && p.Org != f.Org {
		return false
	}
	if f.ClientID != "" && (p.ClientID == nil || *p.ClientID != f.ClientID) {
		return false
	}
	if f.Status != "" && p.TenderStatus != f.Status {
		return false
	}
	return domain.MatchesSearch(p.Name, f.Search)
}

// ProjectService handles business logic for projects and their milestones
type ProjectService struct {
	sync   *Sync
	logger *zap.Logger
	now    func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(sync *Sync, logger *zap.Logger) *ProjectService {
	return &ProjectService{sync: sync, logger: logger, now: time.Now}
}

// List returns the mirrored projects matching filter, newest first
func (s *ProjectService) List(ctx context.Context, filter ProjectFilter) []domain.ProjectDTO {
	user, _ := auth.FromContext(ctx)
	projects := s.sync.Store.Projects.Filter(filter.matches)

	return mapper.ToProjectDTOs(projects, user.CanEditProject)
}

// Projects returns the raw mirrored projects of one org, or all when org is empty
func (s *ProjectService) Projects(ctx context.Context, org domain.Org) []domain.Project {
	return s.sync.Store.Projects.Filter(ProjectFilter{Org: org}.matches)
}

// GetByID returns a mirrored project
func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.ProjectDTO, error) {
	project, ok := s.sync.Store.Projects.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	user, _ := auth.FromContext(ctx)
	dto := toProjectDTO(project, user)
	return &dto, nil
}

// Create adds a project optimistically. PIC defaults to the creator and the
// tender starts "In progress".
func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if !req.Org.IsValid() {
		return nil, fmt.Errorf("%w: unknown org %q", ErrInvalidInput, req.Org)
	}

	clientID, err := s.resolveClient(req.Org, req.ClientID)
	if err != nil {
		return nil, err
	}

	status := req.TenderStatus
	if status == "" {
		status = domain.TenderStatusInProgress
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown tender status %q", ErrInvalidInput, status)
	}

	pic := strings.TrimSpace(req.PIC)
	if pic == "" {
		pic = user.Name()
	}

	draft := domain.Project{
		Name:            name,
		Org:             req.Org,
		ClientID:        clientID,
		Location:        req.Location,
		QuotationNumber: req.QuotationNumber,
		QuotationPrice:  req.QuotationPrice,
		DueDate:         req.DueDate,
		PIC:             pic,
		TenderStatus:    status,
		Milestones:      domain.Milestones{},
		TenderExpenses:  domain.TenderExpenses{},
		CreatedBy:       user.CreatorRef(),
		CreatedAt:       s.now().UTC(),
	}
	draft.ID = s.sync.Projects.Create(ctx, draft)

	s.logger.Info("project created",
		zap.String("projectID", draft.ID),
		zap.String("org", string(draft.Org)),
		zap.String("createdBy", user.Email))

	dto := toProjectDTO(draft, user)
	return &dto, nil
}

// Update applies the non-nil fields of req to a project the user may edit
func (s *ProjectService) Update(ctx context.Context, id string, req *domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	current, user, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := make(map[string]interface{})
	next := current

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
		}
		next.Name = name
		patch["name"] = name
	}
	if req.ClientID != nil {
		clientID, err := s.resolveClient(current.Org, req.ClientID)
		if err != nil {
			return nil, err
		}
		next.ClientID = clientID
		patch["clientId"] = clientID
	}
	if req.TenderStatus != nil {
		if !req.TenderStatus.IsValid() {
			return nil, fmt.Errorf("%w: unknown tender status %q", ErrInvalidInput, *req.TenderStatus)
		}
		next.TenderStatus = *req.TenderStatus
		patch["tenderStatus"] = *req.TenderStatus
	}
	if req.DueDate != nil {
		next.DueDate = emptyToNil(*req.DueDate)
		patch["dueDate"] = next.DueDate
	}
	setString(&next.Location, req.Location, "location", patch)
	setString(&next.QuotationNumber, req.QuotationNumber, "quotationNumber", patch)
	setString(&next.PIC, req.PIC, "pic", patch)
	setString(&next.Factory, req.Factory, "factory", patch)
	setString(&next.RemarksKontraktor, req.RemarksKontraktor, "remarksKontraktor", patch)
	setString(&next.RemarksPrinciple, req.RemarksPrinciple, "remarksPrinciple", patch)
	setString(&next.RemarksAi, req.RemarksAi, "remarksAi", patch)
	setString(&next.Insulator, req.Insulator, "insulator", patch)
	setString(&next.Remarks, req.Remarks, "remarks", patch)
	setString(&next.BastNumber, req.BastNumber, "bastNumber", patch)
	if req.QuotationPrice != nil {
		next.QuotationPrice = *req.QuotationPrice
		patch["quotationPrice"] = *req.QuotationPrice
	}
	if req.Checklist != nil {
		next.Checklist = req.Checklist
		patch["checklist"] = req.Checklist
	}
	if req.TenderExpenses != nil {
		next.TenderExpenses = *req.TenderExpenses
		patch["tenderExpenses"] = *req.TenderExpenses
	}

	if len(patch) == 0 {
		dto := toProjectDTO(current, user)
		return &dto, nil
	}

	err = s.sync.Projects.Update(ctx, id, func(p domain.Project) domain.Project {
		return applyProjectPatch(p, next, patch)
	}, patch)
	if err != nil {
		return nil, mutationError(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a project the user may edit
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	_, user, err := s.editable(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sync.Projects.Delete(ctx, id); err != nil {
		return mutationError(err)
	}
	s.logger.Info("project deleted", zap.String("projectID", id), zap.String("deletedBy", user.Email))
	return nil
}

// UpdateMilestones applies transform to the project's milestone list and
// writes the whole list back. Concurrent writers race at list granularity;
// the last remote write wins.
func (s *ProjectService) UpdateMilestones(ctx context.Context, id string, transform milestone.Transform) (domain.Milestones, error) {
	current, _, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := transform(milestone.Clone(current.Milestones))
	if err != nil {
		return nil, milestoneError(err)
	}
	if next == nil {
		next = domain.Milestones{}
	}

	err = s.sync.Projects.Update(ctx, id, func(p domain.Project) domain.Project {
		p.Milestones = next
		return p
	}, map[string]interface{}{"milestones": next})
	if err != nil {
		return nil, mutationError(err)
	}
	return milestone.Clone(next), nil
}

// editable returns the project when the signed-in user may change it
func (s *ProjectService) editable(ctx context.Context, id string) (domain.Project, *auth.UserContext, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return domain.Project{}, nil, err
	}
	if optimistic.IsTempID(id) {
		return domain.Project{}, nil, mutationError(optimistic.ErrPendingCreate)
	}
	project, ok := s.sync.Store.Projects.Get(id)
	if !ok {
		return domain.Project{}, nil, ErrNotFound
	}
	if !user.CanEditProject(project) {
		return domain.Project{}, nil, fmt.Errorf("%w: %v", ErrPermissionDenied, ErrProjectNotOwned)
	}
	return project, user, nil
}

// resolveClient applies the org rule: AI projects need an existing client,
// INA projects never carry one
func (s *ProjectService) resolveClient(org domain.Org, clientID *string) (*string, error) {
	if !org.RequiresClient() {
		return nil, nil
	}
	if clientID == nil || strings.TrimSpace(*clientID) == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, ErrClientRequired)
	}
	id := strings.TrimSpace(*clientID)
	if optimistic.IsTempID(id) {
		return nil, mutationError(optimistic.ErrPendingCreate)
	}
	if _, ok := s.sync.Store.Clients.Get(id); !ok {
		return nil, fmt.Errorf("%w: client %s does not exist", ErrInvalidInput, id)
	}
	return &id, nil
}

// applyProjectPatch copies the patched fields of next onto p so fields
// changed concurrently by the change feed survive
func applyProjectPatch(p, next domain.Project, patch map[string]interface{}) domain.Project {
	for key := range patch {
		switch key {
		case "name":
			p.Name = next.Name
		case "clientId":
			p.ClientID = next.ClientID
		case "tenderStatus":
			p.TenderStatus = next.TenderStatus
		case "dueDate":
			p.DueDate = next.DueDate
		case "location":
			p.Location = next.Location
		case "quotationNumber":
			p.QuotationNumber = next.QuotationNumber
		case "quotationPrice":
			p.QuotationPrice = next.QuotationPrice
		case "pic":
			p.PIC = next.PIC
		case "factory":
			p.Factory = next.Factory
		case "remarksKontraktor":
			p.RemarksKontraktor = next.RemarksKontraktor
		case "remarksPrinciple":
			p.RemarksPrinciple = next.RemarksPrinciple
		case "remarksAi":
			p.RemarksAi = next.RemarksAi
		case "insulator":
			p.Insulator = next.Insulator
		case "remarks":
			p.Remarks = next.Remarks
		case "bastNumber":
			p.BastNumber = next.BastNumber
		case "checklist":
			p.Checklist = next.Checklist
		case "tenderExpenses":
			p.TenderExpenses = next.TenderExpenses
		}
	}
	return p
}

func toProjectDTO(p domain.Project, user *auth.UserContext) domain.ProjectDTO {
	return mapper.ToProjectDTO(p, user.CanEditProject(p))
}

func setString(dst *string, src *string, key string, patch map[string]interface{}) {
	if src == nil {
		return
	}
	*dst = *src
	patch[key] = *src
}

func emptyToNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
