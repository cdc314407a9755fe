package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jefanko/app-updates/internal/auth"
	"github.com/jefanko/app-updates/internal/domain"
	"go.uber.org/zap"
)

// ClientService handles business logic for clients
type ClientService struct {
	sync   *Sync
	logger *zap.Logger
}

// NewClientService creates a new ClientService instance
func NewClientService(sync *Sync, logger *zap.Logger) *ClientService {
	return &ClientService{sync: sync, logger: logger}
}

// List returns mirrored clients, optionally restricted to one org and a
// case-insensitive name search
func (s *ClientService) List(ctx context.Context, org domain.Org, search string) []domain.Client {
	return s.sync.Store.Clients.Filter(func(c domain.Client) bool {
		if org != "" && c.Org != org {
			return false
		}
		return domain.MatchesSearch(c.Name, search)
	})
}

// GetByID returns a mirrored client
func (s *ClientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	client, ok := s.sync.Store.Clients.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &client, nil
}

// Create adds a client optimistically and returns it under its temporary id
func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if !req.Org.IsValid() {
		return nil, fmt.Errorf("%w: unknown org %q", ErrInvalidInput, req.Org)
	}

	draft := domain.Client{
		Name:      name,
		Org:       req.Org,
		CreatedBy: user.CreatorRef(),
		CreatedAt: time.Now().UTC(),
	}
	draft.ID = s.sync.Clients.Create(ctx, draft)

	s.logger.Info("client created",
		zap.String("clientID", draft.ID),
		zap.String("org", string(draft.Org)),
		zap.String("createdBy", user.Email))
	return &draft, nil
}

// Rename changes a client's name
func (s *ClientService) Rename(ctx context.Context, id string, req *domain.UpdateClientRequest) (*domain.Client, error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	err := s.sync.Clients.Update(ctx, id, func(c domain.Client) domain.Client {
		c.Name = name
		return c
	}, map[string]interface{}{"name": name})
	if err != nil {
		return nil, mutationError(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a client. Its projects keep existing and lose the reference
// remotely.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.sync.Clients.Delete(ctx, id); err != nil {
		return mutationError(err)
	}
	s.logger.Info("client deleted", zap.String("clientID", id), zap.String("deletedBy", user.Email))
	return nil
}

func currentUser(ctx context.Context) (*auth.UserContext, error) {
	user, ok := auth.FromContext(ctx)
	if !ok || user == nil || user.Email == "" {
		return nil, ErrUnauthorized
	}
	return user, nil
}
