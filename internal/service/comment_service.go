package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/optimistic"
	"go.uber.org/zap"
)

// CommentService handles project discussions
type CommentService struct {
	sync   *Sync
	logger *zap.Logger
	now    func() time.Time
}

// NewCommentService creates a new CommentService instance
func NewCommentService(sync *Sync, logger *zap.Logger) *CommentService {
	return &CommentService{sync: sync, logger: logger, now: time.Now}
}

// ListByProject returns a project's comments oldest first
func (s *CommentService) ListByProject(ctx context.Context, projectID string) []domain.Comment {
	comments := s.sync.Store.Comments.Filter(func(c domain.Comment) bool {
		return c.ProjectID == projectID
	})
	// the mirror is newest first
	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}
	return comments
}

// Create posts a comment optimistically. Once the remote insert succeeds the
// project creator is notified, unless they wrote the comment themselves.
func (s *CommentService) Create(ctx context.Context, projectID string, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrInvalidInput)
	}
	if optimistic.IsTempID(projectID) {
		return nil, mutationError(optimistic.ErrPendingCreate)
	}
	project, ok := s.sync.Store.Projects.Get(projectID)
	if !ok {
		return nil, ErrNotFound
	}

	parentID, err := s.threadRoot(projectID, req.ParentID)
	if err != nil {
		return nil, err
	}

	draft := domain.Comment{
		ProjectID: projectID,
		UserID:    user.UserID,
		UserName:  user.Name(),
		UserEmail: user.Email,
		Content:   content,
		ParentID:  parentID,
		CreatedAt: s.now().UTC(),
	}

	recipient := project.CreatedByEmail()
	var notify func(ctx context.Context, commentID string)
	if recipient != "" && !strings.EqualFold(recipient, user.Email) {
		notify = func(ctx context.Context, commentID string) {
			s.notifyOwner(ctx, project, recipient, draft, commentID)
		}
	}
	draft.ID = s.sync.Comments.CreateThen(ctx, draft, notify)
	return &draft, nil
}

// Delete removes a comment. Only its author or an admin may delete it.
// Deleting a thread root removes its replies in the same mutation.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if optimistic.IsTempID(id) {
		return mutationError(optimistic.ErrPendingCreate)
	}
	comment, ok := s.sync.Store.Comments.Get(id)
	if !ok {
		return ErrNotFound
	}
	if !user.IsAdmin && !strings.EqualFold(comment.UserEmail, user.Email) {
		return ErrPermissionDenied
	}

	replies := s.sync.Store.Comments.Filter(func(c domain.Comment) bool {
		return c.ParentID != nil && *c.ParentID == id
	})
	if len(replies) == 0 {
		return mutationError(s.sync.Comments.Delete(ctx, id))
	}

	removed := map[string]bool{id: true}
	var remoteIDs []string
	for _, r := range replies {
		removed[r.ID] = true
		if !optimistic.IsTempID(r.ID) {
			remoteIDs = append(remoteIDs, r.ID)
		}
	}
	remoteIDs = append(remoteIDs, id)
	backend := s.sync.Backends().Comments

	s.sync.Comments.Batch(ctx, func(items []domain.Comment) []domain.Comment {
		kept := items[:0]
		for _, c := range items {
			if !removed[c.ID] {
				kept = append(kept, c)
			}
		}
		return kept
	}, func(ctx context.Context) error {
		for _, rid := range remoteIDs {
			if err := backend.Delete(ctx, rid); err != nil {
				return err
			}
		}
		return nil
	})

	s.logger.Info("comment thread deleted",
		zap.String("commentId", id),
		zap.Int("replies", len(replies)))
	return nil
}

// threadRoot resolves the parent a reply attaches to. Threads are one level
// deep, so replying to a reply attaches to that reply's parent.
func (s *CommentService) threadRoot(projectID string, parentID *string) (*string, error) {
	if parentID == nil || *parentID == "" {
		return nil, nil
	}
	if optimistic.IsTempID(*parentID) {
		return nil, mutationError(optimistic.ErrPendingCreate)
	}
	parent, ok := s.sync.Store.Comments.Get(*parentID)
	if !ok || parent.ProjectID != projectID {
		return nil, fmt.Errorf("%w: parent comment %s not found on project", ErrInvalidInput, *parentID)
	}
	if parent.IsReply() {
		root := *parent.ParentID
		return &root, nil
	}
	root := parent.ID
	return &root, nil
}

func (s *CommentService) notifyOwner(ctx context.Context, project domain.Project, recipient string, comment domain.Comment, commentID string) {
	notification := domain.Notification{
		UserEmail:      recipient,
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		CommentID:      commentID,
		CommenterName:  comment.UserName,
		ContentPreview: domain.ContentPreview(comment.Content),
		IsRead:         false,
		CreatedAt:      s.now().UTC(),
	}
	id, err := s.sync.Backends().Notifications.Insert(ctx, notification)
	if err != nil {
		s.logger.Warn("failed to notify project owner",
			zap.String("projectID", project.ID),
			zap.String("commentID", commentID),
			zap.Error(err))
		return
	}
	s.logger.Debug("project owner notified",
		zap.String("notificationID", id),
		zap.String("projectID", project.ID))
}
