package mirror

import "github.com/jefanko/app-updates/internal/domain"

// Store groups the mirrored collections for every remote table
type Store struct {
	Clients       *Collection[domain.Client]
	Projects      *Collection[domain.Project]
	Comments      *Collection[domain.Comment]
	Notifications *Collection[domain.Notification]
	Checklists    *Collection[domain.Checklist]
}

// NewStore creates a store with empty collections
func NewStore() *Store {
	return &Store{
		Clients:       NewCollection[domain.Client](),
		Projects:      NewCollection[domain.Project](),
		Comments:      NewCollection[domain.Comment](),
		Notifications: NewCollection[domain.Notification](),
		Checklists:    NewCollection[domain.Checklist](),
	}
}

// Document snapshots clients and projects in the local document shape
func (s *Store) Document() *domain.Document {
	return (&domain.Document{
		Clients:  s.Clients.Items(),
		Projects: s.Projects.Items(),
	}).Normalize()
}

// LoadDocument replaces clients and projects with the document's contents
func (s *Store) LoadDocument(doc *domain.Document) {
	if doc == nil {
		doc = domain.NewDocument()
	}
	s.Clients.Reset(doc.Clients)
	s.Projects.Reset(doc.Projects)
}
