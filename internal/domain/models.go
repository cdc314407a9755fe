package domain

import (
	"strings"
	"time"
)

// Entity is implemented by every record mirrored locally. WithID returns a
// copy carrying the given identifier so temporary and authoritative ids can
// be assigned without mutating shared values.
type Entity[T any] interface {
	EntityID() string
	WithID(id string) T
}

// Org identifies which business unit owns a client, project or checklist
type Org string

const (
	OrgINA Org = "INA"
	OrgAI  Org = "AI"
)

// IsValid checks if the org is one of the known business units
func (o Org) IsValid() bool {
	switch o {
	case OrgINA, OrgAI:
		return true
	}
	return false
}

// RequiresClient reports whether projects of this org must reference a client
func (o Org) RequiresClient() bool {
	return o == OrgAI
}

// TenderStatus represents the commercial state of a project tender.
// Transitions are unconstrained: any status may be set from any other.
type TenderStatus string

const (
	TenderStatusSurvey     TenderStatus = "Survey"
	TenderStatusQuotation  TenderStatus = "Quotation"
	TenderStatusInProgress TenderStatus = "In progress"
	TenderStatusWin        TenderStatus = "Win"
	TenderStatusLoss       TenderStatus = "Loss"
	TenderStatusNeedUpdate TenderStatus = "Need update"
)

// TenderStatuses lists the statuses in the order the UI presents them
var TenderStatuses = []TenderStatus{
	TenderStatusSurvey,
	TenderStatusQuotation,
	TenderStatusInProgress,
	TenderStatusWin,
	TenderStatusLoss,
	TenderStatusNeedUpdate,
}

// IsValid checks if the tender status is valid
func (s TenderStatus) IsValid() bool {
	switch s {
	case TenderStatusSurvey, TenderStatusQuotation, TenderStatusInProgress,
		TenderStatusWin, TenderStatusLoss, TenderStatusNeedUpdate:
		return true
	}
	return false
}

// IsClosed reports whether the tender has been decided
func (s TenderStatus) IsClosed() bool {
	return s == TenderStatusWin || s == TenderStatusLoss
}

// ReportPriority orders statuses in the weekly report, lowest first
func (s TenderStatus) ReportPriority() int {
	switch s {
	case TenderStatusInProgress:
		return 0
	case TenderStatusQuotation:
		return 1
	case TenderStatusSurvey:
		return 2
	case TenderStatusWin:
		return 3
	case TenderStatusLoss:
		return 4
	default:
		return 5
	}
}

// CreatorRef identifies the user who created a record
type CreatorRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client is a customer that AI projects are attached to
type Client struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Org       Org         `gorm:"type:varchar(10);not null;index" json:"org"`
	CreatedBy *CreatorRef `gorm:"type:jsonb;serializer:json;column:created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

func (Client) TableName() string { return "clients" }

func (c Client) EntityID() string { return c.ID }

func (c Client) WithID(id string) Client {
	c.ID = id
	return c
}

// Project is a tender tracked from survey to win or loss
type Project struct {
	ID                string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Org               Org            `gorm:"type:varchar(10);not null;index" json:"org"`
	ClientID          *string        `gorm:"type:uuid;column:client_id;index" json:"clientId"`
	Location          string         `gorm:"type:varchar(255)" json:"location"`
	QuotationNumber   string         `gorm:"type:varchar(100);column:quotation_number" json:"quotationNumber"`
	QuotationPrice    float64        `gorm:"type:numeric(18,2);column:quotation_price;default:0" json:"quotationPrice"`
	DueDate           *string        `gorm:"type:varchar(10);column:due_date" json:"dueDate"`
	PIC               string         `gorm:"type:varchar(255);column:pic" json:"pic"`
	TenderStatus      TenderStatus   `gorm:"type:varchar(20);column:tender_status;not null" json:"tenderStatus"`
	Milestones        Milestones     `gorm:"type:jsonb;serializer:json" json:"milestones"`
	CreatedBy         *CreatorRef    `gorm:"type:jsonb;serializer:json;column:created_by" json:"createdBy,omitempty"`
	Factory           string         `gorm:"type:text" json:"factory"`
	RemarksKontraktor string         `gorm:"type:text;column:remarks_kontraktor" json:"remarksKontraktor"`
	RemarksPrinciple  string         `gorm:"type:text;column:remarks_principle" json:"remarksPrinciple"`
	RemarksAi         string         `gorm:"type:text;column:remarks_ai" json:"remarksAi"`
	Insulator         string         `gorm:"type:text" json:"insulator"`
	Remarks           string         `gorm:"type:text" json:"remarks"`
	BastNumber        string         `gorm:"type:varchar(100);column:bast_number" json:"bastNumber"`
	Checklist         *DocChecklist  `gorm:"type:jsonb;serializer:json" json:"checklist,omitempty"`
	TenderExpenses    TenderExpenses `gorm:"type:jsonb;serializer:json;column:tender_expenses" json:"tenderExpenses"`
	CreatedAt         time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt         *time.Time     `json:"updatedAt,omitempty"`
}

func (Project) TableName() string { return "projects" }

func (p Project) EntityID() string { return p.ID }

func (p Project) WithID(id string) Project {
	p.ID = id
	return p
}

// Progress returns milestone completion for the project
func (p Project) Progress() Progress {
	return CalculateProgress(p.Milestones)
}

// CreatedByEmail returns the creator's email, or "" when unknown
func (p Project) CreatedByEmail() string {
	if p.CreatedBy == nil {
		return ""
	}
	return p.CreatedBy.Email
}

// Comment is a discussion entry on a project. ParentID is set for replies;
// threads are one level deep.
type Comment struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID string     `gorm:"type:uuid;not null;index;column:project_id" json:"projectId"`
	UserID    string     `gorm:"type:varchar(255);column:user_id" json:"userId"`
	UserName  string     `gorm:"type:varchar(255);column:user_name" json:"userName"`
	UserEmail string     `gorm:"type:varchar(255);column:user_email" json:"userEmail"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	ParentID  *string    `gorm:"type:uuid;column:parent_id" json:"parentId"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (Comment) TableName() string { return "comments" }

func (c Comment) EntityID() string { return c.ID }

func (c Comment) WithID(id string) Comment {
	c.ID = id
	return c
}

// IsReply reports whether the comment answers another comment
func (c Comment) IsReply() bool {
	return c.ParentID != nil && *c.ParentID != ""
}

// Notification tells a project owner that someone commented on their project
type Notification struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail      string     `gorm:"type:varchar(255);not null;index;column:user_email" json:"userEmail"`
	ProjectID      string     `gorm:"type:uuid;column:project_id" json:"projectId"`
	ProjectName    string     `gorm:"type:varchar(255);column:project_name" json:"projectName"`
	CommentID      string     `gorm:"type:uuid;column:comment_id" json:"commentId"`
	CommenterName  string     `gorm:"type:varchar(255);column:commenter_name" json:"commenterName"`
	ContentPreview string     `gorm:"type:text;column:content_preview" json:"contentPreview"`
	IsRead         bool       `gorm:"not null;default:false;column:is_read" json:"isRead"`
	CreatedAt      time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

func (Notification) TableName() string { return "notifications" }

func (n Notification) EntityID() string { return n.ID }

func (n Notification) WithID(id string) Notification {
	n.ID = id
	return n
}

// PreviewLength is the number of characters kept in a notification preview
const PreviewLength = 50

// ContentPreview shortens comment content for notifications
func ContentPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength]) + "..."
}

// Checklist is an organisation-level document checklist template
type Checklist struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	Org          Org            `gorm:"type:varchar(10);not null;index" json:"org"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Items        ChecklistItems `gorm:"type:jsonb;serializer:json" json:"items"`
	Approvers    Approvers      `gorm:"type:jsonb;serializer:json" json:"approvers"`
	Deficiencies string         `gorm:"type:text" json:"deficiencies"`
	CreatedBy    *CreatorRef    `gorm:"type:jsonb;serializer:json;column:created_by" json:"createdBy,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt    *time.Time     `json:"updatedAt,omitempty"`
}

func (Checklist) TableName() string { return "checklists" }

func (c Checklist) EntityID() string { return c.ID }

func (c Checklist) WithID(id string) Checklist {
	c.ID = id
	return c
}

// Stats summarises the checklist items
func (c Checklist) Stats() ChecklistStats {
	return CalculateChecklistStats(c.Items)
}

// DocChecklist is the document checklist embedded on a project
type DocChecklist struct {
	Items        ChecklistItems `json:"items"`
	Approvers    Approvers      `json:"approvers"`
	Deficiencies string         `json:"deficiencies"`
}

// ChecklistItem is a single document requirement
type ChecklistItem struct {
	ID          string        `json:"id"`
	Requirement string        `json:"requirement"`
	Checked     bool          `json:"checked"`
	Remarks     string        `json:"remarks"`
	File        *AttachedFile `json:"file"`
}

type ChecklistItems []ChecklistItem

// Approver signs off a checklist
type Approver struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Approved bool   `json:"approved"`
	Remarks  string `json:"remarks"`
}

type Approvers []Approver

// AttachedFile describes a file copied into the attachment directory
type AttachedFile struct {
	FileName   string `json:"fileName"`
	FilePath   string `json:"filePath"`
	StoredName string `json:"storedName"`
}

// ChecklistStats holds checklist completion counters
type ChecklistStats struct {
	Total     int `json:"total"`
	Checked   int `json:"checked"`
	WithFiles int `json:"withFiles"`
	Percent   int `json:"percent"`
}

// CalculateChecklistStats counts checked items and attachments
func CalculateChecklistStats(items []ChecklistItem) ChecklistStats {
	stats := ChecklistStats{Total: len(items)}
	for _, item := range items {
		if item.Checked {
			stats.Checked++
		}
		if item.File != nil {
			stats.WithFiles++
		}
	}
	stats.Percent = percentage(stats.Checked, stats.Total)
	return stats
}

// TenderExpense is a cost incurred while preparing a tender
type TenderExpense struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type TenderExpenses []TenderExpense

// Total sums every expense amount
func (e TenderExpenses) Total() float64 {
	var total float64
	for _, exp := range e {
		total += exp.Amount
	}
	return total
}

// MatchesSearch reports whether name contains the search term, ignoring case
func MatchesSearch(name, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}
