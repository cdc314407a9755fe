package domain

// ============================================================================
// Client DTOs
// ============================================================================

type CreateClientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Org  Org    `json:"org" validate:"required,oneof=INA AI"`
}

type UpdateClientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ============================================================================
// Project DTOs
// ============================================================================

type CreateProjectRequest struct {
	Name            string       `json:"name" validate:"required,max=255"`
	Org             Org          `json:"org" validate:"required,oneof=INA AI"`
	ClientID        *string      `json:"clientId"`
	Location        string       `json:"location" validate:"max=255"`
	QuotationNumber string       `json:"quotationNumber" validate:"max=100"`
	QuotationPrice  float64      `json:"quotationPrice" validate:"gte=0"`
	DueDate         *string      `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PIC             string       `json:"pic" validate:"max=255"`
	TenderStatus    TenderStatus `json:"tenderStatus"`
}

// UpdateProjectRequest carries the editable detail fields. Nil fields are
// left untouched.
type UpdateProjectRequest struct {
	Name              *string         `json:"name" validate:"omitempty,min=1,max=255"`
	ClientID          *string         `json:"clientId"`
	Location          *string         `json:"location" validate:"omitempty,max=255"`
	QuotationNumber   *string         `json:"quotationNumber" validate:"omitempty,max=100"`
	QuotationPrice    *float64        `json:"quotationPrice" validate:"omitempty,gte=0"`
	DueDate           *string         `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PIC               *string         `json:"pic" validate:"omitempty,max=255"`
	TenderStatus      *TenderStatus   `json:"tenderStatus"`
	Factory           *string         `json:"factory"`
	RemarksKontraktor *string         `json:"remarksKontraktor"`
	RemarksPrinciple  *string         `json:"remarksPrinciple"`
	RemarksAi         *string         `json:"remarksAi"`
	Insulator         *string         `json:"insulator"`
	Remarks           *string         `json:"remarks"`
	BastNumber        *string         `json:"bastNumber" validate:"omitempty,max=100"`
	Checklist         *DocChecklist   `json:"checklist"`
	TenderExpenses    *TenderExpenses `json:"tenderExpenses"`
}

// ProjectDTO is a project with its derived progress
type ProjectDTO struct {
	Project
	Progress      Progress `json:"progress"`
	ExpensesTotal float64  `json:"expensesTotal"`
	CanEdit       bool     `json:"canEdit"`
}

// ============================================================================
// Milestone DTOs
// ============================================================================

type CreateMilestoneRequest struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Status      MilestoneStatus   `json:"status"`
	Priority    MilestonePriority `json:"priority"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	StartDate   *string           `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate     *string           `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateMilestoneRequest struct {
	Name        *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Status      *MilestoneStatus   `json:"status"`
	Priority    *MilestonePriority `json:"priority"`
	Description *string            `json:"description"`
	Tags        *[]string          `json:"tags"`
	StartDate   *string            `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate     *string            `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type SubMilestoneRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ============================================================================
// Comment / Notification DTOs
// ============================================================================

type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required"`
	ParentID *string `json:"parentId"`
}

type UnreadCountDTO struct {
	Count int `json:"count"`
}

// ============================================================================
// Checklist DTOs
// ============================================================================

type CreateChecklistRequest struct {
	Org         Org            `json:"org" validate:"required,oneof=INA AI"`
	Name        string         `json:"name" validate:"required,max=255"`
	Description string         `json:"description"`
	Items       ChecklistItems `json:"items"`
	Approvers   Approvers      `json:"approvers"`
}

type UpdateChecklistRequest struct {
	Name         *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string         `json:"description"`
	Items        *ChecklistItems `json:"items"`
	Approvers    *Approvers      `json:"approvers"`
	Deficiencies *string         `json:"deficiencies"`
}

// ============================================================================
// Local store / file DTOs
// ============================================================================

type DBPathRequest struct {
	Path string `json:"path" validate:"required"`
}

type AddYearRequest struct {
	Year     int       `json:"year" validate:"required,gte=2000,lte=2100"`
	Document *Document `json:"document"`
}

type AttachFileRequest struct {
	ItemID     string `json:"itemId" validate:"required"`
	SourcePath string `json:"sourcePath" validate:"required"`
}

type OpenFileRequest struct {
	FilePath string `json:"filePath" validate:"required"`
}

type ExportZipRequest struct {
	Files    []AttachedFile `json:"files" validate:"required,min=1"`
	DestPath string         `json:"destPath" validate:"required"`
}

type ReadAccessDBRequest struct {
	FilePath string `json:"filePath" validate:"required"`
}
