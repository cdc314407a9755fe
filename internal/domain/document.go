package domain

// Document is the whole-document JSON blob kept by the local store, both for
// the default document and for each year partition.
type Document struct {
	Clients  []Client  `json:"clients"`
	Projects []Project `json:"projects"`
}

// NewDocument returns an empty document with non-nil collections
func NewDocument() *Document {
	return &Document{
		Clients:  []Client{},
		Projects: []Project{},
	}
}

// IsEmpty reports whether the document holds no records
func (d *Document) IsEmpty() bool {
	return d == nil || (len(d.Clients) == 0 && len(d.Projects) == 0)
}

// Normalize replaces nil collections with empty ones so the document always
// serialises as {"clients":[],"projects":[]}
func (d *Document) Normalize() *Document {
	if d.Clients == nil {
		d.Clients = []Client{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	return d
}
