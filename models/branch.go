package models

// Branch is a physical supermarket location. A branch without ParentID is a
// root (headquarters); children point at their root through ParentID.
type Branch struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LogoURL      string `json:"logoUrl"`
	Cep          string `json:"cep,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ParentID     string `json:"parentId,omitempty"`
}

func (b Branch) IsRoot() bool {
	return b.ParentID == ""
}
