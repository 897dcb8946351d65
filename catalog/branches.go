package catalog

import (
	"strings"

	"precojusto-backend/models"
)

func trimBranch(b models.Branch) models.Branch {
	b.Name = strings.TrimSpace(b.Name)
	b.City = strings.TrimSpace(b.City)
	b.ParentID = strings.TrimSpace(b.ParentID)
	b.LogoURL = strings.TrimSpace(b.LogoURL)
	b.Cep = strings.TrimSpace(b.Cep)
	b.Street = strings.TrimSpace(b.Street)
	b.Number = strings.TrimSpace(b.Number)
	b.Neighborhood = strings.TrimSpace(b.Neighborhood)
	b.State = strings.TrimSpace(b.State)
	return b
}

// checkBranch validates b against s. Only one level of nesting is allowed:
// a parent must be a root, and a branch that has children stays a root.
func (s State) checkBranch(b models.Branch) error {
	if b.Name == "" {
		return invalid("name", "branch name is required")
	}
	if b.City == "" {
		return invalid("city", "city is required")
	}
	if b.ParentID == "" {
		return nil
	}
	if b.ParentID == b.ID {
		return invalid("parentId", "a branch cannot be its own parent")
	}
	parent, ok := s.Branch(b.ParentID)
	if !ok {
		return invalid("parentId", "parent supermarket %q does not exist", b.ParentID)
	}
	if !parent.IsRoot() {
		return invalid("parentId", "parent supermarket %q is itself a branch", b.ParentID)
	}
	if b.ID != "" && s.hasChildren(b.ID) {
		return invalid("parentId", "supermarket %q has branches and cannot be nested", b.ID)
	}
	return nil
}

// AddBranch appends a branch, optionally linked under a headquarters via
// ParentID. A blank logo is inherited from the parent.
func (s State) AddBranch(b models.Branch, stamp Stamp) (State, models.Branch, error) {
	b = trimBranch(b)
	b.ID = ""
	if err := s.checkBranch(b); err != nil {
		return s, models.Branch{}, err
	}
	if b.LogoURL == "" && b.ParentID != "" {
		parent, _ := s.Branch(b.ParentID)
		b.LogoURL = parent.LogoURL
	}
	b.ID = stamp.NewID("s")

	next := s.clone()
	next.Branches = append(next.Branches, b)
	return next, b, nil
}

// UpdateBranch replaces the stored branch carrying b.ID.
func (s State) UpdateBranch(b models.Branch) (State, models.Branch, error) {
	b = trimBranch(b)
	i := s.branchIndex(b.ID)
	if i < 0 {
		return s, models.Branch{}, notFound("supermarket", b.ID)
	}
	if err := s.checkBranch(b); err != nil {
		return s, models.Branch{}, err
	}
	if b.LogoURL == "" {
		b.LogoURL = s.Branches[i].LogoURL
	}

	next := s.clone()
	next.Branches[i] = b
	return next, b, nil
}
