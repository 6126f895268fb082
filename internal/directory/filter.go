package directory

import (
	"sort"
	"strings"

	"github.com/jcpao/court-directory/internal/model"
)

// View selects how the filtered rows are rendered.
const (
	ViewMain     = "main"     // profile cards
	ViewContacts = "contacts" // compact contact table
)

// Filters is the sidebar state.  The zero value is not valid; start from
// DefaultFilters or call Normalize.
type Filters struct {
	Position string `json:"position"`
	Unit     string `json:"unit"`
	Location string `json:"location"`
	Search   string `json:"search"`
	View     string `json:"view"`
}

// DefaultFilters shows everybody as cards.
func DefaultFilters() Filters {
	return Filters{Position: All, Unit: All, Location: All, View: ViewMain}
}

// Normalize fills empty dropdowns with All and rejects unknown views.
func (f Filters) Normalize() Filters {
	if strings.TrimSpace(f.Position) == "" {
		f.Position = All
	}
	if strings.TrimSpace(f.Unit) == "" {
		f.Unit = All
	}
	if strings.TrimSpace(f.Location) == "" {
		f.Location = All
	}
	if f.View != ViewContacts {
		f.View = ViewMain
	}
	return f
}

// Reset clears every filter but keeps the selected view.
func (f Filters) Reset() Filters {
	d := DefaultFilters()
	d.View = f.Normalize().View
	return d
}

// Active reports whether any filter narrows the result.
func (f Filters) Active() bool {
	f = f.Normalize()
	return f.Position != All || f.Unit != All || f.Location != All || strings.TrimSpace(f.Search) != ""
}

// Restrict keeps the directory positions and sorts by last name, then
// first name.
func Restrict(rows []model.Employee) []model.Employee {
	keep := make(map[string]bool, len(DirectoryPositions))
	for _, p := range DirectoryPositions {
		keep[p] = true
	}
	out := make([]model.Employee, 0, len(rows))
	for _, e := range rows {
		if keep[e.Position] {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out
}

// Apply narrows rows by f: position, then unit membership, then office
// location, then a case-insensitive substring search over the name
// columns.  rows is not modified.
func Apply(rows []model.Employee, f Filters) []model.Employee {
	f = f.Normalize()
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Employee, 0, len(rows))
	for _, e := range rows {
		if f.Position != All && e.Position != f.Position {
			continue
		}
		if f.Unit != All && !e.HasUnit(f.Unit) {
			continue
		}
		if f.Location != All && e.OfficeLocation != f.Location {
			continue
		}
		if needle != "" && !nameMatches(e, needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func nameMatches(e model.Employee, needle string) bool {
	for _, v := range []string{e.FullName, e.FirstName, e.MiddleName, e.LastName, e.Suffix, e.PreferredName} {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// Contact is one row of the contact table.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Contacts projects rows to the contact table, sorted by last name.
func Contacts(rows []model.Employee) []Contact {
	sorted := make([]model.Employee, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LastName < sorted[j].LastName })

	out := make([]Contact, len(sorted))
	for i, e := range sorted {
		name := e.FullName
		if strings.TrimSpace(name) == "" {
			name = DisplayName(e)
		}
		out[i] = Contact{Name: name, Email: e.WorkEmail, Phone: FormatPhone(e.WorkPhone)}
	}
	return out
}
