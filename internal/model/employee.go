package model

// Employee represents one row of the `employee_info_view` view.  The
// view exposes human-readable column names (e.g. "Work Phone #"); the
// Column* constants below map each field to its column.  Multi-value
// columns such as Assigned Unit and Race are decoded into ordered string
// slices at the data-access boundary, so callers never see the bracketed
// text encoding.
//
// Fields:
//  FullName          – display name as maintained by HR.
//  FirstName         – legal first name.
//  MiddleName        – middle name (may be empty).
//  LastName          – legal last name.
//  Suffix            – generational suffix such as Jr. (may be empty).
//  PreferredName     – preferred first name, takes precedence when set.
//  Position          – position code (Exec, CTA, TTL, APA, ...).
//  JobTitle          – free-text job title.
//  AssignedUnit      – units the employee is assigned to.
//  OfficeLocation    – office location code (Dt-11, Indy, ...).
//  WorkEmail         – work email address.
//  WorkPhone         – work phone number as stored (digits only).
//  PhotoID           – image host identifier; empty when no photo exists.
//  Race              – self-reported race set.
//  ServiceDays       – days of service; zero when unknown.
//  ServicePercentile – service percentile among active employees; zero when unknown.
type Employee struct {
	FullName          string   // "Full Name"
	FirstName         string   // "First Name"
	MiddleName        string   // "Middle Name"
	LastName          string   // "Last Name"
	Suffix            string   // "Suffix"
	PreferredName     string   // "Preferred Name"
	Position          string   // "Position"
	JobTitle          string   // "Job Title"
	AssignedUnit      []string // "Assigned Unit"
	OfficeLocation    string   // "Office Location"
	WorkEmail         string   // "Work Email Address"
	WorkPhone         string   // "Work Phone #"
	PhotoID           string   // "PhotoID"
	Race              []string // "Race"
	ServiceDays       int      // "Service Days"
	ServicePercentile int      // "Service Percentile"
}

// Column names of employee_info_view.
const (
	ColumnFullName          = "Full Name"
	ColumnFirstName         = "First Name"
	ColumnMiddleName        = "Middle Name"
	ColumnLastName          = "Last Name"
	ColumnSuffix            = "Suffix"
	ColumnPreferredName     = "Preferred Name"
	ColumnPosition          = "Position"
	ColumnJobTitle          = "Job Title"
	ColumnAssignedUnit      = "Assigned Unit"
	ColumnOfficeLocation    = "Office Location"
	ColumnWorkEmail         = "Work Email Address"
	ColumnWorkPhone         = "Work Phone #"
	ColumnPhotoID           = "PhotoID"
	ColumnRace              = "Race"
	ColumnServiceDays       = "Service Days"
	ColumnServicePercentile = "Service Percentile"
)

// HasUnit reports whether unit is one of the employee's assigned units.
func (e Employee) HasUnit(unit string) bool {
	for _, u := range e.AssignedUnit {
		if u == unit {
			return true
		}
	}
	return false
}

// HasPhoto reports whether the employee has an image host identifier.
func (e Employee) HasPhoto() bool { return e.PhotoID != "" }
