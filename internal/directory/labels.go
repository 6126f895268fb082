package directory

// All is the "no filter" value of every dropdown.
const All = "All"

// Option is one dropdown entry.
type Option struct {
	Code  string
	Label string
}

// DirectoryPositions are the positions listed in the court directory.
var DirectoryPositions = []string{"Exec", "CTA", "TTL", "APA"}

// PositionOptions, UnitOptions and LocationOptions back the sidebar
// dropdowns in display order.
var (
	PositionOptions = []Option{
		{All, "All Job Positions"},
		{"Exec", "Executive Staff"},
		{"CTA", "Chief Trial Attorneys"},
		{"TTL", "Team Trial Leaders"},
		{"APA", "Assistant Prosecuting Attorneys"},
	}
	UnitOptions = []Option{
		{All, "All Units"},
		{"Exec", "Executive Staff"},
		{"GCU", "General Crimes Unit (GCU)"},
		{"SVU", "Special Victims Unit (SVU)"},
		{"VCU", "Violent Crimes Unit (VCU)"},
		{"CSU", "Crime Strategies Unit (CSU)"},
		{"Drug", "Drug Court"},
		{"FSD", "Family Support Division"},
		{"WARRANT", "Warrant Desk"},
	}
	LocationOptions = []Option{
		{All, "All Office Locations"},
		{"Dt-11", "Downtown Courthouse, 11th floor"},
		{"Dt-10", "Downtown Courthouse, 10th floor"},
		{"Dt-7M", "Downtown Courthouse, 7M"},
		{"Indy", "Eastern Jackson Courthouse, Independence"},
		{"FSD", "Family Support Division"},
	}
)

// Dt-9 is no longer offered as a filter but still appears on older records.
var extraLocations = []Option{{"Dt-9", "Downtown Courthouse, 9th floor (COMBAT)"}}

func lookup(code string, sets ...[]Option) string {
	for _, set := range sets {
		for _, o := range set {
			if o.Code == code {
				return o.Label
			}
		}
	}
	return code
}

// PositionLabel maps a position code to its dropdown label.  Unknown
// codes map to themselves.
func PositionLabel(code string) string { return lookup(code, PositionOptions) }

// UnitLabel maps a unit code to its dropdown label.
func UnitLabel(code string) string { return lookup(code, UnitOptions) }

// LocationLabel maps an office location code to the full office name.
func LocationLabel(code string) string { return lookup(code, LocationOptions, extraLocations) }
