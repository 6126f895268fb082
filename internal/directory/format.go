package directory

import (
	"fmt"
	"strings"

	"github.com/jcpao/court-directory/internal/model"
)

// DisplayName prefers the preferred name over the first name.
func DisplayName(e model.Employee) string {
	first := strings.TrimSpace(e.PreferredName)
	if first == "" {
		first = strings.TrimSpace(e.FirstName)
	}
	return first + " " + strings.TrimSpace(e.LastName)
}

// Ordinal renders n with its English ordinal suffix.  11th through 20th
// (mod 100) always take "th".
func Ordinal(n int) string {
	m := ((n % 100) + 100) % 100
	suffix := "th"
	if m < 10 || m > 20 {
		switch m % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// ServiceFact is the tenure line shown on a card; empty unless both
// values are known.
func ServiceFact(days, percentile int) string {
	if days <= 0 || percentile <= 0 {
		return ""
	}
	return fmt.Sprintf("You have been with the JCPAO for %d days, and are in the %s percentile among all active JCPAO employees!",
		days, Ordinal(percentile))
}

// FormatPhone groups a 10 digit number as XXX-XXX-XXXX.  Anything else is
// returned unchanged.
func FormatPhone(phone string) string {
	if len(phone) != 10 || !allDigits(phone) {
		return phone
	}
	return phone[:3] + "-" + phone[3:6] + "-" + phone[6:]
}

// PhoneExtension returns the four digit internal extension for numbers on
// the county exchange (816-881-xxxx), or "".
func PhoneExtension(phone string) string {
	if !strings.HasPrefix(phone, "816881") || len(phone) < 10 {
		return ""
	}
	return phone[len(phone)-4:]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Badge is the colored position tag shown under a name.
type Badge struct {
	Color string // red, orange, green, blue
	Text  string
}

var badgeByPosition = map[string]Badge{
	"Exec": {Color: "red", Text: "Executive Staff"},
	"CTA":  {Color: "orange", Text: "Chief Trial Attorney"},
	"TTL":  {Color: "green", Text: "Trial Team Leader"},
	"APA":  {Color: "blue", Text: "Assistant Prosecuting Attorney"},
}

// BadgeLegend lists the badges in the order of the color legend.
var BadgeLegend = []Badge{
	{Color: "red", Text: "Executive Staff"},
	{Color: "orange", Text: "Chief Trial Attorneys"},
	{Color: "green", Text: "Trial Team Leaders"},
	{Color: "blue", Text: "Assistant Prosecuting Attorneys"},
}

// UnitSummary joins the assigned units with " / ", spelling out Drug
// Court.  No units renders as "???".
func UnitSummary(units []string) string {
	if len(units) == 0 {
		return "???"
	}
	names := make([]string, len(units))
	for i, u := range units {
		if u == "Drug" {
			u = "Drug Court"
		}
		names[i] = u
	}
	return strings.Join(names, " / ")
}

// PositionBadge builds the badge for e.  Executives whose only unit is
// Exec get the bare "Executive Staff" badge.
func PositionBadge(e model.Employee) Badge {
	b, ok := badgeByPosition[e.Position]
	if !ok {
		return Badge{Color: "gray", Text: PositionLabel(e.Position)}
	}
	units := UnitSummary(e.AssignedUnit)
	if e.Position == "Exec" && units == "Exec" {
		return b
	}
	b.Text = b.Text + " - " + units
	return b
}
