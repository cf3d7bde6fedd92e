package ingest

import (
	"strings"

	"github.com/poiesic/askcampus/core"
)

// classifier rules are checked in order; the first category whose keyword
// appears in the location or title wins.
var classifiers = []struct {
	category core.Category
	keywords []string
}{
	{core.CategoryAdmissions, []string{"admission", "eligibility", "apply", "entrance"}},
	{core.CategoryPlacements, []string{"placement", "recruit", "career", "job"}},
	{core.CategoryFees, []string{"fee", "tuition", "payment", "cost"}},
	{core.CategoryHostel, []string{"hostel", "accommodation", "residence"}},
	{core.CategoryDepartment, []string{"department", "cse", "ece", "mechanical", "civil"}},
	{core.CategoryFaculty, []string{"faculty", "profile", "dr.", "professor"}},
}

// Classify assigns a coarse category from the location and title alone.
// Body text is deliberately not consulted; generic words like "fee" appear
// on nearly every page.
func Classify(location, title string) core.Category {
	location = strings.ToLower(location)
	title = strings.ToLower(title)

	for _, rule := range classifiers {
		for _, kw := range rule.keywords {
			if strings.Contains(location, kw) || strings.Contains(title, kw) {
				return rule.category
			}
		}
	}
	return core.CategoryGeneral
}
