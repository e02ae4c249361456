package release

import (
	"slices"

	"github.com/liftblock/fwrelease/internal/catalog"
	"github.com/liftblock/fwrelease/internal/changelog"
)

// DefaultReferenceType is the device type whose catalog models are taken as the
// reference model list. The assumption is that every type ships the same models.
const DefaultReferenceType = "lb7"

// Report is the result of a consistency check.
type Report struct {
	ReferenceType string
	PriorVersion  int
	// Missing lists model blocks of the changelog with no catalog row at PriorVersion.
	Missing []string
	// Skipped is set when the changelog has no common block of ReferenceType.
	Skipped bool
}

// OK reports whether the check found nothing to warn about.
func (r Report) OK() bool {
	return !r.Skipped && len(r.Missing) == 0
}

// Check compares the changelog's model blocks with the models the catalog lists for
// the previous version of referenceType. The result is a warning, never an error.
func Check(doc *changelog.Document, rows []catalog.Row, m *catalog.Matcher, referenceType string) Report {
	rep := Report{ReferenceType: referenceType}

	common, ok := doc.Common.Get(referenceType)
	if !ok {
		rep.Skipped = true
		return rep
	}
	rep.PriorVersion = common.Version - 1

	rep.Missing = Difference(doc.SpecialModels(), m.ModelsAt(rows, rep.PriorVersion, referenceType))
	return rep
}

// Difference returns the distinct elements of a not present in b, sorted.
func Difference(a, b []string) []string {
	seen := make(map[string]bool, len(b))
	for _, s := range b {
		seen[s] = true
	}
	diff := []string{}
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			diff = append(diff, s)
		}
	}
	slices.Sort(diff)
	return diff
}
