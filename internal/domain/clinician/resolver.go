// Package clinician resolves free-text clinician queries against the
// directory and assigns the results to procedure roles.
package clinician

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/lookup"
)

// QueryKind says how a raw query is interpreted.
type QueryKind int

const (
	QueryNone QueryKind = iota
	QueryIdentifier
	QueryName
)

// Outcome is the branch the search step takes.
type Outcome int

const (
	NotFound Outcome = iota
	Unique
	Ambiguous
)

// Result carries the matches in display order.
type Result struct {
	Matches []catalog.Clinician
}

func (r Result) Outcome() Outcome {
	switch len(r.Matches) {
	case 0:
		return NotFound
	case 1:
		return Unique
	}
	return Ambiguous
}

// Directory is the read side of the catalog the resolver needs.
type Directory interface {
	Clinicians() []catalog.Clinician
	ClinicianByGMC(gmc string) (catalog.Clinician, error)
}

// Resolver matches queries against a clinician directory.
type Resolver struct {
	dir  Directory
	lang language.Tag
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir, lang: language.BritishEnglish}
}

// Classify reports whether raw is a registration number, a name, or empty.
// Any query containing a digit is treated as a registration number.
func Classify(raw string) QueryKind {
	if lookup.NormalizeIdentifier(raw, lookup.KindRegistration) != "" {
		return QueryIdentifier
	}
	if lookup.NormalizeIdentifier(raw, lookup.KindText) != "" {
		return QueryName
	}
	return QueryNone
}

// Resolve returns every clinician matching raw. Registration numbers match
// exactly. A single name token matches the full, first or last name as a
// substring; multiple tokens must all appear in the full name.
func (r *Resolver) Resolve(raw string) Result {
	switch Classify(raw) {
	case QueryIdentifier:
		c, err := r.dir.ClinicianByGMC(raw)
		if err != nil {
			return Result{Matches: []catalog.Clinician{}}
		}
		return Result{Matches: []catalog.Clinician{c}}
	case QueryName:
		return Result{Matches: r.byName(raw)}
	}
	return Result{Matches: []catalog.Clinician{}}
}

func (r *Resolver) byName(raw string) []catalog.Clinician {
	tokens := strings.Fields(lookup.NormalizeIdentifier(raw, lookup.KindText))

	matches := lo.Filter(r.dir.Clinicians(), func(c catalog.Clinician, _ int) bool {
		full := strings.ToLower(c.FullName())
		if len(tokens) == 1 {
			t := tokens[0]
			return strings.Contains(full, t) ||
				strings.Contains(strings.ToLower(c.FirstName), t) ||
				strings.Contains(strings.ToLower(c.LastName), t)
		}
		for _, t := range tokens {
			if !strings.Contains(full, t) {
				return false
			}
		}
		return true
	})

	// collate.Collator keeps scratch buffers, so one per call.
	col := collate.New(r.lang, collate.IgnoreCase)
	sort.SliceStable(matches, func(i, j int) bool {
		return col.CompareString(matches[i].FullName(), matches[j].FullName()) < 0
	})

	return lo.UniqBy(matches, catalog.Clinician.Key)
}
