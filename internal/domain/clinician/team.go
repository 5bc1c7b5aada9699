package clinician

import (
	"fmt"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
)

// Role is a clinician's part in a procedure.
type Role string

const (
	RoleResponsibleConsultant Role = "responsible-consultant"
	RoleSupervisingSurgeon    Role = "supervising-surgeon"
	RoleOperationLeadSurgeon  Role = "operation-lead-surgeon"
)

// MaxLeadSurgeons caps the operation lead surgeon list.
const MaxLeadSurgeons = 4

// ParseRole validates a submitted role value.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleResponsibleConsultant, RoleSupervisingSurgeon, RoleOperationLeadSurgeon:
		return r, nil
	}
	return "", fmt.Errorf("unknown clinician role %q", s)
}

// Label is the heading shown for the role.
func (r Role) Label() string {
	switch r {
	case RoleResponsibleConsultant:
		return "Responsible consultant"
	case RoleSupervisingSurgeon:
		return "Supervising surgeon"
	case RoleOperationLeadSurgeon:
		return "Operation lead surgeon"
	}
	return string(r)
}

// Team is the clinicians recorded against one procedure.
type Team struct {
	ResponsibleConsultant *catalog.Clinician  `json:"responsibleConsultant"`
	SupervisingSurgeon    *catalog.Clinician  `json:"supervisingSurgeon"`
	LeadSurgeons          []catalog.Clinician `json:"leadSurgeons"`
}

// Assign places c in role. Single-holder roles are overwritten. The lead
// surgeon list ignores a clinician already present and anything past
// MaxLeadSurgeons. It reports whether the team changed.
func (t *Team) Assign(role Role, c catalog.Clinician) bool {
	switch role {
	case RoleResponsibleConsultant:
		t.ResponsibleConsultant = &c
		return true
	case RoleSupervisingSurgeon:
		t.SupervisingSurgeon = &c
		return true
	case RoleOperationLeadSurgeon:
		if len(t.LeadSurgeons) >= MaxLeadSurgeons || t.HasLeadSurgeon(c.GMC) {
			return false
		}
		t.LeadSurgeons = append(t.LeadSurgeons, c)
		return true
	}
	return false
}

// HasLeadSurgeon compares normalised registration numbers.
func (t *Team) HasLeadSurgeon(gmc string) bool {
	key := catalog.Clinician{GMC: gmc}.Key()
	for _, l := range t.LeadSurgeons {
		if l.Key() == key {
			return true
		}
	}
	return false
}

// Complete reports whether every role has at least one clinician.
func (t Team) Complete() bool {
	return t.ResponsibleConsultant != nil && t.SupervisingSurgeon != nil && len(t.LeadSurgeons) > 0
}

// Clone deep-copies the team. LeadSurgeons is never nil in the copy.
func (t Team) Clone() Team {
	out := Team{LeadSurgeons: append([]catalog.Clinician{}, t.LeadSurgeons...)}
	if t.ResponsibleConsultant != nil {
		c := *t.ResponsibleConsultant
		out.ResponsibleConsultant = &c
	}
	if t.SupervisingSurgeon != nil {
		c := *t.SupervisingSurgeon
		out.SupervisingSurgeon = &c
	}
	return out
}
