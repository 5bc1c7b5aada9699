// Package procedure turns a session draft into a recorded procedure, either
// as a new record or by editing an existing one in place.
package procedure

import (
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/clinician"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/device"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/patient"
)

// Draft accumulates procedure fields across workflow steps. DiagnosisCodes
// holds the primary code at index 0 followed by additional codes.
type Draft struct {
	Date                        string          `json:"date"`
	DateDay                     string          `json:"dateDay"`
	DateMonth                   string          `json:"dateMonth"`
	DateYear                    string          `json:"dateYear"`
	Time                        string          `json:"time"`
	DiagnosisCodes              []string        `json:"diagnosisCodes"`
	ASAClassification           string          `json:"asaClassification"`
	OperationOutcome            catalog.Outcome `json:"operationOutcome"`
	OperationOutcomeOtherDetail string          `json:"operationOutcomeOtherDetail"`
	Laterality                  string          `json:"laterality"`
	Clinicians                  clinician.Team  `json:"clinicians"`
	Devices                     device.Set      `json:"devices"`
}

// NewDraft returns an empty draft with non-nil collections.
func NewDraft() Draft {
	return Draft{
		DiagnosisCodes: []string{},
		Clinicians:     clinician.Team{LeadSurgeons: []catalog.Clinician{}},
		Devices:        device.Set{},
	}
}

// Seed fills a draft from an existing procedure so that saving it unchanged
// reproduces the procedure.
func Seed(pr *patient.Procedure) Draft {
	c := pr.Clone()
	codes := []string{}
	if c.PrimaryDiagnosisCode != "" || len(c.AdditionalDiagnosisCodes) > 0 {
		codes = append(codes, c.PrimaryDiagnosisCode)
		codes = append(codes, c.AdditionalDiagnosisCodes...)
	}
	return Draft{
		Date:                        c.Date,
		Time:                        c.Time,
		DiagnosisCodes:              codes,
		ASAClassification:           c.ASAClassification,
		OperationOutcome:            c.OperationOutcome,
		OperationOutcomeOtherDetail: c.OperationOutcomeOtherDetail,
		Laterality:                  c.Laterality,
		Clinicians:                  c.Clinicians,
		Devices:                     c.Devices,
	}
}

// PrimaryDiagnosis is the first accumulated code, or "".
func (d *Draft) PrimaryDiagnosis() string {
	if len(d.DiagnosisCodes) == 0 {
		return ""
	}
	return d.DiagnosisCodes[0]
}

// SetPrimaryDiagnosis replaces entry 0, dropping any additional entry equal
// to the new primary code.
func (d *Draft) SetPrimaryDiagnosis(code string) {
	rest := []string{}
	if len(d.DiagnosisCodes) > 1 {
		for _, c := range d.DiagnosisCodes[1:] {
			if c != code {
				rest = append(rest, c)
			}
		}
	}
	d.DiagnosisCodes = append([]string{code}, rest...)
}

// HasDiagnosis reports whether code is already accumulated.
func (d *Draft) HasDiagnosis(code string) bool {
	for _, c := range d.DiagnosisCodes {
		if c == code {
			return true
		}
	}
	return false
}

// AddDiagnosis appends an additional code. A draft without a primary code
// keeps an empty placeholder at index 0.
func (d *Draft) AddDiagnosis(code string) {
	if len(d.DiagnosisCodes) == 0 {
		d.DiagnosisCodes = []string{""}
	}
	d.DiagnosisCodes = append(d.DiagnosisCodes, code)
}

// RemoveDiagnosis drops an additional code. The primary code is kept.
func (d *Draft) RemoveDiagnosis(code string) bool {
	for i := 1; i < len(d.DiagnosisCodes); i++ {
		if d.DiagnosisCodes[i] == code {
			d.DiagnosisCodes = append(d.DiagnosisCodes[:i:i], d.DiagnosisCodes[i+1:]...)
			return true
		}
	}
	return false
}
