// Package patient holds patient records, their recorded procedures and the
// device list derived from those procedures.
package patient

import (
	"time"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/clinician"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/device"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/lookup"
)

// Patient is identified by NHS number. Devices is derived from Procedures by
// RecomputeDevices and is never edited directly.
type Patient struct {
	NHSNumber    string              `json:"nhsNumber"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	DateOfBirth  string              `json:"dateOfBirth"`
	Sex          string              `json:"sex"`
	Address      []string            `json:"address"`
	RegisteredGP []string            `json:"registeredGp"`
	HeightCm     *float64            `json:"heightCm"`
	WeightKg     *float64            `json:"weightKg"`
	EmailAddress string              `json:"emailAddress,omitempty"`
	Procedures   []*Procedure        `json:"procedures"`
	Devices      []device.Assignment `json:"devices"`
}

// Procedure is one recorded operation. ID and RecordedAt never change after
// creation.
type Procedure struct {
	ID                          string          `json:"id"`
	RecordedAt                  time.Time       `json:"recordedAt"`
	Date                        string          `json:"date"`
	Time                        string          `json:"time"`
	PrimaryDiagnosisCode        string          `json:"primaryDiagnosisCode"`
	AdditionalDiagnosisCodes    []string        `json:"additionalDiagnosisCodes"`
	ASAClassification           string          `json:"asaClassification"`
	OperationOutcome            catalog.Outcome `json:"operationOutcome"`
	OperationOutcomeOtherDetail string          `json:"operationOutcomeOtherDetail"`
	Laterality                  string          `json:"laterality"`
	Clinicians                  clinician.Team  `json:"clinicians"`
	Devices                     device.Set      `json:"devices"`
}

// FullName is "First Last".
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Procedure returns the procedure with the given id.
func (p *Patient) Procedure(id string) (*Procedure, bool) {
	return lookup.LookupByExactKey(p.Procedures, func(pr *Procedure) string { return pr.ID }, id)
}

// RecomputeDevices rebuilds the derived device list from scratch: every
// device of every procedure, in procedure order, carrying the procedure id,
// date and inferred status.
func (p *Patient) RecomputeDevices() {
	devices := make([]device.Assignment, 0, len(p.Devices))
	for _, pr := range p.Procedures {
		for _, d := range pr.Devices {
			entry := d.Resolved(pr.OperationOutcome)
			entry.ProcedureID = pr.ID
			entry.ProcedureDate = pr.Date
			devices = append(devices, entry)
		}
	}
	p.Devices = devices
}

// Find looks a patient up by NHS number, ignoring whitespace.
func Find(patients []*Patient, nhsNumber string) (*Patient, bool) {
	return lookup.LookupByExactKey(patients, func(p *Patient) string { return p.NHSNumber }, lookup.NormalizeNHSNumber(nhsNumber))
}

// Clone deep-copies the procedure.
func (pr *Procedure) Clone() *Procedure {
	c := *pr
	c.AdditionalDiagnosisCodes = append([]string{}, pr.AdditionalDiagnosisCodes...)
	c.Clinicians = pr.Clinicians.Clone()
	c.Devices = pr.Devices.Clone()
	return &c
}

// DiagnosisCodes lists the primary code followed by the additional codes.
func (pr *Procedure) DiagnosisCodes() []string {
	codes := make([]string, 0, 1+len(pr.AdditionalDiagnosisCodes))
	if pr.PrimaryDiagnosisCode != "" {
		codes = append(codes, pr.PrimaryDiagnosisCode)
	}
	return append(codes, pr.AdditionalDiagnosisCodes...)
}
