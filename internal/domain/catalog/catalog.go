// Package catalog holds the read-only reference data the workflow resolves
// against: clinicians, devices, ICD-10 codes, ASA classes and laterality codes.
package catalog

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/lookup"
)

// ErrNotFound is returned when a lookup key matches no catalog entry.
var ErrNotFound = errors.New("catalog entry not found")

// MinDiagnosisQuery is the shortest diagnosis search term that returns results.
const MinDiagnosisQuery = 2

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	clinicians   []Clinician
	devices      []Device
	diagnoses    []Diagnosis
	asaClasses   []ASAClass
	lateralities []Laterality
}

// New builds a catalog from the given tables. The slices are copied.
func New(clinicians []Clinician, devices []Device, diagnoses []Diagnosis, asa []ASAClass, lateralities []Laterality) *Catalog {
	return &Catalog{
		clinicians:   append([]Clinician(nil), clinicians...),
		devices:      append([]Device(nil), devices...),
		diagnoses:    append([]Diagnosis(nil), diagnoses...),
		asaClasses:   append([]ASAClass(nil), asa...),
		lateralities: append([]Laterality(nil), lateralities...),
	}
}

// Default returns the built-in reference data.
func Default() *Catalog {
	return New(seedClinicians, seedDevices, seedDiagnoses, seedASAClasses, seedLateralities)
}

func (c *Catalog) Clinicians() []Clinician { return append([]Clinician(nil), c.clinicians...) }
func (c *Catalog) Devices() []Device { return append([]Device(nil), c.devices...) }
func (c *Catalog) Diagnoses() []Diagnosis { return append([]Diagnosis(nil), c.diagnoses...) }
func (c *Catalog) ASAClasses() []ASAClass { return append([]ASAClass(nil), c.asaClasses...) }
func (c *Catalog) Lateralities() []Laterality { return append([]Laterality(nil), c.lateralities...) }

// ClinicianByGMC looks a clinician up by registration number. Any non-digit
// characters in gmc are ignored.
func (c *Catalog) ClinicianByGMC(gmc string) (Clinician, error) {
	key := lookup.NormalizeIdentifier(gmc, lookup.KindRegistration)
	cl, ok := lookup.LookupByExactKey(c.clinicians, Clinician.Key, key)
	if !ok {
		return Clinician{}, ErrNotFound
	}
	return cl, nil
}

// DeviceByCode resolves a scanned or selected device code. UDIs are not
// matched here.
func (c *Catalog) DeviceByCode(code string) (Device, error) {
	key := lookup.NormalizeIdentifier(code, lookup.KindDevice)
	d, ok := lookup.LookupByExactKey(c.devices, Device.CodeKey, key)
	if !ok {
		return Device{}, ErrNotFound
	}
	return d, nil
}

// DeviceByUDI resolves a device by its unique device identifier.
func (c *Catalog) DeviceByUDI(udi string) (Device, error) {
	key := lookup.NormalizeIdentifier(udi, lookup.KindDevice)
	d, ok := lookup.LookupByExactKey(c.devices, Device.UDIKey, key)
	if !ok {
		return Device{}, ErrNotFound
	}
	return d, nil
}

// Diagnosis looks up an ICD-10 code. Codes are compared case-insensitively.
func (c *Catalog) Diagnosis(code string) (Diagnosis, error) {
	key := strings.ToUpper(strings.TrimSpace(code))
	d, ok := lookup.LookupByExactKey(c.diagnoses, func(d Diagnosis) string { return d.Code }, key)
	if !ok {
		return Diagnosis{}, ErrNotFound
	}
	return d, nil
}

func (c *Catalog) ASAClass(code string) (ASAClass, error) {
	a, ok := lookup.LookupByExactKey(c.asaClasses, func(a ASAClass) string { return a.Code }, strings.TrimSpace(code))
	if !ok {
		return ASAClass{}, ErrNotFound
	}
	return a, nil
}

func (c *Catalog) Laterality(code string) (Laterality, error) {
	l, ok := lookup.LookupByExactKey(c.lateralities, func(l Laterality) string { return l.Code }, strings.TrimSpace(code))
	if !ok {
		return Laterality{}, ErrNotFound
	}
	return l, nil
}

// SearchDiagnoses returns diagnoses whose code or display text contains q,
// ignoring case, in catalog order. Queries shorter than MinDiagnosisQuery
// return nothing.
func (c *Catalog) SearchDiagnoses(q string, limit int) []Diagnosis {
	term := lookup.NormalizeIdentifier(q, lookup.KindText)
	if len([]rune(term)) < MinDiagnosisQuery {
		return []Diagnosis{}
	}
	matches := lo.Filter(c.diagnoses, func(d Diagnosis, _ int) bool {
		return strings.Contains(strings.ToLower(d.Code), term) ||
			strings.Contains(strings.ToLower(d.Display), term)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// SearchDevices matches q against device code, brand, manufacturer and
// product description.
func (c *Catalog) SearchDevices(q string) []Device {
	term := lookup.NormalizeIdentifier(q, lookup.KindText)
	if term == "" {
		return c.Devices()
	}
	return lo.Filter(c.devices, func(d Device, _ int) bool {
		for _, field := range []string{d.DeviceCode, d.BrandName, d.Manufacturer, d.ProductDescription} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}

// Stats counts the entries of each table.
type Stats struct {
	Clinicians   int `json:"clinicians"`
	Devices      int `json:"devices"`
	Diagnoses    int `json:"diagnoses"`
	ASAClasses   int `json:"asaClasses"`
	Lateralities int `json:"lateralities"`
}

func (c *Catalog) Stats() Stats {
	return Stats{
		Clinicians:   len(c.clinicians),
		Devices:      len(c.devices),
		Diagnoses:    len(c.diagnoses),
		ASAClasses:   len(c.asaClasses),
		Lateralities: len(c.lateralities),
	}
}
