package catalog

import (
	"strings"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/lookup"
)

// Clinician is an entry in the clinician directory, keyed by GMC number.
type Clinician struct {
	GMC       string `db:"gmc" json:"gmc"`
	Title     string `db:"title" json:"title"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Role      string `db:"role" json:"role"`
}

// FullName is "First Last".
func (c Clinician) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DisplayName prefixes the full name with the title.
func (c Clinician) DisplayName() string {
	return strings.TrimSpace(c.Title + " " + c.FullName())
}

// Key is the normalised registration number.
func (c Clinician) Key() string {
	return lookup.NormalizeIdentifier(c.GMC, lookup.KindRegistration)
}

// Device is a device catalogue entry. DeviceCode and UDI are looked up
// independently.
type Device struct {
	DeviceCode         string `db:"device_code" json:"deviceCode"`
	UDI                string `db:"udi" json:"uniqueDeviceIdentifier"`
	Manufacturer       string `db:"manufacturer" json:"deviceManufacturer"`
	ReferenceNumber    string `db:"reference_number" json:"medicalDeviceReferenceNumber,omitempty"`
	SerialNumber       string `db:"serial_number" json:"medicalDeviceSerialNumber,omitempty"`
	LotNumber          string `db:"lot_number" json:"medicalDeviceLotNumber,omitempty"`
	Quantity           int    `db:"quantity" json:"medicalDeviceQuantity,omitempty"`
	ProductDescription string `db:"product_description" json:"productDescription,omitempty"`
	ExpiryDate         string `db:"expiry_date" json:"medicalDeviceExpiryDate,omitempty"`
	TypeDescription    string `db:"type_description" json:"typeOfDeviceDescription,omitempty"`
	GMDNDescription    string `db:"gmdn_description" json:"typeOfDeviceGmdnDescription,omitempty"`
	GMDNCode           string `db:"gmdn_code" json:"typeOfDeviceGmdnCode,omitempty"`
	BrandName          string `db:"brand_name" json:"medicalDeviceBrandOrModelName,omitempty"`
}

// CodeKey is the normalised device code.
func (d Device) CodeKey() string {
	return lookup.NormalizeIdentifier(d.DeviceCode, lookup.KindDevice)
}

// UDIKey is the normalised UDI.
func (d Device) UDIKey() string {
	return lookup.NormalizeIdentifier(d.UDI, lookup.KindDevice)
}

// Diagnosis is an ICD-10 code with its display text.
type Diagnosis struct {
	Code    string `db:"code" json:"code"`
	Display string `db:"display" json:"display"`
}

// ASAClass is an ASA physical status classification.
type ASAClass struct {
	Code        string `db:"code" json:"code"`
	Label       string `db:"label" json:"label"`
	Description string `db:"description" json:"description"`
}

// Laterality is the side of the body operated on.
type Laterality struct {
	Code  string `db:"code" json:"code"`
	Label string `db:"label" json:"label"`
}

// Outcome is the operative outcome recorded against a procedure.
type Outcome string

const (
	OutcomeImplant       Outcome = "implant"
	OutcomeReplacement   Outcome = "replacement"
	OutcomeDeviceRemoval Outcome = "device-removal"
	OutcomeOther         Outcome = "other"
)

// OutcomeOption pairs an outcome with its label for the operation details step.
type OutcomeOption struct {
	Value Outcome `json:"value"`
	Label string  `json:"label"`
}

// Outcomes lists the recognised outcomes in display order.
func Outcomes() []OutcomeOption {
	return []OutcomeOption{
		{OutcomeImplant, "Implant"},
		{OutcomeReplacement, "Replacement"},
		{OutcomeDeviceRemoval, "Device removal"},
		{OutcomeOther, "Other"},
	}
}

// Valid reports whether o is one of the recognised outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeImplant, OutcomeReplacement, OutcomeDeviceRemoval, OutcomeOther:
		return true
	}
	return false
}
