// Package workflow drives the record-procedure journey: a table of steps,
// each merging one submitted form into the session State and naming the
// next step, ending in a confirm step that hands the draft to the
// procedure assembler.
package workflow

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/clinician"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/patient"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/procedure"
)

// Journey is the top-level variant of the workflow.
type Journey string

const (
	JourneyAddProcedure      Journey = "addProcedure"
	JourneySinglePatientView Journey = "singlePatientView"
)

// ParseJourney validates the journey query parameter of start-prototype.
func ParseJourney(s string) (Journey, error) {
	err := validation.Validate(s,
		validation.Required.Error("journey is required"),
		validation.In(string(JourneyAddProcedure), string(JourneySinglePatientView)).Error("unknown journey"),
	)
	if err != nil {
		return "", validation.Errors{"journey": err}
	}
	return Journey(s), nil
}

// Route names a workflow address. Submission routes are the keys of the step
// table; the others are pages a step redirects to.
type Route string

const (
	RouteRecordProcedure Route = "/record-procedure"
	RouteTaskList        Route = "/record-procedure/task-list"
	RouteScannerAnswer   Route = "/scanner-answer"

	RouteHasNHSNumber        Route = "/record-procedure/patient/has-nhs-number"
	RouteHasNHSNumberAnswer  Route = "/has-nhs-number-answer"
	RouteNHSNumber           Route = "/record-procedure/patient/nhs-number"
	RouteNHSNumberAnswer     Route = "/nhs-number-answer"
	RoutePatientSearch       Route = "/record-procedure/patient/patient-search"
	RouteConfirmPatient      Route = "/record-procedure/patient/confirm-patient"
	RoutePatientInfoComplete Route = "/record-procedure/patient/patient-information-complete"
	RouteEnterWeight         Route = "/record-procedure/patient/enter-weight"
	RouteEnterHeight         Route = "/record-procedure/patient/enter-height"
	RouteEnterEmail          Route = "/record-procedure/patient/enter-email"

	RouteProcedureDate    Route = "/record-procedure/procedure/procedure-date"
	RouteProcedureTime    Route = "/record-procedure/procedure/procedure-time"
	RoutePrimaryDiagnosis Route = "/record-procedure/procedure/primary-diagnosis"
	RouteAddDiagnosis     Route = "/record-procedure/procedure/add-diagnosis"
	RouteRemoveDiagnosis  Route = "/record-procedure/procedure/remove-diagnosis"
	RouteDiagnosisSummary Route = "/record-procedure/procedure/diagnosis-summary"
	RoutePhysicalStatus   Route = "/record-procedure/procedure/physical-status"
	RouteOperationDetails Route = "/record-procedure/procedure/operation-details"
	RouteOperationSummary Route = "/record-procedure/procedure/operation-summary"

	RouteClinicianSearch   Route = "/record-procedure/clinician/search"
	RouteSelectClinician   Route = "/record-procedure/clinician/select-clinician"
	RouteConfirmClinician  Route = "/record-procedure/clinician/confirm-clinician"
	RouteCliniciansSummary Route = "/record-procedure/clinician/clinicians-summary"

	RouteAddDevices    Route = "/record-procedure/devices/add-devices"
	RouteAddDevice     Route = "/record-procedure/devices/add-devices/add"
	RouteScanDevice    Route = "/record-procedure/devices/scan-device"
	RouteSelectDevice  Route = "/record-procedure/devices/select-device"
	RouteConfirmDevice Route = "/record-procedure/devices/confirm-device"
	RouteRemoveDevice  Route = "/record-procedure/devices/remove-device"

	RouteConfirm Route = "/record-procedure/confirm"

	// RoutePatientProfile is expanded with the selected patient's NHS number.
	RoutePatientProfile Route = "/patients/:nhsNumber"
	// RouteReturnTo is expanded to State.ReturnTo.
	RouteReturnTo Route = "returnTo"
)

// PatientPath is the profile address of a patient.
func PatientPath(nhsNumber string) string {
	return strings.Replace(string(RoutePatientProfile), ":nhsNumber", nhsNumber, 1)
}

// ProcedurePath is the detail address that opens a procedure for editing.
func ProcedurePath(nhsNumber, procedureID string) string {
	return fmt.Sprintf("%s/procedures/%s", PatientPath(nhsNumber), procedureID)
}

// State is everything one session carries between requests. It is encoded
// as JSON into the session store after every request.
type State struct {
	Journey            Journey `json:"journey,omitempty"`
	EditingProcedureID string  `json:"editingProcedureId,omitempty"`
	ReturnTo           string  `json:"returnTo,omitempty"`
	SelectedPatient    string  `json:"selectedPatient,omitempty"`
	HasScanner         bool    `json:"hasScanner"`
	NHSNumber          string  `json:"nhsNumber,omitempty"`

	PatientInfoComplete      bool `json:"patientInfoComplete"`
	ProcedureDetailsComplete bool `json:"procedureDetailsComplete"`
	ClinicianDetailsComplete bool `json:"clinicianDetailsComplete"`
	DeviceDetailsComplete    bool `json:"deviceDetailsComplete"`

	Draft procedure.Draft `json:"draft"`

	ClinicianRole       clinician.Role      `json:"clinicianRole,omitempty"`
	ClinicianSearch     string              `json:"clinicianSearch,omitempty"`
	ClinicianCandidates []catalog.Clinician `json:"clinicianCandidates,omitempty"`
	PendingClinician    *catalog.Clinician  `json:"pendingClinician,omitempty"`

	ScannedDeviceCode  string          `json:"scannedDeviceCode,omitempty"`
	SelectedDeviceCode string          `json:"selectedDeviceCode,omitempty"`
	DeviceToConfirm    *catalog.Device `json:"deviceToConfirm,omitempty"`

	LastRecordedProcedureID string `json:"lastRecordedProcedureId,omitempty"`

	Errors   map[Route]string   `json:"errors,omitempty"`
	Patients []*patient.Patient `json:"patients"`
}

// NewState returns an empty state holding the given patients.
func NewState(patients []*patient.Patient) *State {
	return &State{
		Draft:    procedure.NewDraft(),
		Errors:   map[Route]string{},
		Patients: patients,
	}
}

// Patient returns the selected patient, if any.
func (s *State) Patient() (*patient.Patient, bool) {
	if s.SelectedPatient == "" {
		return nil, false
	}
	return patient.Find(s.Patients, s.SelectedPatient)
}

// Editing reports whether the draft was seeded from an existing procedure.
func (s *State) Editing() bool {
	return s.EditingProcedureID != ""
}

// CanRecord reports whether the state may save a procedure: an
// add-procedure journey, or an edit of an existing procedure on any journey.
func (s *State) CanRecord() bool {
	return s.Editing() || s.Journey == JourneyAddProcedure
}

// ReadyToConfirm reports whether every task list section is complete.
func (s *State) ReadyToConfirm() bool {
	return s.PatientInfoComplete && s.ProcedureDetailsComplete &&
		s.ClinicianDetailsComplete && s.DeviceDetailsComplete
}

// Error returns the message left for route by its last failed submission.
func (s *State) Error(route Route) string {
	return s.Errors[route]
}

func (s *State) setError(route Route, msg string) {
	if s.Errors == nil {
		s.Errors = map[Route]string{}
	}
	s.Errors[route] = msg
}

func (s *State) clearError(route Route) {
	delete(s.Errors, route)
}

func (s *State) clearClinicianScratch() {
	s.ClinicianRole = ""
	s.ClinicianSearch = ""
	s.ClinicianCandidates = nil
	s.PendingClinician = nil
}

// leaveEdit abandons an edit that was never saved.
func (s *State) leaveEdit() {
	if !s.Editing() {
		return
	}
	s.finishProcedure()
	s.ReturnTo = ""
}

func (s *State) clearDeviceScratch() {
	s.ScannedDeviceCode = ""
	s.SelectedDeviceCode = ""
	s.DeviceToConfirm = nil
}

// finishProcedure clears everything that belonged to the procedure just
// saved. The journey, scanner answer and selected patient stay so another
// procedure can be recorded for the same patient. ReturnTo is left for
// resolve to consume.
func (s *State) finishProcedure() {
	s.Draft = procedure.NewDraft()
	s.EditingProcedureID = ""
	s.ProcedureDetailsComplete = false
	s.ClinicianDetailsComplete = false
	s.DeviceDetailsComplete = false
	s.clearClinicianScratch()
	s.clearDeviceScratch()
	s.Errors = map[Route]string{}
}

// resolve turns a route into the address to redirect to. Resolving
// RouteReturnTo consumes ReturnTo.
func (s *State) resolve(r Route) string {
	switch r {
	case RoutePatientProfile:
		return PatientPath(s.SelectedPatient)
	case RouteReturnTo:
		to := s.ReturnTo
		s.ReturnTo = ""
		if to == "" {
			return string(RouteTaskList)
		}
		return to
	}
	return string(r)
}
