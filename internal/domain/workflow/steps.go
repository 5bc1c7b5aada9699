package workflow

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/clinician"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/device"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/lookup"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/patient"
)

// Messages shown on the step pages.
const (
	MsgNHSNumberTooShort    = "The NHS number is too short"
	MsgEnterDate            = "Enter the date of the procedure"
	MsgSelectDiagnosis      = "Select a diagnosis code"
	MsgDuplicateDiagnosis   = "That diagnosis has already been added"
	MsgSelectPhysicalStatus = "Select the patient’s physical status"
	MsgSelectRole           = "Select the clinician’s role"
	MsgEnterClinician       = "Enter a name or GMC number"
	MsgClinicianGMCUnknown  = "We could not find a clinician with that GMC number"
	MsgClinicianNameUnknown = "We could not find a clinician with that name"
	MsgSelectClinician      = "Select a clinician"
	MsgDeviceNotFound       = "No device has been found with that barcode."
	MsgSelectDevice         = "Select a device"
	MsgDuplicateDevice      = "This device has already been added"
	MsgIncomplete           = "Complete every section before saving the procedure"
	MsgProcedureMissing     = "The procedure you were editing no longer exists"
)

// minNHSNumberLength is checked after whitespace is removed.
const minNHSNumberLength = 10

var (
	dayMonthPattern = regexp.MustCompile(`^\d{1,2}$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
)

type handleFunc func(e *Engine, ctx context.Context, st *State, f Form) (Route, *StepError)

// step is one row of the transition table. next lists every route the step
// may advance to, the first being the default. Validation failures go to
// repair unless the StepError names another page. guard, when set, must
// hold before handle runs; otherwise the step redirects to blocked and leaves
// the state alone.
type step struct {
	name         string
	repair       Route
	needsPatient bool
	guard        func(*State) bool
	blocked      Route
	next         []Route
	handle       handleFunc
}

var steps = map[Route]step{
	RouteScannerAnswer: {
		name:   "scanner-answer",
		repair: RouteRecordProcedure,
		next:   []Route{RouteTaskList},
		handle: (*Engine).scannerAnswer,
	},
	RouteHasNHSNumberAnswer: {
		name:   "has-nhs-number",
		repair: RouteHasNHSNumber,
		next:   []Route{RouteNHSNumber, RoutePatientSearch},
		handle: (*Engine).hasNHSNumberAnswer,
	},
	RouteNHSNumberAnswer: {
		name:   "nhs-number",
		repair: RouteNHSNumber,
		next:   []Route{RouteConfirmPatient, RoutePatientSearch},
		handle: (*Engine).nhsNumberAnswer,
	},
	RoutePatientInfoComplete: {
		name:         "patient-information-complete",
		repair:       RouteConfirmPatient,
		needsPatient: true,
		next:         []Route{RouteTaskList, RoutePatientProfile},
		handle:       (*Engine).patientInfoComplete,
	},
	RouteEnterWeight: {
		name:         "enter-weight",
		repair:       RouteEnterWeight,
		needsPatient: true,
		next:         []Route{RouteConfirmPatient},
		handle:       (*Engine).enterWeight,
	},
	RouteEnterHeight: {
		name:         "enter-height",
		repair:       RouteEnterHeight,
		needsPatient: true,
		next:         []Route{RouteConfirmPatient},
		handle:       (*Engine).enterHeight,
	},
	RouteEnterEmail: {
		name:         "enter-email",
		repair:       RouteEnterEmail,
		needsPatient: true,
		next:         []Route{RouteConfirmPatient},
		handle:       (*Engine).enterEmail,
	},

	RouteProcedureDate: {
		name:   "procedure-date",
		repair: RouteProcedureDate,
		next:   []Route{RouteProcedureTime},
		handle: (*Engine).procedureDate,
	},
	RouteProcedureTime: {
		name:   "procedure-time",
		repair: RouteProcedureTime,
		next:   []Route{RoutePrimaryDiagnosis},
		handle: (*Engine).procedureTime,
	},
	RoutePrimaryDiagnosis: {
		name:   "primary-diagnosis",
		repair: RoutePrimaryDiagnosis,
		next:   []Route{RouteDiagnosisSummary},
		handle: (*Engine).primaryDiagnosis,
	},
	RouteAddDiagnosis: {
		name:   "add-diagnosis",
		repair: RouteAddDiagnosis,
		next:   []Route{RouteDiagnosisSummary},
		handle: (*Engine).addDiagnosis,
	},
	RouteRemoveDiagnosis: {
		name:   "remove-diagnosis",
		repair: RouteDiagnosisSummary,
		next:   []Route{RouteDiagnosisSummary},
		handle: (*Engine).removeDiagnosis,
	},
	RouteDiagnosisSummary: {
		name:   "diagnosis-summary",
		repair: RouteDiagnosisSummary,
		next:   []Route{RoutePhysicalStatus},
		handle: advance,
	},
	RoutePhysicalStatus: {
		name:   "physical-status",
		repair: RoutePhysicalStatus,
		next:   []Route{RouteOperationDetails},
		handle: (*Engine).physicalStatus,
	},
	RouteOperationDetails: {
		name:   "operation-details",
		repair: RouteOperationDetails,
		next:   []Route{RouteOperationSummary},
		handle: (*Engine).operationDetails,
	},
	RouteOperationSummary: {
		name:   "operation-summary",
		repair: RouteOperationSummary,
		next:   []Route{RouteTaskList},
		handle: func(_ *Engine, _ context.Context, st *State, _ Form) (Route, *StepError) {
			st.ProcedureDetailsComplete = true
			return "", nil
		},
	},

	RouteClinicianSearch: {
		name:   "clinician-search",
		repair: RouteClinicianSearch,
		next:   []Route{RouteConfirmClinician, RouteSelectClinician},
		handle: (*Engine).clinicianSearch,
	},
	RouteSelectClinician: {
		name:   "select-clinician",
		repair: RouteSelectClinician,
		next:   []Route{RouteConfirmClinician},
		handle: (*Engine).selectClinician,
	},
	RouteConfirmClinician: {
		name:   "confirm-clinician",
		repair: RouteConfirmClinician,
		next:   []Route{RouteCliniciansSummary, RouteClinicianSearch},
		handle: (*Engine).confirmClinician,
	},
	RouteCliniciansSummary: {
		name:   "clinicians-summary",
		repair: RouteCliniciansSummary,
		next:   []Route{RouteTaskList},
		handle: func(_ *Engine, _ context.Context, st *State, _ Form) (Route, *StepError) {
			st.ClinicianDetailsComplete = true
			return "", nil
		},
	},

	RouteAddDevice: {
		name:   "add-device",
		repair: RouteAddDevices,
		next:   []Route{RouteScanDevice, RouteSelectDevice},
		handle: (*Engine).addDevice,
	},
	RouteScanDevice: {
		name:   "scan-device",
		repair: RouteScanDevice,
		next:   []Route{RouteConfirmDevice},
		handle: (*Engine).scanDevice,
	},
	RouteSelectDevice: {
		name:   "select-device",
		repair: RouteSelectDevice,
		next:   []Route{RouteConfirmDevice},
		handle: (*Engine).selectDevice,
	},
	RouteConfirmDevice: {
		name:   "confirm-device",
		repair: RouteConfirmDevice,
		next:   []Route{RouteAddDevices},
		handle: (*Engine).confirmDevice,
	},
	RouteRemoveDevice: {
		name:   "remove-device",
		repair: RouteAddDevices,
		next:   []Route{RouteAddDevices},
		handle: func(_ *Engine, _ context.Context, st *State, f Form) (Route, *StepError) {
			st.Draft.Devices.Remove(f.Get("udi"))
			return "", nil
		},
	},
	RouteAddDevices: {
		name:   "add-devices",
		repair: RouteAddDevices,
		next:   []Route{RouteTaskList},
		handle: func(_ *Engine, _ context.Context, st *State, _ Form) (Route, *StepError) {
			st.DeviceDetailsComplete = true
			return "", nil
		},
	},

	RouteConfirm: {
		name:         "confirm",
		repair:       RouteTaskList,
		needsPatient: true,
		guard:        (*State).CanRecord,
		blocked:      RoutePatientProfile,
		next:         []Route{RouteTaskList, RouteReturnTo},
		handle:       (*Engine).confirm,
	},
}

// Routes lists every submission route of the step table.
func Routes() []Route {
	routes := make([]Route, 0, len(steps))
	for r := range steps {
		routes = append(routes, r)
	}
	return routes
}

func advance(*Engine, context.Context, *State, Form) (Route, *StepError) {
	return "", nil
}

// check runs ozzo rules against value and turns the first failure into a
// StepError carrying the rule's message.
func check(value interface{}, rules ...validation.Rule) *StepError {
	if err := validation.Validate(value, rules...); err != nil {
		return &StepError{Message: err.Error()}
	}
	return nil
}

func field(f Form, key string) string {
	return strings.TrimSpace(f.Get(key))
}

func (e *Engine) scannerAnswer(_ context.Context, st *State, f Form) (Route, *StepError) {
	st.HasScanner = f.Get("hasScanner") == "yes"
	return "", nil
}

func (e *Engine) hasNHSNumberAnswer(_ context.Context, _ *State, f Form) (Route, *StepError) {
	if f.Get("hasNHSNumber") == "yes" {
		return RouteNHSNumber, nil
	}
	return RoutePatientSearch, nil
}

func (e *Engine) nhsNumberAnswer(_ context.Context, st *State, f Form) (Route, *StepError) {
	raw := f.Get("nhsNumber")
	st.NHSNumber = raw

	nhs := lookup.NormalizeNHSNumber(raw)
	if err := check(nhs,
		validation.Required.Error(MsgNHSNumberTooShort),
		validation.Length(minNHSNumberLength, 0).Error(MsgNHSNumberTooShort),
	); err != nil {
		return "", err
	}

	pt, ok := patient.Find(st.Patients, nhs)
	if !ok {
		return RoutePatientSearch, nil
	}
	st.SelectedPatient = pt.NHSNumber
	return RouteConfirmPatient, nil
}

func (e *Engine) patientInfoComplete(_ context.Context, st *State, _ Form) (Route, *StepError) {
	st.PatientInfoComplete = true
	if st.Journey == JourneySinglePatientView {
		return RoutePatientProfile, nil
	}
	return RouteTaskList, nil
}

// parseMeasurement reads an optional number. Blank clears the value; input
// that is not a number leaves it unchanged.
func parseMeasurement(raw string, current *float64) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return current
	}
	return &v
}

func (e *Engine) enterWeight(_ context.Context, st *State, f Form) (Route, *StepError) {
	pt, _ := st.Patient()
	pt.WeightKg = parseMeasurement(f.Get("weight"), pt.WeightKg)
	return "", nil
}

func (e *Engine) enterHeight(_ context.Context, st *State, f Form) (Route, *StepError) {
	pt, _ := st.Patient()
	pt.HeightCm = parseMeasurement(f.Get("height"), pt.HeightCm)
	return "", nil
}

func (e *Engine) enterEmail(_ context.Context, st *State, f Form) (Route, *StepError) {
	pt, _ := st.Patient()
	pt.EmailAddress = field(f, "emailAddress")
	return "", nil
}

func (e *Engine) procedureDate(_ context.Context, st *State, f Form) (Route, *StepError) {
	d := &st.Draft
	if f.Get("procedureDateToday") == "yes" {
		d.Date = lookup.FormatDisplayDate(e.now())
		d.DateDay, d.DateMonth, d.DateYear = "", "", ""
		return "", nil
	}

	day, month, year := field(f, "procedureDateDay"), field(f, "procedureDateMonth"), field(f, "procedureDateYear")
	required := validation.Required.Error(MsgEnterDate)
	dayOrMonth := validation.Match(dayMonthPattern).Error(MsgEnterDate)
	for _, part := range []string{day, month} {
		if err := check(part, required, dayOrMonth); err != nil {
			return "", err
		}
	}
	if err := check(year, required, validation.Match(yearPattern).Error(MsgEnterDate)); err != nil {
		return "", err
	}

	day, month = pad2(day), pad2(month)
	d.Date = day + "/" + month + "/" + year
	d.DateDay, d.DateMonth, d.DateYear = day, month, year
	return "", nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func (e *Engine) procedureTime(_ context.Context, st *State, f Form) (Route, *StepError) {
	st.Draft.Time = lookup.NormalizeTime(f.Get("procedureTime"))
	return "", nil
}

// diagnosisCode prefers the catalogue spelling of a submitted code.
func (e *Engine) diagnosisCode(raw string) string {
	code := strings.TrimSpace(raw)
	if dx, err := e.cat.Diagnosis(code); err == nil {
		return dx.Code
	}
	return code
}

func (e *Engine) primaryDiagnosis(_ context.Context, st *State, f Form) (Route, *StepError) {
	code := e.diagnosisCode(f.Get("primaryDiagnosisCode"))
	if err := check(code, validation.Required.Error(MsgSelectDiagnosis)); err != nil {
		return "", err
	}
	st.Draft.SetPrimaryDiagnosis(code)
	return "", nil
}

func (e *Engine) addDiagnosis(_ context.Context, st *State, f Form) (Route, *StepError) {
	code := e.diagnosisCode(f.Get("diagnosisCode"))
	if err := check(code, validation.Required.Error(MsgSelectDiagnosis)); err != nil {
		return "", err
	}
	if st.Draft.HasDiagnosis(code) {
		return "", &StepError{Message: MsgDuplicateDiagnosis}
	}
	st.Draft.AddDiagnosis(code)
	return "", nil
}

func (e *Engine) removeDiagnosis(_ context.Context, st *State, f Form) (Route, *StepError) {
	st.Draft.RemoveDiagnosis(e.diagnosisCode(f.Get("diagnosisCode")))
	return "", nil
}

func (e *Engine) physicalStatus(_ context.Context, st *State, f Form) (Route, *StepError) {
	asa := field(f, "asaClassification")
	if err := check(asa, validation.Required.Error(MsgSelectPhysicalStatus)); err != nil {
		return "", err
	}
	st.Draft.ASAClassification = asa
	return "", nil
}

func (e *Engine) operationDetails(_ context.Context, st *State, f Form) (Route, *StepError) {
	d := &st.Draft
	d.OperationOutcome = catalog.Outcome(field(f, "operationOutcome"))
	d.OperationOutcomeOtherDetail = field(f, "operationOutcomeOtherDetail")
	d.Laterality = field(f, "laterality")
	return "", nil
}

var roleValues = []interface{}{
	string(clinician.RoleResponsibleConsultant),
	string(clinician.RoleSupervisingSurgeon),
	string(clinician.RoleOperationLeadSurgeon),
}

func (e *Engine) clinicianSearch(_ context.Context, st *State, f Form) (Route, *StepError) {
	role := field(f, "clinicianRole")
	query := f.Get("clinicianSearch")
	st.ClinicianSearch = query
	st.ClinicianCandidates = nil
	st.PendingClinician = nil

	if err := check(role,
		validation.Required.Error(MsgSelectRole),
		validation.In(roleValues...).Error(MsgSelectRole),
	); err != nil {
		return "", err
	}
	st.ClinicianRole = clinician.Role(role)

	kind := clinician.Classify(query)
	if kind == clinician.QueryNone {
		return "", &StepError{Message: MsgEnterClinician}
	}

	res := e.resolver.Resolve(query)
	switch res.Outcome() {
	case clinician.NotFound:
		if kind == clinician.QueryIdentifier {
			return "", &StepError{Message: MsgClinicianGMCUnknown}
		}
		return "", &StepError{Message: MsgClinicianNameUnknown}
	case clinician.Unique:
		match := res.Matches[0]
		st.PendingClinician = &match
		return RouteConfirmClinician, nil
	}
	st.ClinicianCandidates = res.Matches
	return RouteSelectClinician, nil
}

func (e *Engine) selectClinician(_ context.Context, st *State, f Form) (Route, *StepError) {
	gmc := field(f, "selectedClinicianGmc")
	if err := check(gmc, validation.Required.Error(MsgSelectClinician)); err != nil {
		return "", err
	}
	key := catalog.Clinician{GMC: gmc}.Key()
	for _, c := range st.ClinicianCandidates {
		if c.Key() == key {
			match := c
			st.PendingClinician = &match
			return "", nil
		}
	}
	return "", &StepError{Message: MsgSelectClinician}
}

// confirmClinician assigns the pending clinician. A lead surgeon already on
// the team or past the cap is ignored without an error.
func (e *Engine) confirmClinician(_ context.Context, st *State, _ Form) (Route, *StepError) {
	if st.PendingClinician == nil || st.ClinicianRole == "" {
		return RouteClinicianSearch, nil
	}
	st.Draft.Clinicians.Assign(st.ClinicianRole, *st.PendingClinician)
	st.clearClinicianScratch()
	return RouteCliniciansSummary, nil
}

func (e *Engine) addDevice(_ context.Context, st *State, _ Form) (Route, *StepError) {
	st.clearDeviceScratch()
	if st.HasScanner {
		return RouteScanDevice, nil
	}
	return RouteSelectDevice, nil
}

func (e *Engine) scanDevice(_ context.Context, st *State, f Form) (Route, *StepError) {
	code := lookup.NormalizeIdentifier(f.Get("scannedDeviceCode"), lookup.KindDevice)
	st.ScannedDeviceCode = code
	return "", e.stageDevice(st, code, MsgDeviceNotFound)
}

func (e *Engine) selectDevice(_ context.Context, st *State, f Form) (Route, *StepError) {
	code := lookup.NormalizeIdentifier(f.Get("selectedDeviceCode"), lookup.KindDevice)
	st.SelectedDeviceCode = code
	return "", e.stageDevice(st, code, MsgSelectDevice)
}

// stageDevice looks a device code up and holds the entry for confirmation.
func (e *Engine) stageDevice(st *State, code, notFound string) *StepError {
	st.DeviceToConfirm = nil
	if err := check(code, validation.Required.Error(notFound)); err != nil {
		return err
	}
	dev, err := e.cat.DeviceByCode(code)
	if err != nil {
		return &StepError{Message: notFound}
	}
	if st.Draft.Devices.Contains(dev.UDI) {
		return &StepError{Message: MsgDuplicateDevice}
	}
	st.DeviceToConfirm = &dev
	return nil
}

func (e *Engine) confirmDevice(_ context.Context, st *State, _ Form) (Route, *StepError) {
	dev := st.DeviceToConfirm
	if dev == nil {
		return "", nil
	}
	if err := st.Draft.Devices.Add(device.NewAssignment(*dev)); errors.Is(err, device.ErrDuplicateDevice) {
		st.clearDeviceScratch()
		back := RouteSelectDevice
		if st.HasScanner {
			back = RouteScanDevice
		}
		return "", &StepError{Route: back, Message: MsgDuplicateDevice}
	}
	st.clearDeviceScratch()
	return "", nil
}

// confirm saves the draft. A seeded draft is written back onto the procedure
// it came from; otherwise a new procedure is appended once every task list
// section is complete.
func (e *Engine) confirm(ctx context.Context, st *State, _ Form) (Route, *StepError) {
	pt, _ := st.Patient()

	if st.Editing() {
		pr, ok := pt.Procedure(st.EditingProcedureID)
		if !ok {
			st.leaveEdit()
			return "", &StepError{Message: MsgProcedureMissing}
		}
		if err := e.assembler.EditInPlace(ctx, pt, pr, st.Draft); err != nil {
			return "", &StepError{Message: err.Error()}
		}
		st.LastRecordedProcedureID = pr.ID
		st.finishProcedure()
		return RouteReturnTo, nil
	}

	if !st.ReadyToConfirm() {
		return "", &StepError{Message: MsgIncomplete}
	}
	pr, err := e.assembler.Create(ctx, pt, st.Draft)
	if err != nil {
		return "", &StepError{Message: err.Error()}
	}
	st.LastRecordedProcedureID = pr.ID
	st.finishProcedure()
	return RouteTaskList, nil
}
