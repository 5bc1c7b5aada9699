package workflow

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/clinician"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/patient"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/procedure"
)

// TaskList is the progress shown on the task list page.
type TaskList struct {
	PatientInfoComplete      bool `json:"patientInfoComplete"`
	ProcedureDetailsComplete bool `json:"procedureDetailsComplete"`
	ClinicianDetailsComplete bool `json:"clinicianDetailsComplete"`
	DeviceDetailsComplete    bool `json:"deviceDetailsComplete"`
	CanConfirm               bool `json:"canConfirm"`
}

// PatientSummary is a row of the patient search page.
type PatientSummary struct {
	NHSNumber   string `json:"nhsNumber"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
}

// View is what a page needs to render: the draft fragment, the error left
// by the last failed submission and the catalogue entries for the step.
type View struct {
	Route              Route            `json:"route"`
	Journey            Journey          `json:"journey,omitempty"`
	Editing            bool             `json:"editing"`
	EditingProcedureID string           `json:"editingProcedureId,omitempty"`
	Error              string           `json:"error,omitempty"`
	HasScanner         bool             `json:"hasScanner"`
	NHSNumber          string           `json:"nhsNumber,omitempty"`
	Patient            *patient.Patient `json:"patient,omitempty"`
	Draft              *procedure.Draft `json:"draft,omitempty"`
	Tasks              *TaskList        `json:"tasks,omitempty"`

	LastRecordedProcedureID string `json:"lastRecordedProcedureId,omitempty"`

	Patients     []PatientSummary        `json:"patients,omitempty"`
	Diagnoses    []catalog.Diagnosis     `json:"diagnoses,omitempty"`
	ASAClasses   []catalog.ASAClass      `json:"asaClasses,omitempty"`
	Outcomes     []catalog.OutcomeOption `json:"outcomes,omitempty"`
	Lateralities []catalog.Laterality    `json:"lateralities,omitempty"`

	ClinicianRole    clinician.Role      `json:"clinicianRole,omitempty"`
	ClinicianSearch  string              `json:"clinicianSearch,omitempty"`
	Candidates       []catalog.Clinician `json:"candidates,omitempty"`
	PendingClinician *catalog.Clinician  `json:"pendingClinician,omitempty"`

	DeviceToConfirm *catalog.Device  `json:"deviceToConfirm,omitempty"`
	DeviceCatalog   []catalog.Device `json:"deviceCatalog,omitempty"`
}

// viewFunc fills the step-specific part of a view. A non-empty route means
// the page cannot be shown and the client is sent there instead.
type viewFunc func(e *Engine, st *State, v *View) Route

var views = map[Route]viewFunc{
	RouteRecordProcedure: nil,
	RouteTaskList: func(_ *Engine, st *State, v *View) Route {
		v.Tasks = &TaskList{
			PatientInfoComplete:      st.PatientInfoComplete,
			ProcedureDetailsComplete: st.ProcedureDetailsComplete,
			ClinicianDetailsComplete: st.ClinicianDetailsComplete,
			DeviceDetailsComplete:    st.DeviceDetailsComplete,
			CanConfirm:               st.ReadyToConfirm() || st.Editing(),
		}
		return ""
	},
	RouteHasNHSNumber: nil,
	RouteNHSNumber:    nil,
	RoutePatientSearch: func(_ *Engine, st *State, v *View) Route {
		v.Patients = lo.Map(st.Patients, func(p *patient.Patient, _ int) PatientSummary {
			return PatientSummary{NHSNumber: p.NHSNumber, Name: p.FullName(), DateOfBirth: p.DateOfBirth}
		})
		return ""
	},
	RouteConfirmPatient: requirePatient,
	RouteEnterWeight:    requirePatient,
	RouteEnterHeight:    requirePatient,
	RouteEnterEmail:     requirePatient,

	RouteProcedureDate:    nil,
	RouteProcedureTime:    nil,
	RoutePrimaryDiagnosis: withDiagnoses,
	RouteAddDiagnosis:     withDiagnoses,
	RouteDiagnosisSummary: withDiagnoses,
	RoutePhysicalStatus: func(e *Engine, _ *State, v *View) Route {
		v.ASAClasses = e.cat.ASAClasses()
		return ""
	},
	RouteOperationDetails: withOperationOptions,
	RouteOperationSummary: func(e *Engine, st *State, v *View) Route {
		withDiagnoses(e, st, v)
		withOperationOptions(e, st, v)
		v.ASAClasses = e.cat.ASAClasses()
		return ""
	},

	RouteClinicianSearch: nil,
	RouteSelectClinician: func(_ *Engine, st *State, _ *View) Route {
		if len(st.ClinicianCandidates) == 0 {
			return RouteClinicianSearch
		}
		return ""
	},
	RouteConfirmClinician: func(_ *Engine, st *State, _ *View) Route {
		if st.PendingClinician == nil {
			return RouteClinicianSearch
		}
		return ""
	},
	RouteCliniciansSummary: nil,

	RouteAddDevices: nil,
	RouteScanDevice: nil,
	RouteSelectDevice: func(e *Engine, _ *State, v *View) Route {
		v.DeviceCatalog = e.cat.Devices()
		return ""
	},
	RouteConfirmDevice: func(_ *Engine, st *State, _ *View) Route {
		if st.DeviceToConfirm == nil {
			return RouteAddDevices
		}
		return ""
	},
}

func requirePatient(_ *Engine, st *State, _ *View) Route {
	if _, ok := st.Patient(); !ok {
		return RouteNHSNumber
	}
	return ""
}

func withDiagnoses(e *Engine, st *State, v *View) Route {
	v.Diagnoses = e.diagnoses(st.Draft.DiagnosisCodes)
	return ""
}

// diagnoses resolves codes to catalogue entries. Codes the catalogue does
// not know are returned without a label.
func (e *Engine) diagnoses(codes []string) []catalog.Diagnosis {
	return lo.Map(codes, func(code string, _ int) catalog.Diagnosis {
		if dx, err := e.cat.Diagnosis(code); err == nil {
			return dx
		}
		return catalog.Diagnosis{Code: code}
	})
}

func withOperationOptions(e *Engine, _ *State, v *View) Route {
	v.Outcomes = catalog.Outcomes()
	v.Lateralities = e.cat.Lateralities()
	return ""
}

// View builds the page for route. When the page cannot be shown in the
// current state it returns the address to redirect to instead.
func (e *Engine) View(st *State, route Route) (*View, string, error) {
	fill, ok := views[route]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownRoute, route)
	}

	draft := st.Draft
	v := &View{
		Route:                   route,
		Journey:                 st.Journey,
		Editing:                 st.Editing(),
		EditingProcedureID:      st.EditingProcedureID,
		Error:                   st.Error(route),
		HasScanner:              st.HasScanner,
		NHSNumber:               st.NHSNumber,
		Draft:                   &draft,
		LastRecordedProcedureID: st.LastRecordedProcedureID,
		ClinicianRole:           st.ClinicianRole,
		ClinicianSearch:         st.ClinicianSearch,
		Candidates:              st.ClinicianCandidates,
		PendingClinician:        st.PendingClinician,
		DeviceToConfirm:         st.DeviceToConfirm,
	}
	if pt, ok := st.Patient(); ok {
		v.Patient = pt
	}

	if fill != nil {
		if redirect := fill(e, st, v); redirect != "" {
			return nil, st.resolve(redirect), nil
		}
	}
	return v, "", nil
}

// ViewRoutes lists every page View can build.
func ViewRoutes() []Route {
	return lo.Keys(views)
}
