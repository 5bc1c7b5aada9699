package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/clinician"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/patient"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/procedure"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/telemetry"
)

var (
	ErrUnknownRoute      = errors.New("unknown workflow route")
	ErrInvalidTransition = errors.New("invalid workflow transition")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrProcedureNotFound = errors.New("procedure not found")
)

// StepError is a validation failure. It is shown on Route, which defaults
// to the failing step's own page, and never aborts the request.
type StepError struct {
	Route   Route
	Message string
}

func (e *StepError) Error() string { return e.Message }

// Form is a submitted set of fields. url.Values satisfies it.
type Form interface {
	Get(key string) string
}

// Engine runs steps against session state. It holds only read-only
// collaborators and is safe to share between sessions.
type Engine struct {
	cat       *catalog.Catalog
	resolver  *clinician.Resolver
	assembler *procedure.Assembler
	now       func() time.Time
	logger    zerolog.Logger
	metrics   *telemetry.Metrics
	tracer    trace.Tracer
}

// Option customises an Engine.
type Option func(*Engine)

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.logger = l } }
func WithMetrics(m *telemetry.Metrics) Option { return func(e *Engine) { e.metrics = m } }

func NewEngine(cat *catalog.Catalog, assembler *procedure.Assembler, opts ...Option) *Engine {
	e := &Engine{
		cat:       cat,
		resolver:  clinician.NewResolver(cat),
		assembler: assembler,
		now:       time.Now,
		logger:    zerolog.Nop(),
		tracer:    telemetry.Tracer(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start begins a journey with a fresh state and fresh copies of the demo
// patients. It returns the state and the first page of the journey.
func (e *Engine) Start(j Journey) (*State, Route) {
	st := e.NewState()
	st.Journey = j
	e.metrics.SessionStarted()

	if j == JourneySinglePatientView {
		return st, RouteHasNHSNumber
	}
	return st, RouteRecordProcedure
}

// NewState is the state of a session that has not started a journey.
func (e *Engine) NewState() *State {
	return NewState(patient.Seed(e.cat))
}

// Dispatch applies a form submitted to route and returns the address to
// redirect to. Validation failures are stored on the state and redirect back
// to the step that shows them. Only an unknown route or a transition missing
// from the step table is returned as an error.
func (e *Engine) Dispatch(ctx context.Context, st *State, route Route, f Form) (string, error) {
	s, ok := steps[route]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, route)
	}

	ctx, span := e.tracer.Start(ctx, "workflow."+s.name)
	defer span.End()
	log := e.log(ctx)

	if s.needsPatient {
		if _, ok := st.Patient(); !ok {
			e.metrics.StepTransition(s.name, telemetry.ResultRedirect)
			log.Debug().Str("step", s.name).Str("next", string(RouteNHSNumber)).Msg("no patient selected")
			return string(RouteNHSNumber), nil
		}
	}

	if s.guard != nil && !s.guard(st) {
		e.metrics.StepTransition(s.name, telemetry.ResultRedirect)
		log.Debug().Str("step", s.name).Str("journey", string(st.Journey)).Msg("step not open to this journey")
		return st.resolve(s.blocked), nil
	}

	next, serr := s.handle(e, ctx, st, f)
	if serr != nil {
		target := serr.Route
		if target == "" {
			target = s.repair
		}
		st.setError(target, serr.Message)

		span.SetAttributes(attribute.String("workflow.error", serr.Message))
		e.metrics.StepTransition(s.name, telemetry.ResultInvalid)
		log.Debug().Str("step", s.name).Str("next", string(target)).Str("error", serr.Message).Msg("step rejected")
		return st.resolve(target), nil
	}

	st.clearError(s.repair)
	if next == "" {
		next = s.next[0]
	}
	if !lo.Contains(s.next, next) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, route, next)
	}

	e.metrics.StepTransition(s.name, telemetry.ResultAdvance)
	log.Debug().Str("step", s.name).Str("next", string(next)).Msg("step completed")
	return st.resolve(next), nil
}

// BeginEdit seeds the draft from an existing procedure and enters edit mode.
// Saving will write back to that procedure and redirect to returnTo.
func (e *Engine) BeginEdit(st *State, nhsNumber, procedureID, returnTo string) (*patient.Patient, *patient.Procedure, error) {
	pt, ok := patient.Find(st.Patients, nhsNumber)
	if !ok {
		return nil, nil, ErrPatientNotFound
	}
	pr, ok := pt.Procedure(procedureID)
	if !ok {
		return nil, nil, ErrProcedureNotFound
	}

	st.finishProcedure()
	st.SelectedPatient = pt.NHSNumber
	st.Draft = procedure.Seed(pr)
	st.EditingProcedureID = pr.ID
	st.ReturnTo = returnTo
	st.PatientInfoComplete = true
	st.ProcedureDetailsComplete = true
	st.ClinicianDetailsComplete = true
	st.DeviceDetailsComplete = true
	return pt, pr, nil
}

// Reset is the entry page of the record-procedure journey: any patient
// selection and any unsaved edit are dropped.
func (e *Engine) Reset(st *State) {
	st.leaveEdit()
	st.NHSNumber = ""
	st.SelectedPatient = ""
	st.PatientInfoComplete = false
}

func (e *Engine) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &e.logger
}
