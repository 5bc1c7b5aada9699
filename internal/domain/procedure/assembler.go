package procedure

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/lookup"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/patient"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/telemetry"
)

// Assembly modes.
const (
	ModeCreate = "create"
	ModeEdit   = "edit"
)

// ErrNoPatient is returned when the assembler is given no patient.
var ErrNoPatient = errors.New("no patient selected")

// Assembler builds procedures from drafts.
type Assembler struct {
	now     func() time.Time
	newID   func() string
	logger  zerolog.Logger
	metrics *telemetry.Metrics
	tracer  trace.Tracer
}

// Option customises an Assembler.
type Option func(*Assembler)

func WithClock(now func() time.Time) Option { return func(a *Assembler) { a.now = now } }
func WithIDs(newID func() string) Option { return func(a *Assembler) { a.newID = newID } }
func WithLogger(l zerolog.Logger) Option { return func(a *Assembler) { a.logger = l } }
func WithMetrics(m *telemetry.Metrics) Option { return func(a *Assembler) { a.metrics = m } }

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		now:    time.Now,
		newID:  func() string { return "proc-" + uuid.NewString() },
		logger: zerolog.Nop(),
		tracer: telemetry.Tracer(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Create appends a new procedure built from d to the patient and recomputes
// the patient's device list.
func (a *Assembler) Create(ctx context.Context, pt *patient.Patient, d Draft) (*patient.Procedure, error) {
	_, span := a.tracer.Start(ctx, "procedure.create")
	defer span.End()

	if pt == nil {
		return nil, ErrNoPatient
	}
	pr := &patient.Procedure{
		ID:         a.newID(),
		RecordedAt: a.now().UTC(),
	}
	apply(pr, d)
	pt.Procedures = append(pt.Procedures, pr)
	pt.RecomputeDevices()

	span.SetAttributes(attribute.String("procedure.id", pr.ID))
	a.metrics.ProcedureAssembled(ModeCreate)
	a.logger.Info().
		Str("procedure_id", pr.ID).
		Str("patient", pt.NHSNumber).
		Str("mode", ModeCreate).
		Msg("procedure recorded")
	return pr, nil
}

// EditInPlace overwrites every field of pr except ID and RecordedAt with the
// draft, then recomputes the patient's device list.
func (a *Assembler) EditInPlace(ctx context.Context, pt *patient.Patient, pr *patient.Procedure, d Draft) error {
	_, span := a.tracer.Start(ctx, "procedure.edit")
	defer span.End()

	if pt == nil {
		return ErrNoPatient
	}
	span.SetAttributes(attribute.String("procedure.id", pr.ID))
	apply(pr, d)
	pt.RecomputeDevices()

	a.metrics.ProcedureAssembled(ModeEdit)
	a.logger.Info().
		Str("procedure_id", pr.ID).
		Str("patient", pt.NHSNumber).
		Str("mode", ModeEdit).
		Msg("procedure updated")
	return nil
}

func apply(pr *patient.Procedure, d Draft) {
	date := lookup.NormalizeDate(d.Date)
	if date == "" && (d.DateDay != "" || d.DateMonth != "" || d.DateYear != "") {
		date = lookup.DateFromParts(d.DateDay, d.DateMonth, d.DateYear)
	}

	var primary string
	additional := []string{}
	if len(d.DiagnosisCodes) > 0 {
		primary = d.DiagnosisCodes[0]
		seen := map[string]bool{primary: true, "": true}
		for _, c := range d.DiagnosisCodes[1:] {
			if !seen[c] {
				seen[c] = true
				additional = append(additional, c)
			}
		}
	}

	pr.Date = date
	pr.Time = lookup.NormalizeTime(d.Time)
	pr.PrimaryDiagnosisCode = primary
	pr.AdditionalDiagnosisCodes = additional
	pr.ASAClassification = d.ASAClassification
	pr.OperationOutcome = d.OperationOutcome
	pr.OperationOutcomeOtherDetail = d.OperationOutcomeOtherDetail
	pr.Laterality = d.Laterality
	pr.Clinicians = d.Clinicians.Clone()
	pr.Devices = d.Devices.Clone()
}
