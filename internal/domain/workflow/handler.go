package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/patient"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProcedureDetail is the page that opens a recorded procedure for editing.
type ProcedureDetail struct {
	Patient   PatientSummary      `json:"patient"`
	Procedure *patient.Procedure  `json:"procedure"`
	Diagnoses []catalog.Diagnosis `json:"diagnoses"`
	Editing   bool                `json:"editing"`
}

type Handler struct {
	engine   *Engine
	sessions *session.Manager
	logger   zerolog.Logger
}

func NewHandler(engine *Engine, sessions *session.Manager, logger zerolog.Logger) *Handler {
	return &Handler{engine: engine, sessions: sessions, logger: logger}
}

// RegisterRoutes mounts the journey on g, which must run the session
// middleware.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/start-prototype", h.StartPrototype)
	g.GET(string(RouteRecordProcedure), h.RecordProcedure)

	for _, r := range ViewRoutes() {
		if r == RouteRecordProcedure {
			continue
		}
		g.GET(string(r), h.Page(r))
	}
	for _, r := range Routes() {
		g.POST(string(r), h.Submit(r))
	}

	g.GET("/patients/:nhsNumber", h.GetPatient)
	g.GET("/patients/:nhsNumber/procedures/:procedureId", h.EditProcedure)
	g.GET("/patients/:nhsNumber/devices.xlsx", h.ExportDevices)
}

// reply writes the response once the state has been saved.
type reply func() error

func render(c echo.Context, v interface{}) reply {
	return func() error { return c.JSON(http.StatusOK, v) }
}

func redirect(c echo.Context, code int, to string) reply {
	return func() error { return c.Redirect(code, to) }
}

// withState loads the session state, runs fn, saves the state and then
// writes fn's reply. A session without stored state gets a fresh one.
func (h *Handler) withState(c echo.Context, fn func(ctx context.Context, st *State) (reply, error)) error {
	id := session.ID(c)
	ctx := h.logger.With().Str("session_id", id).Logger().WithContext(c.Request().Context())

	st := &State{}
	found, err := h.sessions.Load(ctx, id, st)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable").SetInternal(err)
	}
	if !found {
		st = h.engine.NewState()
	}

	rep, err := fn(ctx, st)
	if err != nil {
		return err
	}
	if err := h.sessions.Save(ctx, id, st); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable").SetInternal(err)
	}
	return rep()
}

// StartPrototype handles GET /start-prototype?journey=...
func (h *Handler) StartPrototype(c echo.Context) error {
	j, err := ParseJourney(c.QueryParam("journey"))
	if err != nil {
		return err
	}
	return h.withState(c, func(ctx context.Context, st *State) (reply, error) {
		fresh, first := h.engine.Start(j)
		*st = *fresh
		zerolog.Ctx(ctx).Info().Str("journey", string(j)).Msg("journey started")
		return redirect(c, http.StatusFound, string(first)), nil
	})
}

// RecordProcedure handles GET /record-procedure. It drops the selected
// patient and any unsaved edit before asking about the scanner.
func (h *Handler) RecordProcedure(c echo.Context) error {
	return h.withState(c, func(_ context.Context, st *State) (reply, error) {
		h.engine.Reset(st)
		v, _, err := h.engine.View(st, RouteRecordProcedure)
		if err != nil {
			return nil, err
		}
		return render(c, v), nil
	})
}

// Page renders the view of one step.
func (h *Handler) Page(r Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.withState(c, func(_ context.Context, st *State) (reply, error) {
			v, to, err := h.engine.View(st, r)
			if err != nil {
				return nil, err
			}
			if to != "" {
				return redirect(c, http.StatusFound, to), nil
			}
			return render(c, v), nil
		})
	}
}

// Submit dispatches a form posted to a step and redirects to the next page.
func (h *Handler) Submit(r Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
		}
		return h.withState(c, func(ctx context.Context, st *State) (reply, error) {
			next, err := h.engine.Dispatch(ctx, st, r, form)
			if err != nil {
				return nil, fmt.Errorf("dispatch %s: %w", r, err)
			}
			return redirect(c, http.StatusSeeOther, next), nil
		})
	}
}

// GetPatient handles GET /patients/:nhsNumber.
func (h *Handler) GetPatient(c echo.Context) error {
	return h.withState(c, func(_ context.Context, st *State) (reply, error) {
		pt, ok := patient.Find(st.Patients, c.Param("nhsNumber"))
		if !ok {
			return nil, echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return render(c, pt), nil
	})
}

// EditProcedure handles GET /patients/:nhsNumber/procedures/:procedureId.
// Opening a procedure seeds the draft from it; saving returns here, which
// starts a new edit from the saved values.
func (h *Handler) EditProcedure(c echo.Context) error {
	return h.withState(c, func(_ context.Context, st *State) (reply, error) {
		pt, pr, err := h.engine.BeginEdit(st, c.Param("nhsNumber"), c.Param("procedureId"), c.Request().URL.Path)
		if errors.Is(err, ErrPatientNotFound) || errors.Is(err, ErrProcedureNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		if err != nil {
			return nil, err
		}
		return render(c, ProcedureDetail{
			Patient:   PatientSummary{NHSNumber: pt.NHSNumber, Name: pt.FullName(), DateOfBirth: pt.DateOfBirth},
			Procedure: pr,
			Diagnoses: h.engine.diagnoses(pr.DiagnosisCodes()),
			Editing:   st.Editing(),
		}), nil
	})
}

// ExportDevices handles GET /patients/:nhsNumber/devices.xlsx.
func (h *Handler) ExportDevices(c echo.Context) error {
	return h.withState(c, func(_ context.Context, st *State) (reply, error) {
		pt, ok := patient.Find(st.Patients, c.Param("nhsNumber"))
		if !ok {
			return nil, echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		var buf bytes.Buffer
		if err := patient.WriteDevicesXLSX(&buf, pt); err != nil {
			return nil, fmt.Errorf("export devices: %w", err)
		}
		return func() error {
			c.Response().Header().Set(echo.HeaderContentDisposition,
				fmt.Sprintf(`attachment; filename="devices-%s.xlsx"`, pt.NHSNumber))
			return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
		}, nil
	})
}
