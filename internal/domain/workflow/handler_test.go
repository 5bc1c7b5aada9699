package workflow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/middleware"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/session"
)

// testClient drives the journey over HTTP and carries the session cookie
// between requests like a browser would.
type testClient struct {
	e       *echo.Echo
	cookies []*http.Cookie
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	sessions := session.NewManager(
		session.NewMemoryStore(),
		session.NewTokens([]byte("test-secret"), time.Hour),
		session.Config{CookieName: "registry_session", TTL: time.Hour},
		zerolog.Nop(),
	)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	g := e.Group("", sessions.Middleware())
	NewHandler(newTestEngine(), sessions, zerolog.Nop()).RegisterRoutes(g)

	return &testClient{e: e}
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rec
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *testClient) post(r Route, f url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, string(r), strings.NewReader(f.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return c.do(req)
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, to string) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected status %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != to {
		t.Fatalf("expected redirect to %s, got %s", to, loc)
	}
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) View {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var v View
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestHandler_StartPrototype(t *testing.T) {
	c := newTestClient(t)

	expectRedirect(t, c.get("/start-prototype?journey=addProcedure"), http.StatusFound, string(RouteRecordProcedure))
	if len(c.cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	expectRedirect(t, c.get("/start-prototype?journey=singlePatientView"), http.StatusFound, string(RouteHasNHSNumber))

	rec := c.get("/start-prototype?journey=somethingElse")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var body middleware.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Code != middleware.ErrorCodeValidation || body.Details["journey"] == "" {
		t.Errorf("unexpected error body: %+v", body)
	}
}

func TestHandler_StateSurvivesRequests(t *testing.T) {
	c := newTestClient(t)
	c.get("/start-prototype?journey=addProcedure")

	expectRedirect(t, c.post(RouteScannerAnswer, url.Values{"hasScanner": {"yes"}}), http.StatusSeeOther, string(RouteTaskList))
	expectRedirect(t, c.post(RouteNHSNumberAnswer, url.Values{"nhsNumber": {"912"}}), http.StatusSeeOther, string(RouteNHSNumber))

	v := decodeView(t, c.get(string(RouteNHSNumber)))
	if v.Error != MsgNHSNumberTooShort || v.NHSNumber != "912" || !v.HasScanner {
		t.Errorf("unexpected view: %+v", v)
	}

	expectRedirect(t, c.post(RouteNHSNumberAnswer, url.Values{"nhsNumber": {"912 312 3123"}}), http.StatusSeeOther, string(RouteConfirmPatient))
	v = decodeView(t, c.get(string(RouteConfirmPatient)))
	if v.Patient == nil || v.Patient.FirstName != "Jodie" {
		t.Fatalf("expected Jodie Brown, got %+v", v.Patient)
	}
	if v.Error != "" {
		t.Errorf("expected no error, got %q", v.Error)
	}

	expectRedirect(t, c.post(RouteEnterWeight, url.Values{"weight": {"61"}}), http.StatusSeeOther, string(RouteConfirmPatient))
	v = decodeView(t, c.get(string(RouteConfirmPatient)))
	if v.Patient.WeightKg == nil || *v.Patient.WeightKg != 61 {
		t.Errorf("expected weight 61, got %v", v.Patient.WeightKg)
	}

	expectRedirect(t, c.post(RouteProcedureDate, url.Values{"procedureDateToday": {"yes"}}), http.StatusSeeOther, string(RouteProcedureTime))
	v = decodeView(t, c.get(string(RouteTaskList)))
	if v.Draft == nil || v.Draft.Date != "14/05/2026" {
		t.Errorf("expected the draft date to be kept, got %+v", v.Draft)
	}
	if v.Tasks == nil || v.Tasks.CanConfirm {
		t.Errorf("unexpected task list: %+v", v.Tasks)
	}
}

func TestHandler_PageRedirects(t *testing.T) {
	c := newTestClient(t)
	c.get("/start-prototype?journey=addProcedure")

	expectRedirect(t, c.get(string(RouteConfirmPatient)), http.StatusFound, string(RouteNHSNumber))
	expectRedirect(t, c.get(string(RouteConfirmClinician)), http.StatusFound, string(RouteClinicianSearch))
	expectRedirect(t, c.post(RouteConfirm, url.Values{}), http.StatusSeeOther, string(RouteNHSNumber))
}

func TestHandler_RecordProcedureDropsPatient(t *testing.T) {
	c := newTestClient(t)
	c.get("/start-prototype?journey=addProcedure")
	c.post(RouteNHSNumberAnswer, url.Values{"nhsNumber": {"4857773456"}})

	v := decodeView(t, c.get(string(RouteRecordProcedure)))
	if v.Patient != nil {
		t.Errorf("expected no selected patient, got %s", v.Patient.NHSNumber)
	}
}

func TestHandler_Patients(t *testing.T) {
	c := newTestClient(t)

	rec := c.get("/patients/4857773456")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"lastName":"Patel"`) {
		t.Errorf("expected Alex Patel, got %s", rec.Body.String())
	}

	rec = c.get("/patients/0000000000")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	rec = c.get("/patients/9123123123/devices.xlsx")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected a workbook")
	}
}

func TestHandler_EditProcedure(t *testing.T) {
	c := newTestClient(t)
	path := ProcedurePath("9123123123", "proc-1002")

	rec := c.get(path)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var detail ProcedureDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.Editing || detail.Procedure.ID != "proc-1002" || len(detail.Diagnoses) != 2 {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	v := decodeView(t, c.get(string(RouteTaskList)))
	if !v.Editing || v.EditingProcedureID != "proc-1002" || !v.Tasks.CanConfirm {
		t.Errorf("expected edit mode on the task list, got %+v", v)
	}

	c.post(RouteOperationDetails, url.Values{"operationOutcome": {"other"}, "operationOutcomeOtherDetail": {"Revision"}, "laterality": {"R"}})
	expectRedirect(t, c.post(RouteConfirm, url.Values{}), http.StatusSeeOther, path)

	// Following the redirect opens the saved procedure in a fresh edit.
	rec = c.get(path)
	detail = ProcedureDetail{}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.Editing || detail.Procedure.OperationOutcomeOtherDetail != "Revision" {
		t.Errorf("expected edit mode seeded from the saved procedure, got %+v", detail)
	}
	expectRedirect(t, c.post(RouteConfirm, url.Values{}), http.StatusSeeOther, path)

	rec = c.get("/patients/9123123123")
	if !strings.Contains(rec.Body.String(), `"operationOutcomeOtherDetail":"Revision"`) {
		t.Errorf("expected the edited outcome to be saved, got %s", rec.Body.String())
	}

	if rec := c.get(ProcedurePath("9123123123", "proc-9999")); rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
