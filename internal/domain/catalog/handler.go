package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/pkg/pagination"
)

// MaxDiagnosisResults caps the diagnosis autocomplete list.
const MaxDiagnosisResults = 20

// Handler serves the reference tables for the autocomplete widgets.
type Handler struct {
	cat *Catalog
}

func NewHandler(cat *Catalog) *Handler {
	return &Handler{cat: cat}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/catalog")
	g.GET("/diagnoses", h.SearchDiagnoses)
	g.GET("/devices", h.SearchDevices)
	g.GET("/asa", h.ListASA)
	g.GET("/lateralities", h.ListLateralities)
	g.GET("/outcomes", h.ListOutcomes)
}

// SearchDiagnoses handles GET /api/v1/catalog/diagnoses?q=...
func (h *Handler) SearchDiagnoses(c echo.Context) error {
	results := h.cat.SearchDiagnoses(c.QueryParam("q"), MaxDiagnosisResults)
	return c.JSON(http.StatusOK, results)
}

// SearchDevices handles GET /api/v1/catalog/devices?q=...
func (h *Handler) SearchDevices(c echo.Context) error {
	results := h.cat.SearchDevices(c.QueryParam("q"))
	return c.JSON(http.StatusOK, pagination.Page(results, pagination.FromContext(c)))
}

func (h *Handler) ListASA(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cat.ASAClasses())
}

func (h *Handler) ListLateralities(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cat.Lateralities())
}

func (h *Handler) ListOutcomes(c echo.Context) error {
	return c.JSON(http.StatusOK, Outcomes())
}
