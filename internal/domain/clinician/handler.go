package clinician

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the resolver to the clinician autocomplete.
type Handler struct {
	resolver *Resolver
}

func NewHandler(r *Resolver) *Handler {
	return &Handler{resolver: r}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/catalog/clinicians", h.Search)
}

// Search handles GET /api/v1/catalog/clinicians?q=...
func (h *Handler) Search(c echo.Context) error {
	return c.JSON(http.StatusOK, h.resolver.Resolve(c.QueryParam("q")).Matches)
}
