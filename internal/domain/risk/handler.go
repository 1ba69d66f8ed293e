package risk

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/optohealth/monitor/internal/domain/monitoring"
	"github.com/optohealth/monitor/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/:id/risk-assessment", h.Assess)
	api.GET("/patients/:id/risk-assessments", h.History)
	api.POST("/risk-assessment/demo", h.AssessDemo)
}

func (h *Handler) Assess(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	resp, err := h.svc.Assess(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// demoRequest is the demo assessment payload: raw vitals plus optional
// profile overrides.
type demoRequest struct {
	VitalSigns  *monitoring.VitalSigns `json:"vitalSigns"`
	PatientInfo DemoPatientInfo        `json:"patientInfo"`
}

func (h *Handler) AssessDemo(c echo.Context) error {
	var req demoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.svc.AssessDemo(c.Request().Context(), req.VitalSigns, req.PatientInfo)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) History(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	pg := pagination.FromContextDefault(c, DefaultHistoryLimit)
	items, err := h.svc.History(c.Request().Context(), id, pg.Limit)
	if err != nil {
		return toHTTPError(err)
	}
	if items == nil {
		items = []*RiskAssessment{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  items,
		"count": len(items),
	})
}

// toHTTPError translates pipeline errors into HTTP status codes. Scoring
// engine failures map to gateway errors since the engine is an upstream
// dependency of this service.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrPatientNotFound), errors.Is(err, ErrNoVitals):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrVitalsRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var predErr *PredictionError
	if errors.As(err, &predErr) {
		if predErr.Kind == PredictionTimeout {
			return echo.NewHTTPError(http.StatusGatewayTimeout, predErr.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, predErr.Error())
	}

	var persistErr *PersistenceError
	if errors.As(err, &persistErr) {
		return echo.NewHTTPError(http.StatusInternalServerError, persistErr.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
