package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/finkit/finproj/internal/calculation"
	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
	"github.com/finkit/finproj/internal/output"
)

// SummaryLine is one summary row with amounts formatted in the request locale
type SummaryLine struct {
	Subject     string `json:"subject"`
	FinalAmount string `json:"final_amount"`
	Contributed string `json:"contributed"`
	Earnings    string `json:"earnings"`
	Taxes       string `json:"taxes"`
	Best        bool   `json:"best"`
	Note        string `json:"note,omitempty"`
}

// CalculationResponse is the report of a single calculation plus a
// locale-formatted summary
type CalculationResponse struct {
	*domain.Report
	Locale  string        `json:"locale"`
	Summary []SummaryLine `json:"summary"`
}

// InstrumentsResponse lists the comparator's behavior tables
type InstrumentsResponse struct {
	Categories  []domain.CategoryInfo   `json:"categories"`
	ReturnTypes []domain.ReturnTypeInfo `json:"return_types"`
}

// Handler serves the calculation endpoints
type Handler struct {
	engine    *calculation.CalculationEngine
	locale    locale.Locale
	validator *RequestValidator
	metrics   *Metrics
	logger    *zap.Logger
	version   string
	started   time.Time
}

// NewHandler creates the API handler. loc is used when a request names no locale.
func NewHandler(engine *calculation.CalculationEngine, loc locale.Locale, metrics *Metrics, logger *zap.Logger, version string) *Handler {
	return &Handler{
		engine:    engine,
		locale:    loc,
		validator: NewRequestValidator(),
		metrics:   metrics,
		logger:    logger.Named("api"),
		version:   version,
		started:   time.Now(),
	}
}

// RegisterRoutes registers the API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/instruments", h.Instruments)
		r.Post("/compound", h.Compound)
		r.Post("/retirement", h.Retirement)
		r.Post("/fixed-income/compare", h.Compare)
	})
}

// scenarioRequest is implemented by every calculation request body
type scenarioRequest interface {
	Scenario(l locale.Locale) (domain.Scenario, error)
}

// Compound projects savings under up to three rate regimes
func (h *Handler) Compound(w http.ResponseWriter, r *http.Request) {
	var req CompoundRequest
	h.calculate(w, r, domain.KindCompound, &req, &req.Locale)
}

// Retirement projects the retirement plan
func (h *Handler) Retirement(w http.ResponseWriter, r *http.Request) {
	var req RetirementRequest
	h.calculate(w, r, domain.KindRetirement, &req, &req.Locale)
}

// Compare ranks two fixed-income instruments after taxes
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	h.calculate(w, r, domain.KindComparison, &req, &req.Locale)
}

// calculate decodes and validates req, runs its scenario and renders the
// report. tag points at the request's locale field.
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request, kind domain.ScenarioKind, req scenarioRequest, tag *string) {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		h.fail(w, r, kind, "invalid", FromDecodeError(err))
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.fail(w, r, kind, "invalid", err)
		return
	}

	loc := h.locale
	if *tag != "" {
		loc = locale.MustLookup(*tag)
	}

	scenario, err := req.Scenario(loc)
	if err != nil {
		h.fail(w, r, kind, "invalid", err)
		return
	}

	report, err := h.engine.RunScenarios(r.Context(), []domain.Scenario{scenario})
	if err != nil {
		outcome := "error"
		if _, ok := domain.AsValidationError(err); ok {
			outcome = "invalid"
		}
		h.fail(w, r, kind, outcome, err)
		return
	}

	h.metrics.ObserveCalculation(string(kind), "ok")
	render.JSON(w, r, CalculationResponse{Report: report, Locale: loc.Tag, Summary: summarize(report, loc)})
}

func summarize(report *domain.Report, loc locale.Locale) []SummaryLine {
	rows := output.Summarize(report)
	out := make([]SummaryLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, SummaryLine{
			Subject:     row.Subject,
			FinalAmount: loc.FormatMoney(row.FinalAmount),
			Contributed: loc.FormatMoney(row.Contributed),
			Earnings:    loc.FormatMoney(row.Earnings),
			Taxes:       loc.FormatMoney(row.Taxes),
			Best:        row.Best,
			Note:        row.Note,
		})
	}
	return out
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, kind domain.ScenarioKind, outcome string, err error) {
	apiErr := FromError(err)
	h.metrics.ObserveCalculation(string(kind), outcome)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Error("calculation failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	} else {
		h.logger.Debug("request rejected",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
	_ = render.Render(w, r, apiErr)
}

// FromDecodeError maps JSON decoding failures, keeping body-size errors apart
func FromDecodeError(err error) *APIError {
	if apiErr := FromError(err); apiErr.StatusCode == http.StatusRequestEntityTooLarge {
		return apiErr
	}
	return InvalidRequestWithError(err)
}

// Instruments lists the instrument categories and return types
func (h *Handler) Instruments(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, InstrumentsResponse{
		Categories:  domain.InstrumentCategories(),
		ReturnTypes: domain.ReturnTypes(),
	})
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"locale":  h.locale.Tag,
	})
}
