// Package server exposes the trip ledger and the IFTA report over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iwvelando/ifta-report/internal/config"
	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/internal/importer"
	"github.com/iwvelando/ifta-report/internal/store"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/output"
	"go.uber.org/zap"
)

// Options wires the handler to its collaborators.
type Options struct {
	Logger   *zap.Logger
	Store    *store.Store
	Importer *importer.Adapter
	Advisor  Advisor
	Rates    ifta.RateTable
	Config   *Config
	Version  string
	Now      func() time.Time
}

type handler struct {
	logger        *zap.Logger
	store         *store.Store
	importer      *importer.Adapter
	advisor       Advisor
	rates         ifta.RateTable
	maxUploadSize int64
	version       string
	now           func() time.Time
}

// NewHandler constructs the gin engine that serves the trip and report API.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = defaultConfig()
	}
	rates := opts.Rates
	if rates == nil {
		rates = ifta.DefaultRates()
	}
	st := opts.Store
	if st == nil {
		st = store.New(logger)
	}
	adapter := opts.Importer
	if adapter == nil {
		adapter = importer.New(logger)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	h := &handler{
		logger:        logger,
		store:         st,
		importer:      adapter,
		advisor:       opts.Advisor,
		rates:         rates,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		now:           now,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(configureCORS(cfg.CORS.AllowedOrigins))

	api := router.Group("/api")
	api.GET("/health", h.handleHealth)
	api.GET("/version", h.handleVersion)
	api.GET("/rates", h.handleRates)
	api.GET("/trips", h.handleListTrips)
	api.POST("/trips", h.limitBody, h.handleCreateTrip)
	api.POST("/import", h.limitBody, h.handleImport)
	api.GET("/report", h.handleReport)
	api.GET("/report/pdf", h.handleReportPDF)

	limiter := newRateLimiter(cfg.RateLimit.AdvisoryPerMinute, cfg.RateLimit.AdvisoryBurst, logger)
	api.POST("/advisory", limiter.middleware(), h.handleAdvisory)

	return router
}

func (h *handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"trips":  h.store.Len(),
	})
}

func (h *handler) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.version})
}

func (h *handler) handleRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rates":   h.rates,
		"default": h.rates[ifta.DefaultJurisdiction],
	})
}

// handleListTrips returns the ledger as JSON, or as a YAML trips section
// when format=yaml is requested.
func (h *handler) handleListTrips(c *gin.Context) {
	const op = "server.handleListTrips"

	trips := h.store.Trips()
	if c.Query("format") == "yaml" {
		out, err := config.ExportLedger(trips)
		if err != nil {
			h.respondError(c, http.StatusInternalServerError, err.Error(), op)
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", out)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trips": trips,
		"count": len(trips),
	})
}

type tripResponse struct {
	Trip     ifta.Trip `json:"trip"`
	Warnings []string  `json:"warnings"`
}

func (h *handler) handleCreateTrip(c *gin.Context) {
	const op = "server.handleCreateTrip"

	var entry importer.ManualTrip
	if !h.bindJSON(c, &entry, op) {
		return
	}

	trip, err := h.importer.BuildManualTrip(entry)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.store.Append(trip)

	c.JSON(http.StatusCreated, tripResponse{Trip: trip, Warnings: warningsOrEmpty(config.TripWarnings(trip))})
}

type importRequest struct {
	TruckID string                   `json:"truckId"`
	Mileage []importer.MileageRecord `json:"mileage"`
	Fuel    []importer.FuelRecord    `json:"fuel"`
	// Sample imports the reconciled sample report instead of Mileage and Fuel.
	Sample bool `json:"sample"`
}

func (h *handler) handleImport(c *gin.Context) {
	const op = "server.handleImport"

	var req importRequest
	if !h.bindJSON(c, &req, op) {
		return
	}

	if req.Sample {
		if strings.TrimSpace(req.TruckID) == "" {
			req.TruckID = importer.DefaultTruckID
		}
		req.Mileage = importer.SampleMileage()
		req.Fuel = importer.SampleFuel()
	}

	trip, err := h.importer.BuildTrip(req.TruckID, req.Mileage, req.Fuel)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.store.Append(trip)

	c.JSON(http.StatusCreated, tripResponse{Trip: trip, Warnings: warningsOrEmpty(config.TripWarnings(trip))})
}

type reportResponse struct {
	Summary  ifta.FleetSummary      `json:"summary"`
	Rows     []ifta.TaxLiabilityRow `json:"rows"`
	Totals   ifta.Totals            `json:"totals"`
	Meta     reportMeta             `json:"meta"`
	CSV      string                 `json:"csv"`
	Warnings []string               `json:"warnings"`
	Duration string                 `json:"duration"`
}

type reportMeta struct {
	TripCount int      `json:"tripCount"`
	TruckIDs  []string `json:"truckIds"`
	Period    string   `json:"period"`
	Quarter   string   `json:"quarter,omitempty"`
}

// handleReport returns the computed report as JSON, or as CSV when
// format=csv or format=spreadsheet is requested.
func (h *handler) handleReport(c *gin.Context) {
	const op = "server.handleReport"
	start := time.Now()

	trips := h.store.Trips()
	report := ifta.Compute(trips, h.rates)
	meta := output.NewMeta(trips, h.now())

	switch format := c.Query("format"); format {
	case "", "json":
	case constants.OutputFormatCSV, constants.OutputFormatSpreadsheet:
		var buf bytes.Buffer
		if err := output.Write(&buf, format, report, meta); err != nil {
			h.respondError(c, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	default:
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("unsupported report format %q", format), op)
		return
	}

	var csvBuf bytes.Buffer
	if err := output.CsvFormat(&csvBuf, report); err != nil {
		h.respondError(c, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	duration := time.Since(start)
	h.logger.Debug("report computed",
		zap.String("op", op),
		zap.Int("trip_count", len(trips)),
		zap.Int("jurisdictions", len(report.Rows)),
		zap.Float64("estimated_tax", report.Summary.EstimatedTax),
		zap.Duration("duration", duration),
	)

	rows := report.Rows
	if rows == nil {
		rows = []ifta.TaxLiabilityRow{}
	}
	c.JSON(http.StatusOK, reportResponse{
		Summary: report.Summary,
		Rows:    rows,
		Totals:  report.Totals(),
		Meta: reportMeta{
			TripCount: meta.TripCount,
			TruckIDs:  meta.TruckIDs,
			Period:    meta.Period.String(),
			Quarter:   meta.Quarter,
		},
		CSV:      csvBuf.String(),
		Warnings: warningsOrEmpty(config.LedgerWarnings(trips, h.rates)),
		Duration: duration.String(),
	})
}

func (h *handler) handleReportPDF(c *gin.Context) {
	const op = "server.handleReportPDF"

	trips := h.store.Trips()
	report := ifta.Compute(trips, h.rates)

	var buf bytes.Buffer
	if err := output.PDFFormat(&buf, report, output.NewMeta(trips, h.now())); err != nil {
		h.respondError(c, http.StatusInternalServerError, err.Error(), op)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.DefaultPDFFile))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *handler) handleAdvisory(c *gin.Context) {
	const op = "server.handleAdvisory"

	if h.advisor == nil {
		h.respondError(c, http.StatusServiceUnavailable, "advisory service is not configured", op)
		return
	}

	insights := h.advisor.Assess(c.Request.Context(), h.store.Trips())
	c.JSON(http.StatusOK, insights)
}

// limitBody caps the request body at the configured upload size.
func (h *handler) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	c.Next()
}

func (h *handler) bindJSON(c *gin.Context, target any, op string) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondError(c *gin.Context, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("request_id", c.GetString("request_id")),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func warningsOrEmpty(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}
	return warnings
}
