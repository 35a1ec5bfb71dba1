package server

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wellcrafted/reawaken/internal/engine"
	"github.com/wellcrafted/reawaken/internal/model"
)

func (s *Server) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "Dormant Customer Analytics API",
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "healthy",
		"features": []string{
			"file_upload",
			"data_validation",
			"dormancy_analytics",
			"report_export",
		},
	})
}

type uploadParams struct {
	AnalysisDate     string `query:"analysis_date" validate:"omitempty,datetime=2006-01-02"`
	DormantThreshold int    `query:"dormant_threshold" validate:"omitempty,gt=0"`
	PeriodMonths     int    `query:"period_months" validate:"omitempty,gt=0"`
}

func (s *Server) uploadFiles(c echo.Context) error {
	var params uploadParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&params); err != nil {
		return err
	}

	salesFile, err := c.FormFile("sales_file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sales_file is required")
	}
	planningFile, err := c.FormFile("planning_file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "planning_file is required")
	}

	if !strings.HasSuffix(strings.ToLower(salesFile.Filename), ".csv") {
		return echo.NewHTTPError(http.StatusBadRequest, "sales file must be a CSV")
	}
	if !strings.HasSuffix(strings.ToLower(planningFile.Filename), ".csv") {
		return echo.NewHTTPError(http.StatusBadRequest, "planning file must be a CSV")
	}

	cfg := s.cfg.Analysis
	if params.AnalysisDate != "" {
		asOf, parseErr := time.Parse("2006-01-02", params.AnalysisDate)
		if parseErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "analysis_date must be YYYY-MM-DD")
		}
		cfg.AsOfDate = asOf
	}
	if params.DormantThreshold > 0 {
		cfg.DormantDaysThreshold = params.DormantThreshold
	}
	if params.PeriodMonths > 0 {
		cfg.AnalysisPeriodMonths = params.PeriodMonths
	}

	jobID := uuid.NewString()

	tempDir, err := os.MkdirTemp("", "reawaken-upload-*")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stage upload")
	}
	salesPath := filepath.Join(tempDir, filepath.Base(salesFile.Filename))
	planningPath := filepath.Join(tempDir, filepath.Base(planningFile.Filename))
	if err := saveUpload(salesFile, salesPath); err != nil {
		_ = os.RemoveAll(tempDir)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save sales file")
	}
	if err := saveUpload(planningFile, planningPath); err != nil {
		_ = os.RemoveAll(tempDir)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save planning file")
	}

	s.store.CreateJob(jobID, JobFiles{
		SalesFile:    salesFile.Filename,
		PlanningFile: planningFile.Filename,
	})

	go s.process(jobID, salesPath, planningPath, cfg, tempDir)

	return c.JSON(http.StatusOK, map[string]string{
		"job_id":  jobID,
		"status":  "processing_started",
		"message": "Files uploaded successfully. Processing started.",
	})
}

// process runs one analysis job off the request path.
func (s *Server) process(jobID, salesPath, planningPath string, cfg model.AnalysisConfig, tempDir string) {
	defer func() { _ = os.RemoveAll(tempDir) }()

	s.store.SetProcessing(jobID, 10, "Starting data validation...")

	analyzer, err := engine.New(cfg)
	if err != nil {
		slog.Error("job failed", "job_id", jobID, "error", err)
		s.store.Fail(jobID, err.Error())
		return
	}

	sales, err := s.loader.LoadSales(salesPath)
	if err != nil {
		slog.Error("job failed", "job_id", jobID, "error", err)
		s.store.Fail(jobID, err.Error())
		return
	}
	planning, err := s.loader.LoadPlanning(planningPath)
	if err != nil {
		slog.Error("job failed", "job_id", jobID, "error", err)
		s.store.Fail(jobID, err.Error())
		return
	}

	s.store.SetProcessing(jobID, 30, "Validating and cleaning data...")

	result, err := analyzer.Run(sales, planning)
	if err != nil {
		slog.Error("job failed", "job_id", jobID, "error", err)
		s.store.Fail(jobID, err.Error())
		return
	}

	s.store.SetProcessing(jobID, 70, "Generating insights and analytics...")
	s.store.Complete(jobID, result)

	slog.Info("job completed",
		"job_id", jobID,
		"dormant_customers", len(result.DormantCustomers),
		"accuracy", result.DataAccuracyScore)
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

func (s *Server) processingStatus(c echo.Context) error {
	state, ok := s.store.Status(c.Param("job_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "job not found")
	}
	return c.JSON(http.StatusOK, state)
}

func (s *Server) results(c echo.Context) error {
	result, ok := s.store.Result(c.Param("job_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "results not found or processing not completed")
	}
	return c.JSON(http.StatusOK, result)
}

// customerListEntry is the compact per-customer view returned when no
// specific customer is requested.
type customerListEntry struct {
	Customer       string          `json:"customer"`
	Salesperson    string          `json:"salesperson"`
	ValueAtRisk    decimal.Decimal `json:"value_at_risk"`
	ChurnRisk      float64         `json:"churn_risk"`
	DaysSinceOrder int             `json:"days_since_order"`
}

func (s *Server) customerInsights(c echo.Context) error {
	result, ok := s.store.Result(c.Param("job_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "results not found")
	}

	if name := c.QueryParam("customer_name"); name != "" {
		for _, cust := range result.DormantCustomers {
			if cust.Customer == name {
				return c.JSON(http.StatusOK, map[string]any{
					"customer":        cust,
					"recommendations": CustomerRecommendations(cust),
				})
			}
		}
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}

	entries := make([]customerListEntry, 0, len(result.DormantCustomers))
	for _, cust := range result.DormantCustomers {
		entries = append(entries, customerListEntry{
			Customer:       cust.Customer,
			Salesperson:    cust.Salesperson,
			ValueAtRisk:    cust.TotalValue,
			ChurnRisk:      cust.ChurnRiskScore,
			DaysSinceOrder: cust.DaysSinceOrder,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"customers": entries})
}

func (s *Server) repPerformance(c echo.Context) error {
	result, ok := s.store.Result(c.Param("job_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "results not found")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"rep_summaries":        result.SalespersonSummaries,
		"performance_insights": RepPerformanceInsights(result.SalespersonSummaries),
	})
}
