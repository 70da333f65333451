package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/utils/errutil"
	"github.com/secmon-lab/themis/pkg/utils/logging"
)

type analyzeRequest struct {
	CompanyData    *model.CompanyProfile `json:"company_data"`
	Regulations    []string              `json:"regulations"`
	Priority       string                `json:"priority"`
	GenerateReport *bool                 `json:"generate_report"`
}

type analyzeResponse struct {
	Status          string             `json:"status"`
	ComplianceScore float64            `json:"compliance_score"`
	Violations      []*model.Violation `json:"violations"`
	SuggestedFixes  []*model.Fix       `json:"suggested_fixes"`
	AuditReport     string             `json:"audit_report"`
	RiskLevel       string             `json:"risk_level"`
	EstimatedFine   *float64           `json:"estimated_fine"`
	ReportURL       *string            `json:"report_url"`
	Timestamp       string             `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.now().Format(timeFormatISO),
		"service":   "compliance-monitor",
	})
}

func (s *Server) handleRegulations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"regulations": s.catalog.Regulations,
	})
}

func (s *Server) handleAuditLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.uc.RecentAuditLogs(r.Context(), 50)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*model.AuditLogEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"audit_logs": entries,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	s.analyze(w, r, &req)
}

func (s *Server) handleQuickCheck(w http.ResponseWriter, r *http.Request) {
	companyName := r.URL.Query().Get("company_name")
	if companyName == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("company_name is required"), http.StatusBadRequest)
		return
	}
	industry := r.URL.Query().Get("industry")
	if industry == "" {
		industry = "Technology"
	}

	s.analyze(w, r, &analyzeRequest{
		CompanyData: &model.CompanyProfile{
			Name:               companyName,
			DataCollected:      []string{"email", "name", "location"},
			StorageLocation:    "global",
			AIModelsUsed:       []string{"basic_analytics"},
			UserCount:          1000,
			Revenue:            1000000,
			ProcessingPurposes: []string{"service_delivery"},
			Industry:           industry,
		},
		Regulations: []string{"GDPR", "CCPA"},
		Priority:    "low",
	})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, req *analyzeRequest) {
	ctx := r.Context()

	if req.CompanyData == nil {
		errutil.HandleHTTP(ctx, w, goerr.New("company_data is required"), http.StatusBadRequest)
		return
	}
	if err := req.CompanyData.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	if len(req.Regulations) == 0 {
		errutil.HandleHTTP(ctx, w, goerr.New("regulations is required"), http.StatusBadRequest)
		return
	}

	result := s.uc.Analyze(ctx, req.CompanyData, req.Regulations)

	resp := &analyzeResponse{
		Status:          "completed",
		ComplianceScore: result.ComplianceScore,
		Violations:      result.Violations,
		SuggestedFixes:  result.SuggestedFixes,
		AuditReport:     result.AuditReport,
		RiskLevel:       result.RiskLevel.String(),
		EstimatedFine:   result.EstimatedFine,
		Timestamp:       s.now().Format(timeFormatISO),
	}
	if result.Error != "" {
		resp.Status = "failed"
	}

	// Reports are generated unless the request opts out.
	if resp.Status == "completed" && (req.GenerateReport == nil || *req.GenerateReport) {
		url := s.reportURL(r, req.CompanyData.Name, result)
		resp.ReportURL = &url
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) reportURL(r *http.Request, company string, result *model.AnalysisResult) string {
	url, err := s.uc.SaveReport(r.Context(), company, result)
	if err == nil {
		return url
	}
	logging.From(r.Context()).Debug("report archival unavailable, returning local path",
		"company", company,
		"error", err,
	)

	return fmt.Sprintf("/reports/%s_%s.pdf",
		strings.ToLower(company),
		s.now().Format("20060102_150405"),
	)
}

const timeFormatISO = "2006-01-02T15:04:05.000000"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Default().Error("failed to encode response", "error", err)
	}
}
