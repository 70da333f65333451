package usecase

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
	"time"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

//go:embed templates/report.tmpl
var reportFS embed.FS

var reportTmpl = template.Must(
	template.New("report.tmpl").
		Funcs(template.FuncMap{
			"add": func(a, b int) int { return a + b },
		}).
		ParseFS(reportFS, "templates/report.tmpl"),
)

type reportViolation struct {
	Regulation     string
	Requirement    string
	Severity       string
	SystemAffected string
	Description    string
	Evidence       string
}

type reportData struct {
	Company       string
	Date          string
	Score         float64
	RiskLevel     string
	TotalChecks   int
	CriticalCount int
	HighCount     int
	Violations    []reportViolation
	Summary       string
}

// renderReport produces the human-readable audit report.
func renderReport(company *model.CompanyProfile, result *model.AuditResult, score float64, riskLevel types.RiskLevel, now time.Time) string {
	companyName := company.Name
	if companyName == "" {
		companyName = "Unknown Company"
	}

	data := reportData{
		Company:   companyName,
		Date:      now.Format("2006-01-02"),
		Score:     score,
		RiskLevel: strings.ToUpper(riskLevel.String()),
		Summary:   result.Summary,
	}
	data.TotalChecks = result.TotalChecks
	if data.Summary == "" {
		data.Summary = "No specific recommendations provided."
	}

	for _, v := range result.Violations {
		switch v.Severity {
		case types.SeverityCritical:
			data.CriticalCount++
		case types.SeverityHigh:
			data.HighCount++
		}

		rv := reportViolation{
			Regulation:     v.Regulation,
			Requirement:    v.Requirement,
			Severity:       strings.ToUpper(v.Severity.String()),
			SystemAffected: v.SystemAffected,
			Description:    v.Description,
			Evidence:       v.Evidence,
		}
		if rv.Regulation == "" {
			rv.Regulation = "Unknown"
		}
		if rv.SystemAffected == "" {
			rv.SystemAffected = "N/A"
		}
		if rv.Description == "" {
			rv.Description = "No description"
		}
		if rv.Evidence == "" {
			rv.Evidence = "No evidence provided"
		}
		data.Violations = append(data.Violations, rv)
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return "Report generation failed: " + err.Error()
	}

	return strings.TrimSpace(buf.String())
}
