package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/utils/async"
	"github.com/secmon-lab/themis/pkg/utils/logging"
)

// Analyze runs the full compliance pipeline: resolve regulations, audit
// the company, score the result, suggest fixes, assess risk and render
// the report. It never fails; any panic degrades into an error result.
func (uc *UseCases) Analyze(ctx context.Context, company *model.CompanyProfile, regulations []string) (result *model.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("compliance analysis failed", "panic", r)
			result = degradedResult(fmt.Sprintf("%v", r))
		}
	}()

	logger := logging.From(ctx)
	logger.Info("starting compliance analysis",
		"company", company.Name,
		"regulations", regulations,
	)

	parsed := uc.catalog.GetAll(ctx, regulations)

	auditResult := uc.auditor.Audit(ctx, company, parsed)

	score := round2(computeScore(auditResult))

	fixes := uc.suggester.Suggest(ctx, auditResult, company)

	riskLevel, estimatedFine := assessRisk(auditResult, company.Revenue)

	now := uc.now()
	auditReport := renderReport(company, auditResult, score, riskLevel, now)

	result = &model.AnalysisResult{
		ComplianceScore: score,
		Violations:      auditResult.Violations,
		SuggestedFixes:  fixes,
		AuditReport:     auditReport,
		RiskLevel:       riskLevel,
		EstimatedFine:   estimatedFine,
		Regulations:     regulations,
		AnalysisDate:    now.Format("2006-01-02 15:04:05"),
	}
	if result.Violations == nil {
		result.Violations = []*model.Violation{}
	}

	uc.storeAuditLog(ctx, company, result)

	logger.Info("compliance analysis completed",
		"company", company.Name,
		"score", score,
		"riskLevel", riskLevel,
		"violations", len(result.Violations),
	)

	return result
}

// storeAuditLog records the analysis outcome without blocking the caller.
func (uc *UseCases) storeAuditLog(ctx context.Context, company *model.CompanyProfile, result *model.AnalysisResult) {
	entry := &model.AuditLogEntry{
		Timestamp:       uc.now().UTC(),
		Company:         company.Name,
		ComplianceScore: result.ComplianceScore,
		RiskLevel:       result.RiskLevel,
		ViolationCount:  len(result.Violations),
		Regulations:     result.Regulations,
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		if _, err := uc.repo.AuditLog().Put(ctx, entry); err != nil {
			return goerr.Wrap(err, "failed to store audit log", goerr.V("company", entry.Company))
		}
		return nil
	})
}

// RecentAuditLogs returns the latest analysis records, newest first.
func (uc *UseCases) RecentAuditLogs(ctx context.Context, limit int) ([]*model.AuditLogEntry, error) {
	return uc.repo.AuditLog().List(ctx, limit)
}

// SaveReport archives the rendered audit report and returns its URL.
func (uc *UseCases) SaveReport(ctx context.Context, company string, result *model.AnalysisResult) (string, error) {
	if uc.archiver == nil {
		return "", goerr.New("report archival is not configured")
	}
	return uc.archiver.Save(ctx, company, uc.now(), result.AuditReport)
}

func degradedResult(errMsg string) *model.AnalysisResult {
	return &model.AnalysisResult{
		ComplianceScore: 0,
		Violations:      []*model.Violation{},
		SuggestedFixes:  []*model.Fix{},
		AuditReport:     "Analysis failed: " + errMsg,
		RiskLevel:       types.RiskLevelUnknown,
		EstimatedFine:   nil,
		Error:           errMsg,
	}
}
