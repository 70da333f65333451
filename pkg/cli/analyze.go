package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/cli/config"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/service/genai"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var input string
	var output string
	var regulations []string
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Company profile JSON file ('-' for stdin)",
			Required:    true,
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the audit report to a file instead of stdout",
			Destination: &output,
		},
		&cli.StringSliceFlag{
			Name:        "regulations",
			Aliases:     []string{"r"},
			Usage:       "Regulations to check",
			Value:       []string{"GDPR", "CCPA", "AI_ACT"},
			Destination: &regulations,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Run a one-shot compliance analysis",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			company, err := loadCompanyProfile(input)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{}
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithGenAI(genai.New(llmClient)))
			}

			uc := usecase.New(repo, ucOpts...)
			result := uc.Analyze(ctx, company, regulations)
			if result.Error != "" {
				return goerr.New("analysis failed", goerr.V("error", result.Error))
			}

			printSummary(os.Stdout, company, result)

			if output != "" {
				if err := os.WriteFile(output, []byte(result.AuditReport), 0600); err != nil {
					return goerr.Wrap(err, "failed to write report", goerr.V("path", output))
				}
				fmt.Fprintf(os.Stdout, "\nReport written to %s\n", output)
			} else {
				fmt.Fprintln(os.Stdout)
				fmt.Fprintln(os.Stdout, result.AuditReport)
			}

			return nil
		},
	}
}

func loadCompanyProfile(path string) (*model.CompanyProfile, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.Open(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open input file", goerr.V("path", path))
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	var company model.CompanyProfile
	if err := json.NewDecoder(r).Decode(&company); err != nil {
		return nil, goerr.Wrap(err, "failed to decode company profile")
	}
	if err := company.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid company profile")
	}

	return &company, nil
}

var riskColors = map[types.RiskLevel]*color.Color{
	types.RiskLevelLow:      color.New(color.FgGreen, color.Bold),
	types.RiskLevelMedium:   color.New(color.FgYellow, color.Bold),
	types.RiskLevelHigh:     color.New(color.FgRed, color.Bold),
	types.RiskLevelCritical: color.New(color.FgHiRed, color.Bold),
}

func printSummary(w io.Writer, company *model.CompanyProfile, result *model.AnalysisResult) {
	scoreColor := color.New(color.FgGreen, color.Bold)
	switch {
	case result.ComplianceScore < 70:
		scoreColor = color.New(color.FgRed, color.Bold)
	case result.ComplianceScore < 90:
		scoreColor = color.New(color.FgYellow, color.Bold)
	}

	riskColor, ok := riskColors[result.RiskLevel]
	if !ok {
		riskColor = color.New(color.Bold)
	}

	fmt.Fprintf(w, "Company:          %s\n", company.Name)
	fmt.Fprintf(w, "Compliance Score: %s\n", scoreColor.Sprintf("%.2f/100", result.ComplianceScore))
	fmt.Fprintf(w, "Risk Level:       %s\n", riskColor.Sprint(result.RiskLevel))
	if result.EstimatedFine != nil {
		fmt.Fprintf(w, "Estimated Fine:   $%.2f\n", *result.EstimatedFine)
	}
	fmt.Fprintf(w, "Violations:       %d\n", len(result.Violations))

	for _, v := range result.Violations {
		fmt.Fprintf(w, "  - [%s] %s: %s\n", v.Severity, v.Regulation, v.Description)
	}
	if len(result.SuggestedFixes) > 0 {
		fmt.Fprintln(w, "Suggested Fixes:")
		for _, f := range result.SuggestedFixes {
			fmt.Fprintf(w, "  - [%s] %s (est. $%d, %dh)\n", f.Priority, f.Title, f.CostEstimateUSD, f.EstimatedTimeHours)
		}
	}
}
