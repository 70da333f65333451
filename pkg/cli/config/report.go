package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/service/report"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Report holds CLI flags for audit report archival.
type Report struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for report archival configuration
func (r *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "report-bucket",
			Usage:       "Cloud Storage bucket for audit report archival (disabled when empty)",
			Sources:     cli.EnvVars("THEMIS_REPORT_BUCKET"),
			Destination: &r.bucket,
		},
		&cli.StringFlag{
			Name:        "report-prefix",
			Usage:       "Object name prefix for archived reports",
			Value:       "reports",
			Sources:     cli.EnvVars("THEMIS_REPORT_PREFIX"),
			Destination: &r.prefix,
		},
	}
}

// Configure creates the report archiver. Returns nil when no bucket is
// configured; analysis responses then fall back to local report paths.
func (r *Report) Configure(ctx context.Context) (*report.Archiver, error) {
	if r.bucket == "" {
		return nil, nil
	}

	archiver, err := report.New(ctx, r.bucket, report.WithPrefix(r.prefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize report archiver")
	}

	logging.Default().Info("Report archival enabled", "bucket", r.bucket, "prefix", r.prefix)
	return archiver, nil
}
