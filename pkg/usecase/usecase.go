package usecase

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/service/audit"
	"github.com/secmon-lab/themis/pkg/service/catalog"
	"github.com/secmon-lab/themis/pkg/service/fix"
	"github.com/secmon-lab/themis/pkg/service/report"
)

// UseCases wires the compliance services into the analysis pipeline.
type UseCases struct {
	repo      interfaces.Repository
	catalog   *catalog.Catalog
	auditor   *audit.Auditor
	suggester *fix.Suggester
	archiver  *report.Archiver
	now       func() time.Time
}

type Option func(*options)

type options struct {
	genAI    interfaces.GenAI
	archiver *report.Archiver
	now      func() time.Time
}

// WithGenAI enables AI-backed regulation parsing, auditing and fix
// generation. Without it every service runs its deterministic path.
func WithGenAI(g interfaces.GenAI) Option {
	return func(o *options) {
		o.genAI = g
	}
}

// WithReportArchiver enables report archival to Cloud Storage.
func WithReportArchiver(a *report.Archiver) Option {
	return func(o *options) {
		o.archiver = a
	}
}

// WithClock overrides the time source. Tests use this to pin dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	o := &options{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	var catalogOpts []catalog.Option
	var auditOpts []audit.Option
	var fixOpts []fix.Option
	if o.genAI != nil {
		catalogOpts = append(catalogOpts, catalog.WithGenAI(o.genAI))
		auditOpts = append(auditOpts, audit.WithGenAI(o.genAI))
		fixOpts = append(fixOpts, fix.WithGenAI(o.genAI))
	}

	return &UseCases{
		repo:      repo,
		catalog:   catalog.New(repo.Regulation(), catalogOpts...),
		auditor:   audit.New(auditOpts...),
		suggester: fix.New(fixOpts...),
		archiver:  o.archiver,
		now:       o.now,
	}
}

// Catalog exposes the regulation catalog for the HTTP controller and CLI.
func (uc *UseCases) Catalog() *catalog.Catalog {
	return uc.catalog
}
