// Package catalog resolves regulation names into structured requirement
// catalogs. Resolution order: in-memory cache, repository, generation
// backend, builtin table. The catalog never fails a lookup; unknown
// regulations resolve to an empty default with a standard fine basis.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"sync"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/repository/firestore"
	"github.com/secmon-lab/themis/pkg/repository/memory"
	"github.com/secmon-lab/themis/pkg/service/genai"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"golang.org/x/sync/singleflight"
)

//go:embed prompt/parse_regulation.md
var parsePromptTmpl string

var parsePrompt = template.Must(template.New("parse_regulation").Parse(parsePromptTmpl))

const maxRegulationTextLen = 1000

type Catalog struct {
	repo  interfaces.RegulationRepository
	genAI interfaces.GenAI

	mu    sync.RWMutex
	cache map[string]*model.Regulation
	group singleflight.Group
}

type Option func(*Catalog)

// WithGenAI enables generation-backed regulation parsing. Without it the
// catalog serves the builtin table only.
func WithGenAI(g interfaces.GenAI) Option {
	return func(c *Catalog) {
		c.genAI = g
	}
}

func New(repo interfaces.RegulationRepository, opts ...Option) *Catalog {
	c := &Catalog{
		repo:  repo,
		cache: make(map[string]*model.Regulation),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get resolves a single regulation. Concurrent lookups for the same name
// are collapsed into one resolution.
func (c *Catalog) Get(ctx context.Context, name string) *model.Regulation {
	c.mu.RLock()
	cached, ok := c.cache[name]
	c.mu.RUnlock()
	if ok {
		return cached.Clone()
	}

	v, _, _ := c.group.Do(name, func() (any, error) {
		return c.resolve(ctx, name), nil
	})
	reg := v.(*model.Regulation)

	c.mu.Lock()
	c.cache[name] = reg
	c.mu.Unlock()

	return reg.Clone()
}

// GetAll resolves multiple regulations, keyed by name.
func (c *Catalog) GetAll(ctx context.Context, names []string) map[string]*model.Regulation {
	regs := make(map[string]*model.Regulation, len(names))
	for _, name := range names {
		regs[name] = c.Get(ctx, name)
	}
	return regs
}

// Put stores a regulation in the repository and refreshes the cache.
func (c *Catalog) Put(ctx context.Context, reg *model.Regulation) error {
	if err := c.repo.Put(ctx, reg); err != nil {
		return goerr.Wrap(err, "failed to store regulation")
	}

	c.mu.Lock()
	c.cache[reg.Name] = reg.Clone()
	c.mu.Unlock()

	return nil
}

func (c *Catalog) resolve(ctx context.Context, name string) *model.Regulation {
	logger := logging.From(ctx)

	if c.repo != nil {
		reg, err := c.repo.Get(ctx, name)
		if err == nil {
			return reg
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			logger.Warn("failed to load regulation from repository",
				"name", name,
				"error", err,
			)
		}
	}

	if c.genAI != nil {
		reg, err := c.parse(ctx, name)
		if err == nil {
			if c.repo != nil {
				if err := c.repo.Put(ctx, reg); err != nil {
					logger.Warn("failed to persist parsed regulation",
						"name", name,
						"error", err,
					)
				}
			}
			return reg
		}
		logger.Warn("regulation parsing failed, using builtin catalog",
			"name", name,
			"error", err,
		)
	}

	return builtinRegulation(name)
}

type regulationPayload struct {
	Name            string `json:"regulation_name"`
	KeyRequirements []struct {
		ID       string `json:"id"`
		Text     string `json:"requirement"`
		Category string `json:"category"`
		Severity string `json:"severity"`
	} `json:"key_requirements"`
	ApplicableSystems []string `json:"applicable_systems"`
	Penalties         struct {
		MaxFinePercentage float64 `json:"max_fine_percentage"`
		Description       string  `json:"description"`
	} `json:"penalties"`
}

func (c *Catalog) parse(ctx context.Context, name string) (*model.Regulation, error) {
	text := regulationText(name)
	if len(text) > maxRegulationTextLen {
		text = text[:maxRegulationTextLen] + "..."
	}

	var buf bytes.Buffer
	if err := parsePrompt.Execute(&buf, map[string]string{
		"Name": name,
		"Text": text,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to render parse prompt")
	}

	raw, err := c.genAI.Generate(ctx, buf.String())
	if err != nil {
		return nil, goerr.Wrap(err, "generation backend failed", goerr.V("name", name))
	}

	var payload regulationPayload
	if err := json.Unmarshal([]byte(genai.ExtractJSON(raw)), &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to decode regulation JSON", goerr.V("name", name))
	}

	return payload.toModel(name), nil
}
