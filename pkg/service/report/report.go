// Package report archives rendered audit reports to Cloud Storage so
// that analysis responses can hand back a durable report URL.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/utils/safe"
)

type Archiver struct {
	client *storage.Client
	bucket string
	prefix string
}

type Option func(*Archiver)

func WithPrefix(prefix string) Option {
	return func(a *Archiver) {
		a.prefix = strings.Trim(prefix, "/")
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*Archiver, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	a := &Archiver{
		client: client,
		bucket: bucket,
		prefix: "reports",
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Save writes the report and returns its gs:// URL. The object name is
// derived from the company name and timestamp.
func (a *Archiver) Save(ctx context.Context, company string, timestamp time.Time, report string) (string, error) {
	name := fmt.Sprintf("%s/%s_%s.txt",
		a.prefix,
		sanitize(company),
		timestamp.UTC().Format("20060102T150405Z"),
	)

	w := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"
	if _, err := w.Write([]byte(report)); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to write report object",
			goerr.V("bucket", a.bucket),
			goerr.V("object", name),
		)
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize report object",
			goerr.V("bucket", a.bucket),
			goerr.V("object", name),
		)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, name), nil
}

func (a *Archiver) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func sanitize(name string) string {
	if name == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
