// Package genai wraps a gollem LLM client behind the narrow text
// generation interface the compliance services depend on.
package genai

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
)

type Client struct {
	llm gollem.LLMClient
}

var _ interfaces.GenAI = &Client{}

func New(llm gollem.LLMClient) *Client {
	return &Client{llm: llm}
}

// Generate sends the prompt in a fresh JSON-mode session and returns the
// concatenated response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	session, err := c.llm.NewSession(ctx, gollem.WithSessionContentType(gollem.ContentTypeJSON))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content")
	}

	if len(resp.Texts) == 0 {
		return "", goerr.New("LLM returned empty response")
	}

	return strings.Join(resp.Texts, "\n"), nil
}
