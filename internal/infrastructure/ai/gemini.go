package ai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"jobpath/internal/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	// ErrNotConfigured means no API key was provided at startup.
	ErrNotConfigured = errors.New("ai service not configured")
	// ErrUnavailable covers quota and rate exhaustion on the provider side.
	ErrUnavailable = errors.New("ai service temporarily unavailable")
	// ErrEmptySummary means the model returned no usable text.
	ErrEmptySummary = errors.New("empty summary")
)

const summaryPromptTemplate = `Summarize this job posting in plain text format only. Do NOT use any markdown formatting like **, __, *, _, or any other special characters for formatting.

Job Description:
%s

Provide a simple summary with:
1. Key responsibilities
2. Required qualifications
3. Important details

Use only:
- Plain text
- Simple bullet points with -
- Line breaks for sections
- NO bold, italic, or markdown formatting

Keep under 300 words.`

// Summarizer is the stateless pass-through to the hosted text-generation
// service. It holds no request state; the client is safe for concurrent use.
type Summarizer struct {
	client *genai.Client
	model  string
}

func NewSummarizer(ctx context.Context, cfg config.AIConfig) (*Summarizer, error) {
	if cfg.GeminiAPIKey == "" {
		return &Summarizer{}, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, err
	}
	return &Summarizer{client: client, model: cfg.Model}, nil
}

func (s *Summarizer) Configured() bool {
	return s != nil && s.client != nil
}

func (s *Summarizer) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// SummarizeJob produces a plain-text summary of a pasted job description.
func (s *Summarizer) SummarizeJob(ctx context.Context, description string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, description)

	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if isQuotaError(err) {
			return "", ErrUnavailable
		}
		return "", err
	}

	summary := stripMarkdown(collectText(resp))
	if summary == "" {
		return "", ErrEmptySummary
	}
	return summary, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

var (
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe    = regexp.MustCompile(`\*(.*?)\*`)
	underBoldRe = regexp.MustCompile(`__(.*?)__`)
	underItalRe = regexp.MustCompile(`_(.*?)_`)
)

// stripMarkdown removes the formatting the prompt forbids but models still
// occasionally emit.
func stripMarkdown(s string) string {
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = underBoldRe.ReplaceAllString(s, "$1")
	s = underItalRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "limit") ||
		strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "429")
}
