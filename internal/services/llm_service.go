package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxExtractionInput caps how much of a posting is sent to the model.
const maxExtractionInput = 20000

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "business_name": "Name of the hiring business (e.g., Sharma Interiors, StartupInc)",
    "role_title": "Job title (e.g., Interior Designer)",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "skills": ["Array", "of", "skills", "mentioned", "e.g., AutoCAD, Figma, Go"],
    "salary_range": "The salary string if explicitly mentioned (e.g., '6-8 LPA'), otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

type LLMService struct {
	// nil when no API key is configured
	Client llms.Model
	log    *slog.Logger
}

// NewLLMService connects to Gemini. Without an API key the service is
// returned disabled and extraction fails with ErrLLMDisabled.
func NewLLMService(ctx context.Context, apiKey, model string, log *slog.Logger) (*LLMService, error) {
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY is empty, job extraction disabled")
		return &LLMService{log: log}, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm, log: log}, nil
}

// NewLLMServiceWithModel wraps an existing model.
func NewLLMServiceWithModel(m llms.Model, log *slog.Logger) *LLMService {
	return &LLMService{Client: m, log: log}
}

func (s *LLMService) Enabled() bool {
	return s != nil && s.Client != nil
}

// ExtractJobDetails turns a raw posting into the JSON object described by
// the extraction prompt. Page chrome is stripped before the model sees it.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (json.RawMessage, error) {
	if !s.Enabled() {
		return nil, ErrLLMDisabled
	}
	content := PostingText(rawHTML)
	content = truncateUTF8(content, maxExtractionInput)

	prompt := fmt.Sprintf(jobExtractionPrompt, content)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		s.log.Error("job extraction failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("generate: %w", err)
	}

	out := stripCodeFence(resp)
	if !json.Valid([]byte(out)) {
		return nil, errors.New("model returned invalid JSON")
	}
	return json.RawMessage(out), nil
}

// stripCodeFence removes a ```json ... ``` wrapper the model sometimes adds
// despite the prompt.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
