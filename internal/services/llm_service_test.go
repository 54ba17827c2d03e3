package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sps2604/Prosearch-sub001/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type stubModel struct {
	reply  string
	err    error
	prompt string
}

func (m *stubModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompt += text.Text
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestExtractJobDetails(t *testing.T) {
	model := &stubModel{reply: "```json\n{\"role_title\":\"Interior Designer\"}\n```"}
	svc := NewLLMServiceWithModel(model, logger.Discard())

	out, err := svc.ExtractJobDetails(context.Background(), "<nav>Home</nav><h1>Interior Designer</h1>")
	require.NoError(t, err)
	assert.JSONEq(t, `{"role_title":"Interior Designer"}`, string(out))
	assert.Contains(t, model.prompt, "Interior Designer")
	assert.NotContains(t, model.prompt, "<h1>")
	assert.NotContains(t, model.prompt, "Home")
}

func TestExtractJobDetails_TruncatesInput(t *testing.T) {
	model := &stubModel{reply: `{}`}
	svc := NewLLMServiceWithModel(model, logger.Discard())

	_, err := svc.ExtractJobDetails(context.Background(), strings.Repeat("a", maxExtractionInput)+"TAIL")
	require.NoError(t, err)
	assert.NotContains(t, model.prompt, "TAIL")
}

func TestExtractJobDetails_TruncatesOnRuneBoundary(t *testing.T) {
	model := &stubModel{reply: `{}`}
	svc := NewLLMServiceWithModel(model, logger.Discard())

	// the two-byte é straddles the cut
	_, err := svc.ExtractJobDetails(context.Background(), strings.Repeat("a", maxExtractionInput-1)+"é")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(model.prompt))
	assert.NotContains(t, model.prompt, "é")
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "héllo", truncateUTF8("héllo", 10))
	assert.Equal(t, "h", truncateUTF8("héllo", 2))
	assert.Equal(t, "hé", truncateUTF8("héllo", 3))
	assert.Equal(t, "", truncateUTF8("日本", 2))
	assert.Equal(t, "日", truncateUTF8("日本", 3))
}

func TestExtractJobDetails_Failures(t *testing.T) {
	svc := NewLLMServiceWithModel(&stubModel{reply: "not json"}, logger.Discard())
	_, err := svc.ExtractJobDetails(context.Background(), "x")
	assert.Error(t, err)

	svc = NewLLMServiceWithModel(&stubModel{err: errors.New("quota")}, logger.Discard())
	_, err = svc.ExtractJobDetails(context.Background(), "x")
	assert.ErrorContains(t, err, "quota")
}

func TestExtractJobDetails_Disabled(t *testing.T) {
	svc, err := NewLLMService(context.Background(), "", "gemini-2.5-flash", logger.Discard())
	require.NoError(t, err)
	assert.False(t, svc.Enabled())

	_, err = svc.ExtractJobDetails(context.Background(), "x")
	assert.ErrorIs(t, err, ErrLLMDisabled)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1} "))
}

func TestPostingText(t *testing.T) {
	page := `<html><head><style>h1{}</style></head><body>
<nav>Home · Jobs</nav>
<main><h1>Interior Designer</h1><p>Sharma   Interiors,<br>Pune</p><ul><li>AutoCAD</li><li>SketchUp</li></ul><script>track()</script></main>
<footer>© 2026</footer></body></html>`

	assert.Equal(t, "Interior Designer\nSharma Interiors,\nPune\nAutoCAD\nSketchUp", PostingText(page))
	assert.Equal(t, "plain text posting", PostingText("  plain text posting "))
}
