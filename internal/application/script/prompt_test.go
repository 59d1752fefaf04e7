package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shorts-script-api/internal/config"
	"shorts-script-api/internal/domain/entity"
)

func newTestBuilder() *PromptBuilder {
	return NewPromptBuilder(&config.GenerationConfig{
		MinWords: 130,
		MaxWords: 160,
	})
}

func TestPromptBuilderWithTopic(t *testing.T) {
	builder := newTestBuilder()

	prompt := builder.Build("स्पेस में नाखून काटना", nil)

	assert.Contains(t, prompt, "Topic: स्पेस में नाखून काटना")
	assert.Contains(t, prompt, "130–160 words")
	assert.NotContains(t, prompt, "any interesting science topic")
}

func TestPromptBuilderWithoutTopic(t *testing.T) {
	builder := newTestBuilder()

	prompt := builder.Build("", nil)

	assert.Contains(t, prompt, "Generate a script on any interesting science topic.")
	assert.NotContains(t, prompt, "Topic:")
}

func TestPromptBuilderAppendsExamplesDelimited(t *testing.T) {
	builder := newTestBuilder()
	examples := []*entity.ReferenceExample{
		{Content: strings.Repeat("क", 50)},
		{Content: strings.Repeat("ख", 60)},
	}

	prompt := builder.Build("topic", examples)

	assert.Contains(t, prompt, "Reference examples:")
	assert.Contains(t, prompt, examples[0].Content)
	assert.Contains(t, prompt, examples[1].Content)
	assert.Less(t, strings.Index(prompt, examples[0].Content), strings.Index(prompt, examples[1].Content))
	assert.Equal(t, 2, strings.Count(prompt, "\n---\n"))
}

func TestPromptBuilderDeterministic(t *testing.T) {
	builder := newTestBuilder()
	examples := []*entity.ReferenceExample{{Content: strings.Repeat("x", 50)}}

	first := builder.Build("gravity", examples)
	second := builder.Build("gravity", examples)

	assert.Equal(t, first, second)
}
