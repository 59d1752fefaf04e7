package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywordsTranslatesHindiWords(t *testing.T) {
	script := "स्पेस में पानी कैसे बहता है? दिमाग सोचिए!"

	keywords := ExtractKeywords(script)

	assert.Contains(t, keywords, "space")
	assert.Contains(t, keywords, "water")
	assert.Contains(t, keywords, "brain")
}

func TestExtractKeywordsAddsEnglishWords(t *testing.T) {
	script := "NASA ने vacuum clipper का इस्तेमाल किया gravity experiment में।"

	keywords := ExtractKeywords(script)

	// 只取前 3 个长度 ≥4 的英语词
	assert.Contains(t, keywords, "nasa")
	assert.Contains(t, keywords, "vacuum")
	assert.Contains(t, keywords, "clipper")
	assert.NotContains(t, keywords, "gravity")
}

func TestExtractKeywordsFallback(t *testing.T) {
	keywords := ExtractKeywords("यह एक छोटा वाक्य")

	assert.Equal(t, []string{"science", "technology", "laboratory", "experiment", "discovery"}, keywords)
}

func TestExtractKeywordsDeduplicatesAndCaps(t *testing.T) {
	script := "पानी पानी समुद्र समुंदर स्पेस अंतरिक्ष आग हवा सूरज चांद"

	keywords := ExtractKeywords(script)

	assert.LessOrEqual(t, len(keywords), 5)
	seen := make(map[string]bool)
	for _, k := range keywords {
		assert.False(t, seen[k], "duplicate keyword %s", k)
		seen[k] = true
	}
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	script := "स्पेस में पानी और आग का experiment"

	first := ExtractKeywords(script)
	second := ExtractKeywords(script)

	assert.Equal(t, first, second)
}
