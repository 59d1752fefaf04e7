package script

import (
	"fmt"
	"strings"

	"shorts-script-api/internal/config"
	"shorts-script-api/internal/domain/entity"
)

// styleTemplate 固定的风格指令模板
// 语言域、篇幅目标与叙事结构（钩子/事实展开/反思式收尾）在此声明，
// 词数范围由配置注入
const styleTemplate = `🎯 TASK:
You are an advanced AI scriptwriter trained to create high-retention, fact-based, Hindi YouTube Shorts scripts.

📌 LANGUAGE:
* Use mostly Hindi, with naturally mixed simple English terms.
* Avoid jokes or fantasy — only real science + storytelling + human curiosity.

📽️ STRUCTURE:
1. Hook: Start with a shocking or surprising line.
2. Body: Reveal facts step-by-step using analogies.
3. End: Close with a curious or reflective question.

🧠 CONTENT RULES:
* Topic must be based on real science.
* Length: %d–%d words for 40–60s Shorts.
* Audience: Indian viewers of all ages, especially school/college students.

👨‍🔬 OUTPUT:
Generate a complete Hindi YouTube Shorts script in the above style.
No headings, no formatting — just a plain spoken-style script.`

// PromptBuilder 组装发往上游的完整提示词
// 纯函数式：相同输入总是产生逐字节一致的输出
type PromptBuilder struct {
	minWords int
	maxWords int
}

// NewPromptBuilder 创建提示词构建器
func NewPromptBuilder(cfg *config.GenerationConfig) *PromptBuilder {
	return &PromptBuilder{
		minWords: cfg.MinWords,
		maxWords: cfg.MaxWords,
	}
}

// Build 组装提示词：固定模板 + 主题（或随机主题指令）+ 分隔的参考范例
// examples 需已按入库顺序排好且裁剪到上限，构建器不做截断
func (b *PromptBuilder) Build(topic string, examples []*entity.ReferenceExample) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(styleTemplate, b.minWords, b.maxWords))

	topic = strings.TrimSpace(topic)
	if topic != "" {
		sb.WriteString("\n\nTopic: ")
		sb.WriteString(topic)
	} else {
		sb.WriteString("\n\nGenerate a script on any interesting science topic.")
	}

	if len(examples) > 0 {
		sb.WriteString("\n\nReference examples:\n")
		for _, ex := range examples {
			sb.WriteString("\n")
			sb.WriteString(ex.Content)
			sb.WriteString("\n---\n")
		}
	}

	return sb.String()
}
