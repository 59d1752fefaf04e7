// Package script 实现脚本生成流水线
package script

// EventType 流水线事件类型
type EventType string

const (
	EventMetadata EventType = "metadata"
	EventUnit     EventType = "sentence"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Event 流水线输出事件
// 一次请求的事件序列：一个 metadata，若干按 index 递增的 sentence，
// 以 complete 或 error 恰好其一收尾
type Event struct {
	Type     EventType        `json:"type"`
	Metadata *MetadataPayload `json:"metadata,omitempty"`
	Unit     *UnitPayload     `json:"unit,omitempty"`
	Complete *CompletePayload `json:"complete,omitempty"`
	Error    *ErrorPayload    `json:"error,omitempty"`
}

// MetadataPayload 生成结果的概要信息，先于所有句子事件发出
type MetadataPayload struct {
	Topic          string `json:"topic"`
	WordCount      int    `json:"word_count"`
	TotalSentences int    `json:"total_sentences"`
}

// UnitPayload 单个句子
type UnitPayload struct {
	Content string `json:"content"`
	Index   int    `json:"index"`
	IsLast  bool   `json:"is_last"`
}

// CompletePayload 完成事件，携带全文与所用凭证（脱敏）
// Warning 在落库失败但文本已生成时携带提示
type CompletePayload struct {
	ScriptID       string `json:"script_id,omitempty"`
	FullScript     string `json:"full_script"`
	CredentialUsed string `json:"credential_used"`
	Warning        string `json:"warning,omitempty"`
}

// ErrorPayload 终止错误事件
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func metadataEvent(topic string, wordCount, totalSentences int) Event {
	return Event{
		Type: EventMetadata,
		Metadata: &MetadataPayload{
			Topic:          topic,
			WordCount:      wordCount,
			TotalSentences: totalSentences,
		},
	}
}

func unitEvent(content string, index int, isLast bool) Event {
	return Event{
		Type: EventUnit,
		Unit: &UnitPayload{
			Content: content,
			Index:   index,
			IsLast:  isLast,
		},
	}
}

func completeEvent(scriptID, fullScript, credentialUsed, warning string) Event {
	return Event{
		Type: EventComplete,
		Complete: &CompletePayload{
			ScriptID:       scriptID,
			FullScript:     fullScript,
			CredentialUsed: credentialUsed,
			Warning:        warning,
		},
	}
}

func errorEvent(code, message string) Event {
	return Event{
		Type: EventError,
		Error: &ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}
