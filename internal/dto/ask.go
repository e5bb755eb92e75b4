package dto

import "mime/multipart"

// ── 智能问答 DTO ──

// AskQuery 问答输入：text 与 audio 至少提供一项
type AskQuery struct {
	Text           string                // 文字提问
	Audio          *multipart.FileHeader // 语音提问（可选）
	ResponseFormat string                // text | audio，缺省 text
}

// AskResponse 助手文字回答
type AskResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source,omitempty"`
}

// AskResult 助手回答载体
// ResponseFormat=audio 时 AudioData 非空，否则 Answer 非空
type AskResult struct {
	Answer      *AskResponse
	AudioData   []byte
	ContentType string
}
