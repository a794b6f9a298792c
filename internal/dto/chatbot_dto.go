package dto

type ChatMessageInput struct {
	Message string `json:"message" binding:"required,max=500"`
}

type ChatAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type ChatResponse struct {
	Message string       `json:"message"`
	Type    string       `json:"type"` // "info", "warning", "error", "success"
	Actions []ChatAction `json:"actions"`
	Data    interface{}  `json:"data,omitempty"`
}
