package dto

type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type SessionResponse struct {
	ID       string            `json:"id"`
	Format   string            `json:"format"`
	Messages []MessageResponse `json:"messages"`
}

type ReplyResponse struct {
	Message     MessageResponse `json:"message"`
	Source      string          `json:"source"`
	Category    string          `json:"category,omitempty"`
	Suggestions []string        `json:"suggestions"`
}

type AskRequest struct {
	Text string `json:"text" validate:"required"`
}

type AskResponse struct {
	Answer      string   `json:"answer"`
	Format      string   `json:"format"`
	Source      string   `json:"source"`
	Question    string   `json:"question,omitempty"`
	Category    string   `json:"category,omitempty"`
	Suggestions []string `json:"suggestions"`
}

type FaqResponse struct {
	Question string `json:"question"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Faqs     int    `json:"faqs"`
	Sessions int    `json:"sessions"`
}
