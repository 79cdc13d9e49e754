package handlers

import (
	"faqbot/internal/dto"
	"faqbot/internal/knowledge"

	"github.com/gofiber/fiber/v2"
)

// SessionCounter reports how many chat sessions are live.
type SessionCounter interface {
	SessionCount() int
}

type KnowledgeHandler struct {
	kb       *knowledge.Base
	sessions SessionCounter
}

func NewKnowledgeHandler(kb *knowledge.Base, sessions SessionCounter) *KnowledgeHandler {
	return &KnowledgeHandler{kb: kb, sessions: sessions}
}

// ListFaqs godoc
// @Summary List FAQ questions
// @Description Questions for the widget's quick-action buttons
// @Tags knowledge
// @Produce json
// @Success 200 {array} dto.FaqResponse
// @Router /api/v1/faqs [get]
func (h *KnowledgeHandler) ListFaqs(c *fiber.Ctx) error {
	faqs := h.kb.ListFaqs()
	out := make([]dto.FaqResponse, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, dto.FaqResponse{Question: f.Question})
	}
	return c.JSON(out)
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *KnowledgeHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Faqs: len(h.kb.ListFaqs())}
	if h.sessions != nil {
		resp.Sessions = h.sessions.SessionCount()
	}
	return c.JSON(resp)
}
