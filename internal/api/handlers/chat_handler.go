package handlers

import (
	"errors"

	"faqbot/internal/dto"
	"faqbot/internal/models"
	"faqbot/internal/render"
	"faqbot/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService     *service.ChatService
	responseService *service.ResponseService
	defaultFormat   string
	logger          *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, responseService *service.ResponseService, defaultFormat string, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService:     chatService,
		responseService: responseService,
		defaultFormat:   defaultFormat,
		logger:          logger,
	}
}

func (h *ChatHandler) renderer(c *fiber.Ctx) render.Renderer {
	return render.ByName(c.Query("format", h.defaultFormat))
}

func toMessageResponse(m models.ChatMessage, r render.Renderer) dto.MessageResponse {
	text := m.Text
	if m.Sender == models.SenderBot {
		text = r.Render(text)
	}
	return dto.MessageResponse{
		ID:        m.ID.String(),
		Text:      text,
		Sender:    string(m.Sender),
		Timestamp: m.Timestamp,
	}
}

func toSessionResponse(id uuid.UUID, messages []models.ChatMessage, r render.Renderer) dto.SessionResponse {
	out := dto.SessionResponse{
		ID:       id.String(),
		Format:   r.Name(),
		Messages: make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		out.Messages = append(out.Messages, toMessageResponse(m, r))
	}
	return out
}

func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func (h *ChatHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyInput), errors.Is(err, service.ErrMessageTooLong):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Session not found"})
	case errors.Is(err, service.ErrSessionBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Chat request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal error"})
	}
}

// CreateSession godoc
// @Summary Start a chat session
// @Description Opens an in-memory chat session that starts with the welcome message
// @Tags chat
// @Produce json
// @Param format query string false "markdown or html"
// @Success 201 {object} dto.SessionResponse
// @Router /api/v1/sessions [post]
func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	id, messages := h.chatService.CreateSession()
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(id, messages, h.renderer(c)))
}

// GetMessages godoc
// @Summary Get the transcript
// @Tags chat
// @Produce json
// @Param id path string true "Session ID"
// @Param format query string false "markdown or html"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/sessions/{id}/messages [get]
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid session ID"})
	}

	messages, err := h.chatService.History(id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(toSessionResponse(id, messages, h.renderer(c)))
}

// SendMessage godoc
// @Summary Send a message
// @Description Appends the user message and the bot reply to the session
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param format query string false "markdown or html"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 200 {object} dto.ReplyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/sessions/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid session ID"})
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	reply, err := h.chatService.Send(c.UserContext(), id, req.Text)
	if err != nil {
		return h.writeError(c, err)
	}

	suggestions := reply.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return c.JSON(dto.ReplyResponse{
		Message:     toMessageResponse(reply.Message, h.renderer(c)),
		Source:      string(reply.Source),
		Category:    reply.Category,
		Suggestions: suggestions,
	})
}

// ClearMessages godoc
// @Summary Clear the transcript
// @Tags chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/sessions/{id}/messages [delete]
func (h *ChatHandler) ClearMessages(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid session ID"})
	}

	messages, err := h.chatService.Clear(id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(toSessionResponse(id, messages, h.renderer(c)))
}

// DeleteSession godoc
// @Summary End a chat session
// @Tags chat
// @Param id path string true "Session ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *ChatHandler) DeleteSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid session ID"})
	}

	if err := h.chatService.Delete(id); err != nil {
		return h.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportSession godoc
// @Summary Download the transcript
// @Tags chat
// @Produce plain
// @Param id path string true "Session ID"
// @Success 200 {string} string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/sessions/{id}/export [get]
func (h *ChatHandler) ExportSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid session ID"})
	}

	transcript, err := h.chatService.Export(id)
	if err != nil {
		return h.writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="iron-lady-chat-`+id.String()+`.txt"`)
	return c.SendString(transcript)
}

// Ask godoc
// @Summary Ask a single question
// @Description Stateless question answering, no session involved
// @Tags chat
// @Accept json
// @Produce json
// @Param format query string false "markdown or html"
// @Param request body dto.AskRequest true "Question"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/ask [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	text, err := h.chatService.ValidateInput(req.Text)
	if err != nil {
		return h.writeError(c, err)
	}

	resp := h.responseService.Respond(c.UserContext(), text)
	r := h.renderer(c)

	suggestions := resp.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return c.JSON(dto.AskResponse{
		Answer:      r.Render(resp.Text),
		Format:      r.Name(),
		Source:      string(resp.Source),
		Question:    resp.Question,
		Category:    resp.Category,
		Suggestions: suggestions,
	})
}
