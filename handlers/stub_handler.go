package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"go_chat_client/middleware"
	"go_chat_client/models"
	"go_chat_client/pkg/logging"
	"go_chat_client/platform/cache"
)

const (
	sessionTTL  = 2 * time.Hour
	responseTTL = 24 * time.Hour
)

type sessionRecord struct {
	UserIdentifier string
	CreatedAt      time.Time
}

type responseRecord struct {
	SessionID string
}

// StubHandler serves canned answers shaped like the real backend's. Nothing
// survives a restart.
type StubHandler struct {
	version   string
	sessions  *cache.TypedCache[sessionRecord]
	responses *cache.TypedCache[responseRecord]
	feedback  *cache.TypedCache[models.FeedbackRating]
	newID     func() string
	now       func() time.Time
}

func NewStubHandler(store cache.Store, version string, newID func() string) *StubHandler {
	return &StubHandler{
		version:   version,
		sessions:  cache.NewTypedCache[sessionRecord](store, "session:", sessionTTL),
		responses: cache.NewTypedCache[responseRecord](store, "response:", responseTTL),
		feedback:  cache.NewTypedCache[models.FeedbackRating](store, "feedback:", responseTTL),
		newID:     newID,
		now:       time.Now,
	}
}

func (h *StubHandler) CreateSession(c *fiber.Ctx) error {
	var req models.SessionCreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")
		}
	}

	id := h.newID()
	created := h.now().UTC()
	h.sessions.Set(id, sessionRecord{UserIdentifier: req.UserIdentifier, CreatedAt: created})
	c.Locals(middleware.SessionLocal, id)
	logging.Logger.Debug("session created", "session_id", id)

	return c.Status(fiber.StatusCreated).JSON(models.SessionCreateResponse{
		SessionID: id,
		CreatedAt: created.Format(time.RFC3339),
	})
}

func (h *StubHandler) Chat(c *fiber.Ctx) error {
	start := h.now()

	var req models.ChatQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := validateQuery(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = h.newID()
		h.sessions.Set(sessionID, sessionRecord{CreatedAt: start.UTC()})
	} else if _, ok := h.sessions.Get(sessionID); !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	c.Locals(middleware.SessionLocal, sessionID)

	responseID := h.newID()
	h.responses.Set(responseID, responseRecord{SessionID: sessionID})

	return c.JSON(models.ChatResponse{
		ResponseID:     responseID,
		ResponseText:   cannedAnswer(req),
		SourceChunks:   cannedChunks(req.Mode),
		ResponseTimeMs: h.now().Sub(start).Milliseconds(),
		SessionID:      sessionID,
	})
}

func (h *StubHandler) Feedback(c *fiber.Ctx) error {
	var req models.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")
	}
	if req.ResponseID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "response_id is required")
	}
	if !req.Rating.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be 'positive' or 'negative'")
	}
	if _, ok := h.responses.Get(req.ResponseID); !ok {
		return fiber.NewError(fiber.StatusNotFound, "response not found")
	}

	if err := h.feedback.Add(req.ResponseID, req.Rating); err != nil {
		if errors.Is(err, cache.ErrKeyExists) {
			return fiber.NewError(fiber.StatusConflict, "feedback already submitted for this response")
		}
		logging.Logger.Error("fail storing feedback", "error", err)
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StubHandler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{Status: "ok", Version: h.version})
}

// ErrorHandler renders every error as the backend's {"detail": ...} envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		logging.Logger.Error("fail handling request", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(models.ErrorBody{Detail: msg})
}
