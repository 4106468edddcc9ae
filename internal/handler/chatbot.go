package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/middleware"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

// ChatbotHandler serves the FAQ bot. Redis and CachePrefix are optional;
// when set, adding an entry drops the cached FAQ responses.
type ChatbotHandler struct {
	Chatbot     *service.ChatbotService
	Redis       *redis.Client
	CachePrefix string
}

func NewChatbotHandler(bot *service.ChatbotService, rdb *redis.Client, cachePrefix string) *ChatbotHandler {
	if bot == nil {
		panic("nil service passed to NewChatbotHandler")
	}
	return &ChatbotHandler{Chatbot: bot, Redis: rdb, CachePrefix: cachePrefix}
}

type chatReq struct {
	Message string `json:"message" validate:"required"`
}

type faqReq struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Keywords string `json:"keywords" validate:"required"`
}

// Reply is the public endpoint: {"message"} in, {"reply"} out.
func (h *ChatbotHandler) Reply(c echo.Context) error {
	var req chatReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	reply, err := h.Chatbot.Reply(ctx, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reply": reply})
}

// Ask is Reply for a signed in user, with the personal greeting attached.
func (h *ChatbotHandler) Ask(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req chatReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	reply, err := h.Chatbot.Reply(ctx, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	greeting, err := h.Chatbot.Greeting(ctx, a.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reply": reply, "greeting": greeting})
}

// Greeting runs behind OptionalJWT; guests have no user id.
func (h *ChatbotHandler) Greeting(c echo.Context) error {
	uid, _ := middleware.UserID(c)
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	g, err := h.Chatbot.Greeting(ctx, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"greeting": g})
}

func (h *ChatbotHandler) FAQList(c echo.Context) error {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	faqs, err := h.Chatbot.FAQList(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"faqs": faqs})
}

func (h *ChatbotHandler) AddFAQ(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req faqReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	f, err := h.Chatbot.AddFAQ(ctx, a, service.FAQInput{
		Question: req.Question,
		Answer:   req.Answer,
		Keywords: req.Keywords,
	})
	if err != nil {
		return respondError(c, err)
	}
	if h.Redis != nil && h.CachePrefix != "" {
		if err := middleware.PurgeCache(ctx, h.Redis, h.CachePrefix); err != nil {
			c.Logger().Warnf("faq cache purge: %v", err)
		}
	}
	return c.JSON(http.StatusCreated, f)
}
