package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizbot/internal/entities"
	"bizbot/internal/infrastructure"
	"bizbot/internal/interfaces"
	"bizbot/internal/repository"
	"bizbot/internal/usecases"
)

// MessageRouter is the slice of the engine the transport layer needs.
type MessageRouter interface {
	ProcessMessage(ctx context.Context, msg entities.InboundMessage) string
}

type Handler struct {
	router      MessageRouter
	businesses  interfaces.BusinessConfigProvider
	products    *repository.ProductRepository
	classifier  *usecases.IntentClassifier
	waClient    interfaces.Messenger // optional outbound WhatsApp channel
	rateLimiter *infrastructure.MessageRateLimiter
	verifyToken string
	startedAt   time.Time
	logger      *zap.Logger
}

func NewHandler(
	router MessageRouter,
	businesses interfaces.BusinessConfigProvider,
	products *repository.ProductRepository,
	classifier *usecases.IntentClassifier,
	waClient interfaces.Messenger,
	rateLimiter *infrastructure.MessageRateLimiter,
	verifyToken string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		router:      router,
		businesses:  businesses,
		products:    products,
		classifier:  classifier,
		waClient:    waClient,
		rateLimiter: rateLimiter,
		verifyToken: verifyToken,
		startedAt:   time.Now(),
		logger:      logger,
	}
}

func SetupRoutes(r *gin.Engine, h *Handler, middleware *Middleware) {
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(1 << 20)) // 1MB max webhook body
	r.Use(middleware.CORSMiddleware())

	r.GET("/healthz", h.Health)

	// Channel webhooks (per-business URLs; signature checks are done by the
	// channel platform side, the verify handshake below is ours)
	r.GET("/webhook/whatsapp/:business_id", h.VerifyWebhook)
	r.POST("/webhook/whatsapp/:business_id", h.HandleWhatsAppWebhook)
	r.POST("/webhook/web", h.HandleWebMessage)

	// Internal ops API; tokens are minted by the admin backend
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/engine/stats", h.EngineStats)
		api.GET("/businesses/:id", h.ProbeBusiness)
		api.GET("/businesses/:id/products", h.ListProducts)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// VerifyWebhook answers the platform's challenge/response handshake. The
// challenge is echoed only on an exact verify-token match.
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == h.verifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "verification failed")
}

// whatsAppWebhook is the slice of the Cloud API event payload we consume.
type whatsAppWebhook struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
					Type string `json:"type"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// HandleWhatsAppWebhook routes each text message in the event and replies
// through the outbound WhatsApp client. Always acknowledges with 200 so the
// platform does not retry storms at us.
func (h *Handler) HandleWhatsAppWebhook(c *gin.Context) {
	businessID := c.Param("business_id")
	if !ValidID(businessID, MaxBusinessIDLength) {
		c.String(http.StatusOK, "EVENT_RECEIVED")
		return
	}

	var payload whatsAppWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("unparseable whatsapp webhook", zap.Error(err))
		c.String(http.StatusOK, "EVENT_RECEIVED")
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, m := range change.Value.Messages {
				if m.Type != "text" || m.Text.Body == "" {
					continue
				}
				msg := entities.InboundMessage{
					BusinessID: businessID,
					CustomerID: m.From,
					Text:       TruncateString(SanitizeString(m.Text.Body), MaxMessageLength),
					Channel:    "whatsapp",
					ReceivedAt: time.Now(),
				}
				go h.routeAndReply(msg)
			}
		}
	}

	c.String(http.StatusOK, "EVENT_RECEIVED")
}

func (h *Handler) routeAndReply(msg entities.InboundMessage) {
	if h.rateLimiter != nil && !h.rateLimiter.Allow(msg.CustomerID) {
		h.logger.Debug("rate limited", zap.String("customer_id", msg.CustomerID))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	reply := h.router.ProcessMessage(ctx, msg)
	if h.waClient == nil {
		return
	}
	if err := h.waClient.SendMessage(msg.CustomerID, reply); err != nil {
		h.logger.Warn("whatsapp send failed",
			zap.String("business_id", msg.BusinessID),
			zap.String("customer_id", msg.CustomerID),
			zap.Error(err))
	}
}

type webMessageRequest struct {
	BusinessID string `json:"business_id" binding:"required"`
	CustomerID string `json:"customer_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// HandleWebMessage serves the website chat widget synchronously.
func (h *Handler) HandleWebMessage(c *gin.Context) {
	var req webMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !ValidID(req.BusinessID, MaxBusinessIDLength) || !ValidID(req.CustomerID, MaxCustomerIDLength) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid identifiers"})
		return
	}
	if h.rateLimiter != nil && !h.rateLimiter.Allow(req.CustomerID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages"})
		return
	}

	msg := entities.InboundMessage{
		BusinessID: req.BusinessID,
		CustomerID: req.CustomerID,
		Text:       TruncateString(SanitizeString(req.Text), MaxMessageLength),
		Channel:    "web",
		ReceivedAt: time.Now(),
	}

	reply := h.router.ProcessMessage(c.Request.Context(), msg)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *Handler) EngineStats(c *gin.Context) {
	stats := gin.H{
		"uptime_seconds":  int(time.Since(h.startedAt).Seconds()),
		"vocabulary_size": h.classifier.VocabularySize(),
	}
	if h.rateLimiter != nil {
		stats["active_customers"] = h.rateLimiter.ActiveCustomers()
	}
	if repo, ok := h.businesses.(*repository.BusinessRepository); ok {
		stats["business_cache_len"] = repo.CacheLen()
	}
	c.JSON(http.StatusOK, stats)
}

// ProbeBusiness checks whether a business resolves the way the router would
// see it. Debugging aid for support.
func (h *Handler) ProbeBusiness(c *gin.Context) {
	id := c.Param("id")
	business, err := h.businesses.Resolve(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "business not found or inactive"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       business.ID,
		"name":     business.Name,
		"industry": business.Industry,
		"active":   business.Active,
	})
}

func (h *Handler) ListProducts(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not available"})
		return
	}
	products, err := h.products.ListByBusiness(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Warn("list products failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
