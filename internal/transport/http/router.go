package rest

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/engine"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/internal/usecase"
	"github.com/Gunvolt24/orders_live/pkg/httpx"
)

// Handler — HTTP-обвязка движка синхронизации заказов.
type Handler struct {
	engine *engine.Engine
	hub    *Hub
	log    ports.Logger
}

// NewHandler — конструктор.
func NewHandler(eng *engine.Engine, hub *Hub, log ports.Logger) *Handler {
	return &Handler{engine: eng, hub: hub, log: log}
}

// RouterOptions — настройки сборки роутера.
type RouterOptions struct {
	// ServiceName — имя сервиса для otelgin; пустая строка — без трассировки.
	ServiceName string
}

// NewRouter — сборка gin-роутера со всеми маршрутами и middleware.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if opts.ServiceName != "" {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/orders", h.listOrders)
	r.POST("/orders", h.createOrder)
	r.POST("/orders/refetch", h.refetch)
	r.PATCH("/orders/:id/status", h.updateStatus)
	r.DELETE("/orders/:id", h.deleteOrder)
	r.GET("/orders/events", h.streamEvents)

	return r
}

// listOrders — снимок локального хранилища, новые первыми.
// loading=true только пока не завершилась первая полная выборка.
func (h *Handler) listOrders(c *gin.Context) {
	orders := h.engine.List()
	if limit := httpx.ParseLimit(c, 0, 500); limit > 0 && limit < len(orders) {
		orders = orders[:limit]
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":  orders,
		"loading": h.engine.Loading(),
	})
}

func (h *Handler) createOrder(c *gin.Context) {
	var draft domain.Order
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	res := h.engine.CreateOrder(c.Request.Context(), &draft)
	if !res.OK() {
		h.writeFailure(c, res)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": res.Order, "message": res.Message})
}

type updateStatusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	res := h.engine.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if !res.OK() {
		h.writeFailure(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": res.Order, "message": res.Message})
}

func (h *Handler) deleteOrder(c *gin.Context) {
	res := h.engine.DeleteOrder(c.Request.Context(), c.Param("id"))
	if !res.OK() {
		h.writeFailure(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.Message})
}

func (h *Handler) refetch(c *gin.Context) {
	if err := h.engine.Refetch(c.Request.Context()); err != nil {
		h.log.Errorf(c.Request.Context(), "refetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "refetch failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": h.engine.List()})
}

// streamEvents — SSE-поток тостов и прибытий для приборной панели.
func (h *Handler) streamEvents(c *gin.Context) {
	events, cancel := h.hub.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keep-alive\n\n"))
			return true
		}
	})
}

// writeFailure — перевод классифицированного отказа в HTTP-статус.
// Текст ответа — локализованное сообщение из результата шлюза.
func (h *Handler) writeFailure(c *gin.Context, res usecase.Result) {
	status := http.StatusInternalServerError
	switch res.Kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindDuplicate:
		status = http.StatusConflict
	case domain.KindReference:
		status = http.StatusUnprocessableEntity
	case domain.KindPermission:
		status = http.StatusForbidden
	case domain.KindTimeout:
		status = http.StatusGatewayTimeout
	case domain.KindNetwork:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": res.Message, "kind": string(res.Kind)})
}
