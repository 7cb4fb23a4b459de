package handler

import (
	"io"
	"net/http"
	"price-stream-backend/internal/api/dto"
	"price-stream-backend/internal/api/usecase"
	"price-stream-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type HandlerItf interface {
	GetStatus(*gin.Context)
	GetMetrics(*gin.Context)
	AddSymbols(*gin.Context)
	RemoveSymbols(*gin.Context)
	SetThrottle(*gin.Context)
	StreamUpdates(*gin.Context)
}

// EventSourceItf is the subscription side of the streaming client.
// Registration returns a removal func so the SSE handler can detach
// its listeners when the HTTP client goes away.
type EventSourceItf interface {
	OnPrice(fn func(models.PriceUpdate)) func()
	OnKline(fn func(models.KlineUpdate)) func()
}

type Handler struct {
	uc     usecase.UsecaseItf
	events EventSourceItf
}

func NewHandler(uc usecase.UsecaseItf, events EventSourceItf) *Handler {
	return &Handler{uc: uc, events: events}
}

func (hd *Handler) GetStatus(ctx *gin.Context) {
	// usecase
	status := hd.uc.GetStatus()

	// return response
	ctx.JSON(http.StatusOK, dto.Res{
		Success: true,
		Data:    statusRes(status),
	})
}

func (hd *Handler) GetMetrics(ctx *gin.Context) {
	// usecase
	metrics := hd.uc.GetMetrics()

	// return response
	ctx.JSON(http.StatusOK, dto.Res{
		Success: true,
		Data: dto.MetricsRes{
			UpdateFrequency:    metrics.UpdateFrequency,
			TrackedSymbolCount: metrics.TrackedSymbolCount,
			ReconnectAttempts:  metrics.ReconnectAttempts,
			UptimeMs:           metrics.UptimeMs,
		},
	})
}

func (hd *Handler) AddSymbols(ctx *gin.Context) {
	// bind request
	var req dto.SymbolsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err)
		return
	}

	// usecase
	status, err := hd.uc.AddSymbols(req.Symbols)
	if err != nil {
		ctx.Error(err)
		return
	}

	// return response
	ctx.JSON(http.StatusOK, dto.Res{
		Success: true,
		Data:    statusRes(status),
	})
}

func (hd *Handler) RemoveSymbols(ctx *gin.Context) {
	// bind request
	var req dto.SymbolsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err)
		return
	}

	// usecase
	status, err := hd.uc.RemoveSymbols(req.Symbols)
	if err != nil {
		ctx.Error(err)
		return
	}

	// return response
	ctx.JSON(http.StatusOK, dto.Res{
		Success: true,
		Data:    statusRes(status),
	})
}

func (hd *Handler) SetThrottle(ctx *gin.Context) {
	// bind request
	var req dto.ThrottleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err)
		return
	}

	// usecase
	hd.uc.SetThrottleDelay(req.DelayMs)

	// return response
	ctx.JSON(http.StatusOK, dto.Res{
		Success: true,
	})
}

type sseEvent struct {
	name string
	data any
}

// StreamUpdates relays live price and kline updates to the HTTP client
// as server-sent events until the client disconnects.
func (hd *Handler) StreamUpdates(ctx *gin.Context) {
	// Buffered so a slow HTTP client sheds updates instead of
	// blocking the streaming client's emit path.
	updates := make(chan sseEvent, 64)

	removePrice := hd.events.OnPrice(func(u models.PriceUpdate) {
		select {
		case updates <- sseEvent{name: "price", data: u}:
		default:
		}
	})
	defer removePrice()

	removeKline := hd.events.OnKline(func(u models.KlineUpdate) {
		select {
		case updates <- sseEvent{name: "kline", data: u}:
		default:
		}
	})
	defer removeKline()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case ev := <-updates:
			ctx.SSEvent(ev.name, ev.data)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

func statusRes(status models.ConnectionStatus) dto.StatusRes {
	return dto.StatusRes{
		Connected:         status.Connected,
		Source:            string(status.Source),
		SubscribedSymbols: status.SubscribedSymbols,
		ReconnectAttempts: status.ReconnectAttempts,
	}
}
