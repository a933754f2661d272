package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xKoRx/bridge/telemetry"
	"github.com/xKoRx/bridge/telemetry/semconv"
	"github.com/xKoRx/bridge/utils"
)

// statusResponse shape uniforme de respuestas de estado del boundary.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Server es el boundary HTTP del bridge.
//
// Endpoints:
//   - POST /log_trade: submit desde NT8
//   - GET  /mt5/get_trade: polling del EA MT5
//   - POST /mt5/trade_result: resultado de ejecución del EA
//   - GET  /health: liveness + queue size
type Server struct {
	engine    *gin.Engine
	srv       *http.Server
	relay     *RelayService
	telemetry *telemetry.Client
}

// NewServer construye el router con middleware de logging y recovery.
func NewServer(relay *RelayService, tel *telemetry.Client, port int) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		engine:    engine,
		relay:     relay,
		telemetry: tel,
	}

	engine.Use(s.requestLogger())
	engine.Use(s.recovery())

	engine.POST("/log_trade", s.handleLogTrade)
	engine.GET("/mt5/get_trade", s.handleGetTrade)
	engine.POST("/mt5/trade_result", s.handleTradeResult)
	engine.GET("/health", s.handleHealth)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: engine,
	}

	return s
}

// Engine expone el router, para tests con httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start levanta el listener HTTP. Bloquea hasta shutdown o fallo.
func (s *Server) Start() error {
	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop apaga el servidor drenando requests en vuelo.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// requestLogger middleware de logging de requests vía telemetría.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsedMs := utils.ElapsedMsSince(start)
		s.telemetry.Info(c.Request.Context(), "http request",
			semconv.HTTP.Method.String(c.Request.Method),
			semconv.HTTP.Path.String(c.Request.URL.Path),
			semconv.HTTP.StatusCode.Int(c.Writer.Status()),
			semconv.HTTP.ClientIP.String(c.ClientIP()),
			semconv.HTTP.DurationMs.Int64(elapsedMs),
		)
		s.telemetry.RecordLatency(c.Request.Context(), "bridge.http",
			float64(elapsedMs),
			semconv.HTTP.Path.String(c.Request.URL.Path),
		)
	}
}

// recovery convierte panics de handlers en 500 sin tumbar el proceso.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.telemetry.Error(c.Request.Context(), "panic in http handler",
					fmt.Errorf("%v", r),
					semconv.HTTP.Path.String(c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, statusResponse{
					Status:  "error",
					Message: "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// handleLogTrade procesa POST /log_trade.
//
// 200 {status:success} si el trade quedó encolado; 400 con mensaje
// descriptivo en fallo de validación (enumerando TODOS los campos
// ausentes); 500 genérico si la transformación falla tras validar.
func (s *Server) handleLogTrade(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "Request must be JSON"})
		return
	}

	_, err = s.relay.Submit(c.Request.Context(), raw)
	if err != nil {
		bridgeErr := asBridgeError(err)
		if bridgeErr.IsValidation() {
			c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: bridgeErr.Message})
			return
		}
		// Detalle completo ya logueado por el relay; al caller solo genérico.
		c.JSON(http.StatusInternalServerError, statusResponse{Status: "error", Message: "Error formatting trade"})
		return
	}

	c.JSON(http.StatusOK, statusResponse{Status: "success", Message: "Trade logged successfully"})
}

// handleGetTrade procesa GET /mt5/get_trade.
//
// Nunca bloquea: sin trabajo pendiente responde {status:no_trade} con 200.
func (s *Server) handleGetTrade(c *gin.Context) {
	order, ok := s.relay.Pickup(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, statusResponse{Status: "no_trade"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// handleTradeResult procesa POST /mt5/trade_result.
//
// Parse best-effort sin mirar Content-Type: el EA manda JSON con headers
// variables según build de terminal. 400 solo si el body no es parseable.
func (s *Server) handleTradeResult(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "Invalid JSON"})
		return
	}

	if _, err := s.relay.ReportResult(c.Request.Context(), raw); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Status: "error", Message: "Invalid JSON"})
		return
	}

	c.JSON(http.StatusOK, statusResponse{Status: "success"})
}

// handleHealth procesa GET /health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"queue_size": s.relay.QueueSize(),
	})
}
