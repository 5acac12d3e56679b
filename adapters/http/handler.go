package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/config"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/metrics"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/usecase"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/utils/log"
)

const (
	jwtExpiry = 24 * time.Hour

	// MaxConcurrent bounds overlapping relay calls per instance.
	MaxConcurrent = 10
)

// ChatHandler serves the portfolio API: chat relay, contact form, health,
// and websocket auth tokens.
type ChatHandler struct {
	relay     *usecase.RelayService
	cfg       *config.Config
	jwtSecret []byte
}

func NewChatHandler(relay *usecase.RelayService, cfg *config.Config) *ChatHandler {
	return &ChatHandler{
		relay:     relay,
		cfg:       cfg,
		jwtSecret: []byte(cfg.JWTSecret),
	}
}

type chatRequest struct {
	Message string            `json:"message"`
	History []domain.ChatTurn `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// VisitorClaims identifies a live-chat visitor.
type VisitorClaims struct {
	VisitorID string `json:"visitor_id"`
	jwt.RegisteredClaims
}

// Chat relays one visitor message to the configured provider. The caller
// owns resilience: on any failure it is expected to fall back to the local
// matcher, so no retry happens here.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		metrics.ChatRequests.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}

	conversationID := h.relay.Fingerprint(c.RealIP(), c.Request().UserAgent())
	ctx := context.WithValue(c.Request().Context(), "conversation_id", conversationID)

	reply, err := h.relay.Reply(ctx, domain.ChatRequest{
		ConversationID: conversationID,
		Message:        req.Message,
		History:        req.History,
	})
	switch {
	case err == nil:
		metrics.ChatRequests.WithLabelValues("ok").Inc()
		return c.JSON(http.StatusOK, chatResponse{Response: reply})

	case errors.Is(err, domain.ErrEmptyMessage):
		metrics.ChatRequests.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Message is required"})

	case errors.Is(err, domain.ErrNotConfigured):
		metrics.ChatRequests.WithLabelValues("misconfigured").Inc()
		log.WithCtx(ctx).Error("Provider credential missing")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "API key not configured"})

	case errors.Is(err, domain.ErrUpstream):
		metrics.ChatRequests.WithLabelValues("upstream_error").Inc()
		// Upstream detail is already logged by the adapter; the caller only
		// ever sees the generic message.
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "AI service unavailable. Try again shortly."})

	default:
		metrics.ChatRequests.WithLabelValues("error").Inc()
		log.WithCtx(ctx).Error("Chat relay failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Something went wrong. Please try again."})
	}
}

// Contact accepts a portfolio contact form submission. No mail provider is
// wired; submissions are logged for manual follow-up.
func (h *ChatHandler) Contact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid form data"})
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Message) == "" ||
		!strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid form data"})
	}

	metrics.ContactSubmissions.Inc()
	log.With(
		zap.String("name", req.Name),
		zap.String("email", req.Email),
	).Info("New contact form submission")

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Message received successfully. I'll get back to you soon!",
	})
}

// GenerateJWT mints a token for the live-chat websocket channel.
func (h *ChatHandler) GenerateJWT(c echo.Context) error {
	apiKey := c.Request().Header.Get("X-API-Key")
	apiSecret := c.Request().Header.Get("X-API-Secret")

	if apiKey != h.cfg.ChatAPIKey || apiSecret != h.cfg.ChatAPISecret {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	claims := &VisitorClaims{
		VisitorID: h.relay.Fingerprint(c.RealIP(), c.Request().UserAgent()),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "portfolio-api",
			Subject:   "live-chat",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		log.With(zap.Error(err)).Error("Error signing JWT")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": tokenString,
		"type":  "Bearer",
	})
}

// JWTMiddleware authenticates the websocket channel.
func (h *ChatHandler) JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		token, err := jwt.ParseWithClaims(tokenString, &VisitorClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return h.jwtSecret, nil
		})
		if err != nil {
			log.With(zap.Error(err)).Warn("JWT validation error")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		if claims, ok := token.Claims.(*VisitorClaims); ok && token.Valid {
			c.Set("visitor_id", claims.VisitorID)
			return next(c)
		}

		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
	}
}

// RateLimitMiddleware caps concurrent relay calls with a semaphore.
func (h *ChatHandler) RateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	semaphore := make(chan struct{}, MaxConcurrent)
	return func(c echo.Context) error {
		select {
		case semaphore <- struct{}{}:
			defer func() { <-semaphore }()
			return next(c)
		default:
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many concurrent requests")
		}
	}
}

// HealthCheck reports liveness.
func (h *ChatHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "portfolio-api",
		"provider":  string(h.cfg.Provider),
	})
}

// ErrorHandler renders every unhandled error with the {"error": ...}
// envelope the API promises.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Something went wrong. Please try again."

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch code {
		case http.StatusMethodNotAllowed:
			msg = "Method not allowed"
		case http.StatusNotFound:
			msg = "Not found"
		default:
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(code)
			}
		}
	} else {
		log.With(zap.Error(err)).Error("Unhandled error")
	}

	if err := c.JSON(code, errorResponse{Error: msg}); err != nil {
		log.With(zap.Error(err)).Error("Failed to write error response")
	}
}
