package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/metrics"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/utils/log"
)

// ExchangeTopic carries completed exchanges for live-channel mirroring.
const ExchangeTopic = "chat.exchanges"

// RelayService is the single-request chat use case: validate, delegate to
// the provider, publish the exchange. No state survives the call.
type RelayService struct {
	generator domain.Generator
	broker    domain.MessageBroker
	hasher    domain.Hasher
	provider  string
}

func NewRelayService(generator domain.Generator, broker domain.MessageBroker, hasher domain.Hasher, provider string) *RelayService {
	return &RelayService{
		generator: generator,
		broker:    broker,
		hasher:    hasher,
		provider:  provider,
	}
}

// Reply produces one assistant reply for one visitor message. Every
// failure is terminal for the request: no retry, no queuing.
func (s *RelayService) Reply(ctx context.Context, req domain.ChatRequest) (string, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", domain.ErrEmptyMessage
	}

	start := time.Now()
	reply, err := s.generator.Generate(ctx, req.History, message)
	metrics.ProviderLatency.WithLabelValues(s.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderErrors.WithLabelValues(s.provider, errorKind(err)).Inc()
		return "", err
	}

	s.publishExchange(ctx, req.ConversationID, message, reply)
	return reply, nil
}

// Fingerprint derives a stable conversation identifier from
// transport-level client hints. Used for log correlation and exchange
// routing, never stored.
func (s *RelayService) Fingerprint(parts ...string) string {
	sum := s.hasher.Hash([]byte(strings.Join(parts, "|")))
	if len(sum) > 16 {
		sum = sum[:16]
	}
	return sum
}

// publishExchange is best effort: a full or closed topic never fails the
// chat request.
func (s *RelayService) publishExchange(ctx context.Context, conversationID, message, reply string) {
	if s.broker == nil {
		return
	}

	exchange := domain.ChatExchange{
		ConversationID: conversationID,
		Message:        message,
		Reply:          reply,
		Source:         s.provider,
		Timestamp:      time.Now().UTC(),
	}
	payload, err := json.Marshal(exchange)
	if err != nil {
		log.WithCtx(ctx).Warn("Failed to marshal chat exchange", zap.Error(err))
		return
	}

	if err := s.broker.Publish(ctx, ExchangeTopic, "", payload); err != nil {
		log.WithCtx(ctx).Warn("Failed to publish chat exchange", zap.Error(err))
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream"
	default:
		return "internal"
	}
}
