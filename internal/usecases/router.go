package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bizbot/internal/entities"
	"bizbot/internal/interfaces"
	"bizbot/internal/repository"
)

// MessageRouter is the engine façade. ProcessMessage always returns a reply
// string and never lets a panic or error escape; that is the only failure
// contract the transport adapters rely on.
type MessageRouter struct {
	businesses   interfaces.BusinessConfigProvider
	classifier   *IntentClassifier
	dispatcher   *IndustryDispatcher
	interactions interfaces.InteractionSink // optional
	safeReply    string
	logger       *zap.Logger
}

func NewMessageRouter(
	businesses interfaces.BusinessConfigProvider,
	classifier *IntentClassifier,
	dispatcher *IndustryDispatcher,
	interactions interfaces.InteractionSink,
	safeReply string,
	logger *zap.Logger,
) *MessageRouter {
	return &MessageRouter{
		businesses:   businesses,
		classifier:   classifier,
		dispatcher:   dispatcher,
		interactions: interactions,
		safeReply:    safeReply,
		logger:       logger,
	}
}

// ProcessMessage orchestrates resolve -> classify -> extract -> dispatch.
// Raw message text is never logged, only its length.
func (r *MessageRouter) ProcessMessage(ctx context.Context, msg entities.InboundMessage) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic while routing message",
				zap.Any("panic", rec),
				zap.String("business_id", msg.BusinessID),
				zap.String("customer_id", msg.CustomerID),
				zap.Int("text_len", len(msg.Text)))
			reply = r.safeReply
		}
	}()

	business, err := r.businesses.Resolve(ctx, msg.BusinessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			r.logger.Info("business not resolvable",
				zap.String("business_id", msg.BusinessID),
				zap.String("channel", msg.Channel))
		} else {
			r.logger.Error("business lookup failed",
				zap.String("business_id", msg.BusinessID),
				zap.Error(err))
		}
		return r.safeReply
	}

	result := r.classifier.Classify(msg.Text, string(business.Industry))
	bag := Extract(msg.Text, string(business.Industry))

	reply = r.dispatcher.Dispatch(ctx, business, msg.CustomerID, msg.Text, result.Intent, bag)
	if reply == "" {
		// the template chain makes this unreachable, but the contract is
		// absolute: never hand an empty string to a transport
		reply = r.safeReply
	}

	r.logger.Debug("message routed",
		zap.String("business_id", msg.BusinessID),
		zap.String("customer_id", msg.CustomerID),
		zap.String("intent", result.Intent),
		zap.String("tier", result.Tier),
		zap.Int("text_len", len(msg.Text)),
		zap.Int("reply_len", len(reply)))

	r.recordInteraction(msg, result.Intent, len(reply))
	return reply
}

func (r *MessageRouter) recordInteraction(msg entities.InboundMessage, intent string, replyLen int) {
	if r.interactions == nil {
		return
	}
	// best-effort, detached from the request deadline
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rec := entities.Interaction{
		BusinessID: msg.BusinessID,
		CustomerID: msg.CustomerID,
		Channel:    msg.Channel,
		Intent:     intent,
		ReplyLen:   replyLen,
		CreatedAt:  time.Now(),
	}
	if err := r.interactions.Record(ctx, rec); err != nil {
		r.logger.Warn("interaction record failed",
			zap.String("business_id", msg.BusinessID),
			zap.Error(err))
	}
}
