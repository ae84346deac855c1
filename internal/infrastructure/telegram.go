package infrastructure

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"bizbot/internal/entities"
)

// Router is what the poller needs from the engine; avoids an import cycle
// with usecases.
type Router interface {
	ProcessMessage(ctx context.Context, msg entities.InboundMessage) string
}

// TelegramPoller long-polls bot updates and feeds them through the router.
// The bot serves one configured business id; per-business bots would each
// run their own poller.
type TelegramPoller struct {
	client     *TelegramClient
	router     Router
	businessID string
	logger     *zap.Logger
}

func NewTelegramPoller(client *TelegramClient, router Router, businessID string, logger *zap.Logger) *TelegramPoller {
	return &TelegramPoller{client: client, router: router, businessID: businessID, logger: logger}
}

// Run blocks until ctx is cancelled. No-op when Telegram is disabled.
func (p *TelegramPoller) Run(ctx context.Context) {
	if p.client == nil || p.client.Bot == nil {
		p.logger.Info("telegram poller not started (telegram disabled)")
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := p.client.Bot.GetUpdatesChan(u)
	p.logger.Info("telegram poller started", zap.String("business_id", p.businessID))

	for {
		select {
		case <-ctx.Done():
			p.client.Bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			msg := entities.InboundMessage{
				BusinessID: p.businessID,
				CustomerID: strconv.FormatInt(update.Message.Chat.ID, 10),
				Text:       update.Message.Text,
				Channel:    "telegram",
				ReceivedAt: time.Now(),
			}
			go p.handle(msg)
		}
	}
}

func (p *TelegramPoller) handle(msg entities.InboundMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	reply := p.router.ProcessMessage(ctx, msg)
	if err := p.client.SendMessage(msg.CustomerID, reply); err != nil {
		p.logger.Warn("telegram send failed",
			zap.String("customer_id", msg.CustomerID),
			zap.Error(err))
	}
}
