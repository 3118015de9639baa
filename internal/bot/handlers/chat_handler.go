package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/relaybot/internal/ai"
)

type chatHandler struct {
	deps HandlerDeps
}

// NewChatHandler creates the default handler that relays any text
// message to the configured AI provider and sends the reply back to
// the originating chat.
func NewChatHandler(deps HandlerDeps) bot.HandlerFunc {
	return chatHandler{deps}.Handle
}

func (h chatHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "chat")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.DebugContext(ctx, "Ignoring update with nil message or sender", "update_id", update.ID)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		log.DebugContext(ctx, "Ignoring message with empty text", "chat_id", msg.Chat.ID)
		return
	}
	if strings.HasPrefix(text, "/") {
		// Commands are routed by registered handlers; anything that
		// reaches here is unrecognized and gets no reply.
		log.DebugContext(ctx, "Ignoring unrecognized command", "chat_id", msg.Chat.ID, "text_preview", text)
		return
	}

	chatID := msg.Chat.ID
	log.InfoContext(ctx, "Handling chat message", "chat_id", chatID, "message_id", msg.ID)

	if _, err := b.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping}); err != nil {
		log.DebugContext(ctx, "Failed to send typing action", "error", err, "chat_id", chatID)
	}

	aiCtx, cancel := context.WithTimeout(ctx, deps.Config.AI.Timeout)
	defer cancel()

	reply, err := deps.AI.GenerateReply(aiCtx, text)
	if err != nil {
		var provErr *ai.Error
		if errors.As(err, &provErr) {
			log.ErrorContext(ctx, "AI generation failed", "error", err, "category", provErr.Category, "chat_id", chatID)
		} else {
			log.ErrorContext(ctx, "AI generation failed", "error", err, "chat_id", chatID)
		}
		SendReply(ctx, b, deps, chatID, deps.Config.Messages.GeneralError)
		return
	}

	SendReply(ctx, b, deps, chatID, reply)
}
