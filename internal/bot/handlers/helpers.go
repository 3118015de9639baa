package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
)

const sendMessageTimeout = 10 * time.Second

// SendReply sends text to the given chat. Delivery failures are logged
// and otherwise dropped; there is no retry.
func SendReply(ctx context.Context, b *bot.Bot, deps HandlerDeps, chatID int64, text string) {
	log := deps.Logger.With("handler", "chat")

	if b == nil || chatID == 0 {
		log.ErrorContext(ctx, "Invalid parameters to SendReply", "chat_id", chatID)
		return
	}
	if text == "" {
		log.WarnContext(ctx, "Empty text provided for reply", "chat_id", chatID)
		return
	}
	if ctx.Err() != nil {
		log.ErrorContext(ctx, "Context cancelled before sending reply", "error", ctx.Err())
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	sent, err := b.SendMessage(sendCtx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
		return
	}

	log.InfoContext(ctx, "Sent reply", "chat_id", chatID, "message_id", sent.ID)
}
