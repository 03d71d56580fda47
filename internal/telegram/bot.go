// Package telegram provides a Telegram bot channel for the recipe service.
//
// Send the bot a grocery list (items separated by commas or newlines) and
// it replies with the food/non-food split and recipe suggestions.
//
// Uses long polling -- no public URL or webhook needed.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/DakshC17/reciperecommendation/internal/recipes"
)

// Suggester is the interface the server implements for suggestion requests.
type Suggester interface {
	Suggest(ctx context.Context, items []string) (*recipes.Suggestion, error)
}

// Bot is the Telegram bot for the recipe service.
type Bot struct {
	api       *tgbotapi.BotAPI
	suggester Suggester
}

// NewBot creates a new Telegram bot.
func NewBot(token string, suggester Suggester) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating Telegram bot: %w", err)
	}

	log.Printf("Telegram bot authorized as @%s", api.Self.UserName)

	return &Bot{
		api:       api,
		suggester: suggester,
	}, nil
}

// Run starts the long-polling loop. Blocks until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	log.Println("Telegram bot listening for messages...")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil {
				go b.handleMessage(ctx, update.Message)
			}
		}
	}
}

// handleMessage routes incoming messages to the appropriate handler.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	chatID := msg.Chat.ID

	// Handle commands.
	if strings.HasPrefix(text, "/") {
		b.handleCommand(chatID, msg.MessageID, text)
		return
	}

	// Regular message: treat it as a grocery list.
	b.handleGroceryList(ctx, chatID, msg.MessageID, text)
}

// handleCommand processes slash commands.
func (b *Bot) handleCommand(chatID int64, replyTo int, text string) {
	cmd := strings.ToLower(strings.Fields(text)[0])
	// Strip @botname suffix from commands (e.g. /help@mybot).
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}

	switch cmd {
	case "/start", "/help":
		b.reply(chatID, replyTo,
			"Send me your grocery list (items separated by commas or new lines) "+
				"and I'll sort out the food items and suggest recipes.\n\n"+
				"Example:\napple, bread, napkins, milk")
	default:
		b.reply(chatID, replyTo, fmt.Sprintf("Unknown command %s. Try /help.", cmd))
	}
}

// handleGroceryList parses the message as a grocery list and replies with
// recipe suggestions.
func (b *Bot) handleGroceryList(ctx context.Context, chatID int64, replyTo int, text string) {
	items := recipes.SplitItems(text)
	if len(items) == 0 {
		b.reply(chatID, replyTo, "I couldn't find any items in that message. Try /help.")
		return
	}

	b.reply(chatID, replyTo, "Looking for recipes...")

	sugg, err := b.suggester.Suggest(ctx, items)
	if err != nil {
		b.reply(chatID, replyTo, fmt.Sprintf("Sorry, that didn't work: %s", err))
		return
	}

	b.reply(chatID, replyTo, recipes.FormatText(sugg))
}

func (b *Bot) reply(chatID int64, replyTo int, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Telegram: failed to send message to %d: %v", chatID, err)
	}
}
