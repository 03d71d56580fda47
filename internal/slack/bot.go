// Package slack provides a Slack bot channel for the recipe service using
// Socket Mode. Mention the bot with a grocery list and it replies in-thread
// with recipe suggestions.
package slack

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/DakshC17/reciperecommendation/internal/recipes"
)

// Suggester is the interface the server implements for suggestion requests.
type Suggester interface {
	Suggest(ctx context.Context, items []string) (*recipes.Suggestion, error)
}

// Bot is the Slack Socket Mode bot for the recipe service.
type Bot struct {
	api          *slack.Client
	socketClient *socketmode.Client
	suggester    Suggester
}

// NewBot creates a new Slack Socket Mode bot.
func NewBot(botToken, appToken string, suggester Suggester) *Bot {
	api := slack.New(
		botToken,
		slack.OptionAppLevelToken(appToken),
	)

	socketClient := socketmode.New(
		api,
		socketmode.OptionLog(log.New(log.Writer(), "slack-socketmode: ", log.LstdFlags)),
	)

	return &Bot{
		api:          api,
		socketClient: socketClient,
		suggester:    suggester,
	}
}

// Run connects to Slack via Socket Mode and processes events.
func (b *Bot) Run(ctx context.Context) error {
	go b.eventLoop(ctx)
	log.Println("Slack bot connecting via Socket Mode...")
	return b.socketClient.RunContext(ctx)
}

func (b *Bot) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-b.socketClient.Events:
			if !ok {
				return
			}
			b.handleEvent(ctx, evt)
		}
	}
}

func (b *Bot) handleEvent(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		log.Println("Slack: connecting...")
	case socketmode.EventTypeConnected:
		log.Println("Slack: connected")
	case socketmode.EventTypeConnectionError:
		log.Println("Slack: connection error, will retry...")
	case socketmode.EventTypeEventsAPI:
		eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			return
		}
		b.socketClient.Ack(*evt.Request)

		if eventsAPIEvent.Type == slackevents.CallbackEvent {
			if ev, ok := eventsAPIEvent.InnerEvent.Data.(*slackevents.AppMentionEvent); ok {
				go b.handleMention(ctx, ev)
			}
		}
	case socketmode.EventTypeInteractive:
		b.socketClient.Ack(*evt.Request)
	}
}

func (b *Bot) handleMention(ctx context.Context, ev *slackevents.AppMentionEvent) {
	text := ev.Text
	if idx := strings.Index(text, ">"); idx >= 0 {
		text = strings.TrimSpace(text[idx+1:])
	}

	threadTS := ev.TimeStamp
	if ev.ThreadTimeStamp != "" {
		threadTS = ev.ThreadTimeStamp
	}

	items := recipes.SplitItems(text)
	if len(items) == 0 {
		b.postThread(ev.Channel, threadTS,
			"Please send a grocery list. Example:\n`@reciperec apple, bread, napkins, milk`")
		return
	}

	sugg, err := b.suggester.Suggest(ctx, items)
	if err != nil {
		b.postThread(ev.Channel, threadTS,
			fmt.Sprintf(":x: Sorry, that didn't work: %s", err))
		return
	}

	b.postThread(ev.Channel, threadTS, recipes.FormatText(sugg))
}

func (b *Bot) postThread(channel, threadTS, text string) {
	_, _, err := b.api.PostMessage(channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		log.Printf("Slack: failed to post message to %s: %v", channel, err)
	}
}
