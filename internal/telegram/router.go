package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"remindbot/internal/scheduler"
	"remindbot/internal/store"
)

// Router wires Telegram updates to handlers. Commands run sequentially on
// the update loop.
type Router struct {
	bot    *tgbotapi.BotAPI
	log    *zap.Logger
	coord  *scheduler.Coordinator
	state  *store.State
	chatID int64
}

// NewRouter creates a new Telegram router bound to the owner's chat.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, coord *scheduler.Coordinator, state *store.State, chatID int64) *Router {
	return &Router{
		bot:    bot,
		log:    log,
		coord:  coord,
		state:  state,
		chatID: chatID,
	}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	// Single-user app: ignore anything outside the owner's chat.
	if msg.Chat.ID != r.chatID {
		return
	}

	cmd, args := splitCommand(msg.Text)
	switch cmd {
	case "/start", "/help":
		r.sendText(helpText)
	case "/add":
		r.handleAdd(ctx, args)
	case "/edit":
		r.handleEdit(ctx, args)
	case "/list":
		r.handleList(ctx)
	case "/del":
		r.handleDelete(ctx, args)
	case "/note":
		r.handleNoteAdd(ctx, args)
	case "/notes":
		r.handleNoteList(ctx)
	case "/editnote":
		r.handleNoteEdit(ctx, args)
	case "/delnote":
		r.handleNoteDelete(ctx, args)
	default:
		// Unknown input gets the help text rather than a guess.
		if strings.HasPrefix(cmd, "/") {
			r.sendText("Unknown command. See /help.")
		}
	}
}

// splitCommand separates the leading command word from its arguments.
func splitCommand(text string) (cmd, args string) {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		return strings.ToLower(text[:i]), strings.TrimSpace(text[i+1:])
	}
	return strings.ToLower(text), ""
}

func (r *Router) sendText(text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(r.chatID, text)); err != nil {
		r.log.Error("send reply failed", zap.Error(err))
	}
}
