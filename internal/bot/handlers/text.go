package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/state"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/derive"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/pet-diabetes-tracker/internal/errors"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/syncclient"
)

// skipNotes is the reply that records an event without notes.
const skipNotes = "-"

// TextHandler handles text messages
type TextHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch h.stateManager.GetUserState(chatID) {
	case state.WaitingForValue:
		return h.handleValue(chatID, text)
	case state.WaitingForNotes:
		return h.handleNotes(ctx, chatID, text)
	default:
		return menus.SendText(h.api, chatID, "Usa el menú para elegir una acción (/start).")
	}
}

// handleValue stores a numeric value and asks for notes.
func (h *TextHandler) handleValue(chatID int64, text string) error {
	text = strings.ReplaceAll(text, ",", ".")
	if _, err := derive.ParseValue(text); err != nil {
		return menus.SendText(h.api, chatID, "Introduce un número válido (por ejemplo: 140)")
	}

	h.stateManager.SetTempData(chatID, state.KeyValue, text)
	h.stateManager.SetUserState(chatID, state.WaitingForNotes)
	return menus.SendText(h.api, chatID, "Escribe una nota o \"-\" para omitirla")
}

// handleNotes records the pending event.
func (h *TextHandler) handleNotes(ctx context.Context, chatID int64, text string) error {
	raw, ok := h.stateManager.GetTempData(chatID, state.KeyEventType)
	if !ok {
		state.Reset(h.stateManager, chatID)
		return menus.SendMainMenu(h.api, chatID)
	}
	value, _ := h.stateManager.GetTempData(chatID, state.KeyValue)

	notes := text
	if notes == skipNotes {
		notes = ""
	}

	now := h.deps.now()
	out, err := h.deps.Events.Create(ctx, domain.NewEvent{
		Date:  now.Format(domain.DateLayout),
		Time:  now.Format(domain.TimeLayout),
		Type:  domain.EventType(raw),
		Value: value,
		Notes: notes,
	})
	state.Reset(h.stateManager, chatID)
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return menus.SendText(h.api, chatID, "❌ "+appErr.Message)
		}
		return err
	}

	if err := menus.SendText(h.api, chatID, outcomeText(out)); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, chatID)
}

// outcomeText is the mutation notice followed by the affected event.
func outcomeText(out syncclient.Outcome) string {
	mark := "✅ "
	if out.Degraded() {
		mark = "⚠️ "
	}
	return mark + out.Notice() + "\n" + menus.EventLine(out.Event)
}
