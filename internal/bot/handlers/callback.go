package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/state"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/derive"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query first
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}

	// Callbacks from inline-mode messages carry no chat to reply to.
	if query.Message == nil || query.Message.Chat == nil {
		return nil
	}

	chatID := query.Message.Chat.ID
	switch data := query.Data; {
	case data == keyboards.DataMainMenu:
		state.Reset(h.stateManager, chatID)
		return menus.SendMainMenu(h.api, chatID)
	case data == keyboards.DataRecent:
		return menus.SendText(h.api, chatID, menus.RecentText(h.deps.Events.Snapshot()))
	case data == keyboards.DataToday:
		today := h.deps.now().Format(domain.DateLayout)
		return menus.SendText(h.api, chatID, menus.DayText(h.deps.Events.Snapshot(), today))
	case data == keyboards.DataChart:
		return menus.SendChartMenu(h.api, chatID)
	case strings.HasPrefix(data, keyboards.PrefixWindow):
		return sendChart(h.api, h.deps, chatID, derive.Window(strings.TrimPrefix(data, keyboards.PrefixWindow)))
	case strings.HasPrefix(data, keyboards.PrefixType):
		return h.handleType(chatID, strings.TrimPrefix(data, keyboards.PrefixType))
	default:
		return menus.SendText(h.api, chatID, "Opción desconocida.")
	}
}

// handleType starts recording an event of the chosen type.
func (h *CallbackHandler) handleType(chatID int64, raw string) error {
	t, err := domain.ParseEventType(raw)
	if err != nil {
		return menus.SendText(h.api, chatID, "Tipo de evento no válido.")
	}

	state.Reset(h.stateManager, chatID)
	h.stateManager.SetTempData(chatID, state.KeyEventType, string(t))

	d := domain.Describe(t)
	if t.HasValue() {
		h.stateManager.SetUserState(chatID, state.WaitingForValue)
		return menus.SendText(h.api, chatID, fmt.Sprintf("%s %s: introduce el valor en %s", d.Emoji, d.Title, d.Unit))
	}

	h.stateManager.SetUserState(chatID, state.WaitingForNotes)
	return menus.SendText(h.api, chatID, fmt.Sprintf("%s %s: escribe una nota o \"-\" para omitirla", d.Emoji, d.Title))
}
