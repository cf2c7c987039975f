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
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())
	logger.Info("Handling command", "command", message.Command(), "chat_id", chatID)

	switch message.Command() {
	case "start":
		state.Reset(h.stateManager, chatID)
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return menus.SendHelp(h.api, chatID)
	case "recientes":
		return menus.SendText(h.api, chatID, menus.RecentText(h.deps.Events.Snapshot()))
	case "hoy":
		return h.handleDay(chatID, args)
	case "grafico":
		if args == "" {
			return menus.SendChartMenu(h.api, chatID)
		}
		return sendChart(h.api, h.deps, chatID, derive.Window(args))
	case "borrar":
		return h.handleDelete(ctx, chatID, args)
	default:
		return menus.SendText(h.api, chatID, "Comando desconocido. Usa /help para ver los comandos disponibles.")
	}
}

func (h *CommandHandler) handleDay(chatID int64, date string) error {
	if date == "" {
		date = h.deps.now().Format(domain.DateLayout)
	}
	return menus.SendText(h.api, chatID, menus.DayText(h.deps.Events.Snapshot(), date))
}

func (h *CommandHandler) handleDelete(ctx context.Context, chatID int64, id string) error {
	if id == "" {
		return menus.SendText(h.api, chatID, "Indica el id del evento: /borrar <id>. Los ids aparecen en /recientes.")
	}

	out, err := h.deps.Events.Delete(ctx, id)
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return menus.SendText(h.api, chatID, "❌ "+appErr.Message)
		}
		return err
	}
	return menus.SendText(h.api, chatID, outcomeText(out))
}

func sendChart(api menus.Sender, deps Dependencies, chatID int64, window derive.Window) error {
	points := derive.Series(deps.Events.Snapshot(), window, deps.now())
	return menus.SendText(api, chatID, menus.ChartText(points, window))
}
