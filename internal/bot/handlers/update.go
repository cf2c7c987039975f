package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/state"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	return &UpdateHandler{
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, deps, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	}

	if update.Message == nil {
		return nil
	}
	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message)
	}
	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message)
	}
	return nil
}
