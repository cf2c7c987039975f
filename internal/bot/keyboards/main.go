package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/derive"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

// Callback data
const (
	DataMainMenu = "main_menu"
	DataRecent   = "recientes"
	DataToday    = "hoy"
	DataChart    = "grafico"

	// PrefixType and PrefixWindow are followed by an event type or chart window.
	PrefixType   = "tipo:"
	PrefixWindow = "grafico:"
)

// MainMenu creates the main menu keyboard: one button per event type, then the views.
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, t := range domain.Types() {
		d := domain.Describe(t)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(d.Emoji+" "+d.Title, PrefixType+string(t)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🕒 Recientes", DataRecent),
			tgbotapi.NewInlineKeyboardButtonData("📅 Hoy", DataToday),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Gráfico", DataChart),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

var windowTitles = map[derive.Window]string{
	derive.WindowDay:   "Hoy",
	derive.Window3Days: "3 días",
	derive.WindowWeek:  "Semana",
	derive.WindowAll:   "Todo",
}

// ChartMenu creates the chart window selector
func ChartMenu() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, w := range append(derive.Windows(), derive.WindowAll) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(windowTitles[w], PrefixWindow+string(w)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row, BackRow())
}

// BackToMenu creates a keyboard with a single back button
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(BackRow())
}

// BackRow is the "back to main menu" row
func BackRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Menú principal", DataMainMenu),
	)
}
