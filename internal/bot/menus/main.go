package menus

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/keyboards"
)

// Sender is the part of the Telegram API the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

const mainMenuText = `🐾 *Diario de Pantera*

Registra glucosa, insulina, medicación y comidas.
Los eventos se guardan en el servidor y, si no está disponible, en este equipo hasta que vuelva.

Elige una opción:`

const helpText = `Comandos disponibles:
/start - Mostrar el menú principal
/recientes - Últimos 10 eventos
/hoy [AAAA-MM-DD] - Resumen del día
/grafico [day|3days|week|all] - Glucosa en el periodo
/borrar <id> - Eliminar un evento
/help - Mostrar este mensaje`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendHelp sends the command list
func SendHelp(api Sender, chatID int64) error {
	_, err := api.Send(tgbotapi.NewMessage(chatID, helpText))
	return err
}

// SendChartMenu sends the chart window selector
func SendChartMenu(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "¿Qué periodo quieres ver?")
	msg.ReplyMarkup = keyboards.ChartMenu()
	_, err := api.Send(msg)
	return err
}

// SendText sends plain text with a back button
func SendText(api Sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err := api.Send(msg)
	return err
}
