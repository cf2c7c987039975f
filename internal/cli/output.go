package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/syncclient"
)

// clock is replaced in tests.
var clock = time.Now

// output handles JSON vs text output for CLI commands.
type output struct {
	format string
	w      io.Writer
}

func newOutput(cmd *cobra.Command, format string) *output {
	return &output{format: format, w: cmd.OutOrStdout()}
}

func (o *output) json() bool {
	return o.format == "json"
}

func (o *output) encode(v interface{}) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *output) line(s string) error {
	_, err := fmt.Fprintln(o.w, s)
	return err
}

func (o *output) linef(format string, args ...interface{}) error {
	return o.line(fmt.Sprintf(format, args...))
}

type outcomeJSON struct {
	Mode    string       `json:"modo"`
	Mensaje string       `json:"mensaje"`
	Evento  domain.Event `json:"evento"`
	Error   string       `json:"error,omitempty"`
}

func (o *output) outcome(out syncclient.Outcome) error {
	if o.json() {
		body := outcomeJSON{Mode: out.Mode.String(), Mensaje: out.Notice(), Evento: out.Event}
		if out.RemoteErr != nil {
			body.Error = out.RemoteErr.Error()
		}
		return o.encode(body)
	}

	if err := o.line(out.Notice()); err != nil {
		return err
	}
	return o.linef("%s\n  id: %s", menus.EventLine(out.Event), out.Event.ID)
}
