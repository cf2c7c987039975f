package cli

import (
	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/derive"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/syncclient"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Type  string
	Date  string
	Time  string
	Value string
	Notes string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an event",
		Long: `Record an event. Date and time default to now.

Example:
  tracker add --type glucose --value 140 --notes "antes de comer"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.session(cmd.Context(), func(client *syncclient.Client, _ syncclient.Source) error {
				now := clock()
				input := domain.NewEvent{
					Date:  opts.Date,
					Time:  opts.Time,
					Type:  domain.EventType(opts.Type),
					Value: opts.Value,
					Notes: opts.Notes,
				}
				if input.Date == "" {
					input.Date = now.Format(domain.DateLayout)
				}
				if input.Time == "" {
					input.Time = now.Format(domain.TimeLayout)
				}

				out, err := client.Create(cmd.Context(), input)
				if err != nil {
					return err
				}
				return newOutput(cmd, opts.Format).outcome(out)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "event type (glucose|insulin|medication|food)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.Time, "time", "", "time as HH:mm")
	cmd.Flags().StringVar(&opts.Value, "value", "", "reading or dose")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free text")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.session(cmd.Context(), func(client *syncclient.Client, _ syncclient.Source) error {
				out, err := client.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return newOutput(cmd, rootOpts.Format).outcome(out)
			})
		},
	}
}

// NewRecentCommand creates the recent command.
func NewRecentCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show the latest events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.session(cmd.Context(), func(client *syncclient.Client, _ syncclient.Source) error {
				events := client.Snapshot()
				out := newOutput(cmd, rootOpts.Format)
				if out.json() {
					return out.encode(derive.Recent(events, derive.RecentLimit))
				}
				return out.line(menus.RecentText(events))
			})
		},
	}
}

type daySummary struct {
	Date   string         `json:"fecha"`
	Counts map[string]int `json:"conteo"`
	Labels []string       `json:"resumen"`
}

// NewDayCommand creates the day command.
func NewDayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "Summarise one day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := clock().Format(domain.DateLayout)
			if len(args) == 1 {
				date = args[0]
			}

			return rootOpts.session(cmd.Context(), func(client *syncclient.Client, _ syncclient.Source) error {
				events := client.Snapshot()
				out := newOutput(cmd, rootOpts.Format)
				if !out.json() {
					return out.line(menus.DayText(events, date))
				}

				summary := daySummary{Date: date, Counts: map[string]int{}, Labels: []string{}}
				for _, tc := range derive.DaySummary(events, date) {
					summary.Counts[string(tc.Type)] = tc.Count
					summary.Labels = append(summary.Labels, tc.Label())
				}
				return out.encode(summary)
			})
		},
	}
}

// ChartOptions holds flags for the chart command.
type ChartOptions struct {
	*RootOptions
	Window      string
	NumericOnly bool
}

// NewChartCommand creates the chart command.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show the glucose series for a time window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.session(cmd.Context(), func(client *syncclient.Client, _ syncclient.Source) error {
				window := derive.Window(opts.Window)
				points := derive.Series(client.Snapshot(), window, clock())
				if opts.NumericOnly {
					points = derive.NumericOnly(points)
				}

				out := newOutput(cmd, opts.Format)
				if out.json() {
					return out.encode(points)
				}
				return out.line(menus.ChartText(points, window))
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Window, "window", "w", string(derive.WindowWeek), "day|3days|week|all")
	cmd.Flags().BoolVar(&opts.NumericOnly, "numeric", false, "drop readings without a numeric value")

	return cmd
}

type syncReport struct {
	Source syncclient.Source `json:"origen"`
	Count  int               `json:"eventos"`
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Load events from the API, or from the cache when offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.session(cmd.Context(), func(client *syncclient.Client, source syncclient.Source) error {
				report := syncReport{Source: source, Count: client.Events().Len()}
				out := newOutput(cmd, rootOpts.Format)
				if out.json() {
					return out.encode(report)
				}
				return out.linef("%d eventos cargados (%s)", report.Count, report.Source)
			})
		},
	}
}
