package cli

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"volley-schedule-service/internal/config"
	"volley-schedule-service/internal/extractor"
	"volley-schedule-service/internal/parser"
	"volley-schedule-service/internal/push"
	"volley-schedule-service/internal/reminder"
	"volley-schedule-service/internal/schedule"
	"volley-schedule-service/internal/server"
	"volley-schedule-service/internal/subscription"
)

var (
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volley-schedule",
		Short: "Serve and refresh a volleyball league schedule",
		Long: `Extracts the league schedule from the federation site, caches it
with a 12-hour TTL and serves it over HTTP, including an iCalendar
export and web-push match reminders.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.AddCommand(newServeCmd(), newFetchCmd(), newRemindCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the schedule HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return server.New(app.cfg.ListenAddr, app.service, app.store).ListenAndServe()
		},
	}
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one refresh cycle and print the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.Close()

			snap, err := app.service.GetSchedule(cmd.Context())
			if err != nil {
				return err
			}
			return WriteSnapshot(os.Stdout, snap, OutputFormat(flagFormat))
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

func newRemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Dispatch the weekly reminder for the current schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.Close()

			snap, err := app.service.GetSchedule(cmd.Context())
			if err != nil {
				return err
			}

			res, err := app.dispatcher.Dispatch(snap.Matches)
			if err != nil {
				return err
			}

			if !res.Sent {
				fmt.Printf("No reminder sent (%s)\n", res.Reason)
				return nil
			}
			fmt.Printf("Reminder sent for %d match(es)\n", res.Count)
			return nil
		},
	}
}

// app bundles the wired pipeline for one command invocation.
type app struct {
	cfg        config.Config
	service    *schedule.Service
	store      *subscription.Store
	dispatcher *reminder.Dispatcher
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.WithError(err).Warn("failed to close subscription store")
	}
}

// buildApp loads the environment configuration and wires the pipeline.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := subscription.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	sender := push.NewWebPush(store, cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	dispatcher := reminder.New(sender)

	service := schedule.New(schedule.Config{
		URL:         cfg.SiteURL,
		Category:    cfg.Category,
		Team:        cfg.Team,
		DownloadDir: cfg.DownloadDir,
	}, extractor.NewBrowser(), parser.New(cfg.HomeVenue), dispatcher)

	return &app{
		cfg:        cfg,
		service:    service,
		store:      store,
		dispatcher: dispatcher,
	}, nil
}
