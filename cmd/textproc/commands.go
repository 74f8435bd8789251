package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/houhuawei23/text-processing-tool/internal/backend"
	"github.com/houhuawei23/text-processing-tool/internal/config"
	"github.com/houhuawei23/text-processing-tool/internal/coordinator"
	"github.com/houhuawei23/text-processing-tool/internal/domain"
	"github.com/houhuawei23/text-processing-tool/internal/notify"
	"github.com/houhuawei23/text-processing-tool/internal/panes"
	"github.com/houhuawei23/text-processing-tool/internal/prompts"
	"github.com/houhuawei23/text-processing-tool/internal/queue"
	"github.com/houhuawei23/text-processing-tool/internal/taskstore"
	"github.com/houhuawei23/text-processing-tool/internal/translate"
	"github.com/houhuawei23/text-processing-tool/tui"
	"github.com/houhuawei23/text-processing-tool/web/api"
)

var (
	serveAddr  string
	processOps []string
	tuiAddr    string
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)

	processCmd := &cobra.Command{
		Use:   "process [FILE]",
		Short: "Run text-transform operations on a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProcess,
	}
	processCmd.Flags().StringSliceVar(&processOps, "ops", []string{"format", "statistics", "analysis"}, "operations to run")
	rootCmd.AddCommand(processCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the queue dashboard",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&tuiAddr, "addr", "http://127.0.0.1:8080", "API server address")
	rootCmd.AddCommand(tuiCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("textproc %s\n", version)
		},
	})
}

var version = "dev"

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr()
	if serveAddr != "" {
		addr = serveAddr
	}

	store, err := taskstore.New(cfg.History.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening task history: %w", err)
	}
	defer store.Close()

	translator := translate.NewService(cfg.Translation)

	backends := backend.NewRegistry()
	backends.Register(domain.KindTextTransform, backend.TextTransform{})
	backends.Register(domain.KindRegexTransform, backend.RegexTransform{})
	backends.Register(domain.KindTranslation, backend.Translation{Service: translator})

	q := queue.New(backends)
	q.Subscribe(func(task *domain.Task) {
		if err := store.Record(task); err != nil {
			log.Printf("recording task %d: %v", task.ID, err)
		}
	})

	manager := panes.NewManager()
	router := panes.NewRouter(manager)

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.Notifications.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notifications.WebhookURL)
	}

	coord := coordinator.New(q, router, cfg.Limits, notifier)

	server := api.NewServer(addr, q, coord, manager, translator, prompts.DefaultLoader(), store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("listening on %s", addr)
		return server.Start(ctx)
	})

	if sweeper, err := taskstore.NewSweeper(store, cfg.History.SweepCron, cfg.History.RetentionAge); err != nil {
		log.Printf("history sweeper disabled: %v", err)
	} else {
		g.Go(func() error {
			err := sweeper.Run(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		})
	}

	if path := configPath; path != "" {
		watcher, err := config.NewWatcher(path, func(next *config.Config) {
			log.Printf("config reloaded from %s", path)
			translator.UpdateConfig(next.Translation)
		})
		if err != nil {
			log.Printf("config watcher disabled: %v", err)
		} else {
			watcher.Start(ctx)
			defer watcher.Stop()
		}
	}

	return g.Wait()
}

func runProcess(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	params := domain.Params{}
	for _, op := range processOps {
		params.Operations = append(params.Operations, domain.Operation(op))
	}

	result, err := backend.TextTransform{}.Submit(cmd.Context(), string(data), params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runTUI(cmd *cobra.Command, args []string) error {
	model := tui.NewModel(tuiAddr)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
