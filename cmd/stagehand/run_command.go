package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stagehand/internal/config"
	"stagehand/internal/instancelock"
	"stagehand/internal/ipc"
	"stagehand/internal/journal"
	"stagehand/internal/logging"
	"stagehand/internal/notifications"
	"stagehand/internal/preflight"
	"stagehand/internal/supervisor"
	"stagehand/internal/surface"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var noSurface bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the backend and supervise it until shutdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSupervised(cmd.Context(), ctx, noSurface, skipPreflight)
		},
	}

	cmd.Flags().BoolVar(&noSurface, "no-surface", false, "Supervise the backend without opening a browser surface")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip launch environment checks")
	return cmd
}

func runSupervised(cmdCtx context.Context, ctx *commandContext, noSurface, skipPreflight bool) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewForDir(cfg.Paths.LogDir, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	root := projectRoot()

	if !skipPreflight {
		results := preflight.RunAll(cfg, root)
		for _, result := range results {
			if !result.Passed {
				fmt.Fprintln(os.Stderr, renderStatusLine(result.Name, statusError, result.Detail, shouldColorize(os.Stderr)))
			}
		}
		if !preflight.AllPassed(results) {
			return fmt.Errorf("launch environment checks failed")
		}
	}

	lock := instancelock.New(cfg.LockPath())
	acquired, err := lock.Acquire()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !acquired {
		return forwardActivation(cfg)
	}
	defer lock.Release()

	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()
	pruneJournal(signalCtx, cfg, store, logger)

	notifier := notifications.NewService(cfg)
	sup := supervisor.New(cfg, logger, store, notifier, root)

	var gate *surface.Gate
	if cfg.Surface.Enabled && !noSurface {
		browser := surface.NewBrowser(cfg.Backend.URL, cfg.Surface.Opener, logger)
		gate = surface.NewGate(sup, browser, store, sup.SessionID(), logger)
	}

	ctrl := &controller{cfg: cfg, sup: sup, gate: gate, shutdown: cancel}
	ipcServer, err := ipc.NewServer(signalCtx, cfg.SocketPath(), ctrl, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := sup.Start(signalCtx); err != nil {
		if errors.Is(err, supervisor.ErrShuttingDown) {
			// Interrupted mid-launch; the supervisor already tore the
			// child down.
			logger.Info("stagehand shutting down")
			return nil
		}
		return err
	}
	if gate != nil {
		if err := gate.Activate(signalCtx); err != nil {
			logger.Warn("surface activation failed", logging.Error(err))
		}
	}

	select {
	case <-signalCtx.Done():
		logger.Info("stagehand shutting down")
		sup.Stop()
		return nil
	case detail := <-sup.Fatal():
		sup.Stop()
		return fmt.Errorf("backend exited unexpectedly (%s)", detail)
	}
}

// forwardActivation hands the launch request to the instance that
// already holds the lock, then exits cleanly.
func forwardActivation(cfg *config.Config) error {
	client, err := ipc.Dial(cfg.SocketPath())
	if err != nil {
		return fmt.Errorf("another stagehand instance holds the lock but is unreachable: %w", err)
	}
	defer client.Close()

	resp, err := client.Activate()
	if err != nil {
		return fmt.Errorf("forward activation: %w", err)
	}
	if !resp.Shown {
		fmt.Fprintf(os.Stdout, "Already running (%s)\n", resp.Message)
		return nil
	}
	fmt.Fprintln(os.Stdout, "Already running; surface re-shown by the existing instance")
	return nil
}

func pruneJournal(ctx context.Context, cfg *config.Config, store *journal.Store, logger *slog.Logger) {
	if cfg.Journal.RetentionDays <= 0 {
		return
	}
	retention := time.Duration(cfg.Journal.RetentionDays) * 24 * time.Hour
	pruned, err := store.Prune(ctx, retention)
	if err != nil {
		logger.Warn("journal prune failed", logging.Error(err))
		return
	}
	if pruned > 0 {
		logger.Debug("journal pruned", logging.Int64("events", pruned))
	}
}
