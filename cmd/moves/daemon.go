package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/daemon"
	"github.com/1broseidon/moves/internal/hotkeys"
	"github.com/1broseidon/moves/internal/ipc"
	"github.com/1broseidon/moves/internal/modifiers"
	"github.com/1broseidon/moves/internal/placement"
	"github.com/1broseidon/moves/internal/platform"
	"github.com/1broseidon/moves/internal/runtimepath"
	"github.com/1broseidon/moves/internal/tray"
)

func runDaemon() int {
	if err := ipc.NewClient().Ping(); err == nil {
		log.Printf("moves daemon is already running")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	log.Printf("Configuration loaded (move: %s, resize: %s, enabled: %v)",
		strings.Join(cfg.MoveModifiers, "+"), strings.Join(cfg.ResizeModifiers, "+"), cfg.Enabled)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer backend.Disconnect()

	var level slog.LevelVar
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	watcher := daemon.NewWatcher(backend, cfg, daemon.WatcherConfig{
		Logger: logger,
		Locks:  modifiers.Mask(backend.LockModifiers()),
	})
	placer := placement.NewPlacer(backend)

	hotkeyHandler := hotkeys.NewHandler(backend, watcher, placer)
	if err := hotkeyHandler.Register(cfg); err != nil {
		log.Printf("Warning: hotkeys unavailable: %v", err)
	}

	reloadChan := make(chan struct{}, 1)

	ipcServer, err := ipc.NewServer(cfg, watcher, placer, backend, reloadChan)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer ipcServer.Stop()

	pidPath, err := writePIDFile()
	if err != nil {
		log.Printf("Warning: %v", err)
	} else {
		defer os.Remove(pidPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stopOnce sync.Once
	shutdown := func() {
		stopOnce.Do(func() {
			log.Println("Shutting down moves daemon...")
			cancel()
			backend.StopEventLoop()
		})
	}

	var trayManager *tray.Manager
	if cfg.ShowInTray {
		trayManager = tray.NewManager(tray.Dependencies{
			Enabled: watcher.Enabled,
			OnSetEnabled: func(enabled bool) {
				watcher.SetEnabled(enabled)
			},
			OnQuit: shutdown,
		})
		watcher.OnEnabledChange(trayManager.SetEnabled)
		trayManager.Start()
		defer trayManager.Stop()
	}

	go watcher.Run(ctx)

	applyConfig := func(newCfg *config.Config) {
		level.Set(newCfg.SlogLevel())
		watcher.UpdateConfig(newCfg)
		if err := hotkeyHandler.Reload(newCfg); err != nil {
			log.Printf("Hotkey reload failed: %v", err)
		}
		if newCfg.ShowInTray != (trayManager != nil) {
			log.Printf("show_in_tray change takes effect after a daemon restart")
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					newCfg, err := config.Load()
					if err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}
					ipcServer.UpdateConfig(newCfg)
					applyConfig(newCfg)
					log.Println("Config reloaded successfully")

				case os.Interrupt, syscall.SIGTERM:
					shutdown()
					return
				}

			case <-reloadChan:
				// Config was reloaded via IPC.
				applyConfig(ipcServer.GetConfig())

			case <-ctx.Done():
				return
			}
		}
	}()

	log.Println("moves daemon started, entering event loop...")
	backend.EventLoop()
	shutdown()
	return 0
}

func writePIDFile() (string, error) {
	path, err := runtimepath.PIDPath()
	if err != nil {
		return "", fmt.Errorf("resolve pid file: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write pid file: %w", err)
	}
	return path, nil
}

// readPIDFile returns the pid recorded by a running daemon.
func readPIDFile() (int, error) {
	path, err := runtimepath.PIDPath()
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("no pid file at %s", path)
		}
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid file %s", path)
	}
	return pid, nil
}
