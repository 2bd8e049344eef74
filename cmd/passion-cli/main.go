package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"passion-cli/internal/agent"
	anthropicmodel "passion-cli/internal/agent/anthropic"
	openaimodel "passion-cli/internal/agent/openai"
	"passion-cli/internal/config"
	"passion-cli/internal/console"
	"passion-cli/internal/display"
	"passion-cli/internal/history"
	"passion-cli/internal/logger"
	"passion-cli/internal/prompts"
	"passion-cli/internal/tools"
)

var log = logger.Named("main")

func main() {
	logLevel := flag.String("log-level", "warning", "console logging level (debug, info, warning, error)")
	configPath := flag.String("config", "", "path to config.toml (defaults to .passion/config.toml, then ~/.passion/config.toml)")
	flag.Parse()

	logger.Configure()
	if closer, logPath, err := logger.Setup(*logLevel, config.PassionDir()); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer closer.Close()
		log.Infof("logging to %s", logPath)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client, err := buildClient(cfg)
	if err != nil {
		log.Fatalf("initialize model client: %v", err)
	}

	workdir, err := os.Getwd()
	if err != nil {
		workdir = "."
	}
	toolkit := tools.Default(workdir)

	renderer := display.NewRenderer(display.Options{
		Writer:    os.Stdout,
		AgentName: cfg.Name,
		Width:     display.TerminalWidth(),
		Panels:    display.NewTermPanelFactory(os.Stdout, display.TerminalWidth(), 100*time.Millisecond),
	})

	passion := agent.New(agent.Options{
		Name:   cfg.Name,
		Model:  cfg.Model,
		System: prompts.System(cfg.Name),
		Client: client,
		Tools:  toolkit,
		Render: renderer.Render,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	loopDone := make(chan struct{})
	go func() {
		// The loop blocks on stdin, so an interrupt has to say goodbye here.
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stdout, "\nExiting...")
			os.Exit(0)
		case <-loopDone:
		}
	}()

	loop := console.New(console.Options{
		In:        os.Stdin,
		Out:       os.Stdout,
		Agent:     passion,
		AgentName: cfg.Name,
		History:   history.New(config.PassionDir()),
	})
	err = loop.Run(ctx)
	close(loopDone)
	if err != nil {
		log.Fatalf("console loop: %v", err)
	}
}

// buildClient picks the provider from config. Without a usable API key the
// console still starts, backed by the offline echo client.
func buildClient(cfg config.Config) (agent.ModelClient, error) {
	if !cfg.HasAPIKey() {
		log.Warnf("no API key configured; falling back to the offline echo client")
		fmt.Fprintln(os.Stderr, "Warning: no API key configured, replies will just echo your input.")
		return agent.EchoClient{Prefix: "You said: "}, nil
	}
	switch agent.NormalizeProvider(cfg.Provider) {
	case "openai":
		return openaimodel.New(openaimodel.Options{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "anthropic", "":
		return anthropicmodel.New(anthropicmodel.Options{
			Token:   cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q (want anthropic or openai)", cfg.Provider)
	}
}
