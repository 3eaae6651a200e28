package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"tickit/pkg/api"
	"tickit/pkg/cli"
	"tickit/pkg/commands"
	"tickit/pkg/config"
	"tickit/pkg/database"
	"tickit/pkg/theme"
	"tickit/pkg/ui"
	"tickit/pkg/utils"
)

func main() {
	// Parse command line flags
	args, err := cli.ParseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	// Load configuration
	cfg, styles, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	utils.Log("Config loaded: base_url=%s database=%s", cfg.BaseURL, cfg.Database)

	// Open the local state database
	store, err := database.Open(cfg.Database)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	themes := theme.NewStore(store)
	client := api.New(cfg.BaseURL, &http.Client{Timeout: cfg.RequestTimeout}, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Handle CLI commands if any
	env := commands.NewEnv(client, store, themes)
	handled, err := cli.HandleCommands(ctx, env, args)
	if handled {
		if err != nil {
			utils.LogError("command", err)
			fmt.Println(commands.Friendly(err))
			stop()
			store.Close()
			utils.CloseLogger()
			os.Exit(1)
		}
		return
	}

	// Create and run the Bubble Tea program
	model := ui.NewModel(client, store, themes, cfg, styles)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
