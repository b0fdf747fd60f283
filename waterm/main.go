package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rhystmorgan/waLink/internal/audit"
	"rhystmorgan/waLink/internal/config"
	"rhystmorgan/waLink/internal/link"
	"rhystmorgan/waLink/internal/logging"
	"rhystmorgan/waLink/internal/models"
	"rhystmorgan/waLink/internal/views"
)

const usage = `Usage:
  waterm                 start the composer
  waterm export [file]   write saved contacts to a .json or .csv file
  waterm import <file>   add contacts from a .json or .csv file
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if config.IsDebugEnabled() {
		level = "debug"
	}
	logger, err := logging.New(cfg.DataDir, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Sync()

	kv, err := cfg.OpenStore(context.Background())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if closer, ok := kv.(io.Closer); ok {
		defer closer.Close()
	}

	logger.Info("starting",
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("sealed", cfg.Passphrase != ""),
		zap.String("locale", cfg.Language().String()),
	)

	auditor := audit.NewAuditor(logger)
	contacts := models.NewContactStore(kv, logger, auditor)
	contacts.SetLanguage(cfg.Language())

	if len(args) > 0 {
		switch args[0] {
		case "export":
			path := ""
			if len(args) > 1 {
				path = args[1]
			}
			return exportContacts(os.Stdout, contacts, cfg.DataDir, path)
		case "import":
			if len(args) < 2 {
				return fmt.Errorf("import requires a file path")
			}
			return importContacts(os.Stdout, contacts, logger, args[1])
		default:
			flag.Usage()
			return fmt.Errorf("unknown command: %s", args[0])
		}
	}

	app := views.NewAppModel(views.Dependencies{
		Contacts:    contacts,
		History:     models.NewHistoryStore(kv, logger, auditor, cfg.HistoryLimit),
		Templates:   models.NewTemplateStore(kv, logger, auditor),
		CountryCode: cfg.CountryCode,
		Opener:      link.Open,
		Clipboard:   clipboard.WriteAll,
		Logger:      logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run application: %w", err)
	}
	return nil
}
