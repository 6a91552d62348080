package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdulhadi/ustaad/internal/adapters/attachment"
	"github.com/abdulhadi/ustaad/internal/adapters/identity"
	"github.com/abdulhadi/ustaad/internal/adapters/llm"
	"github.com/abdulhadi/ustaad/internal/adapters/speech"
	"github.com/abdulhadi/ustaad/internal/app/session"
	"github.com/abdulhadi/ustaad/internal/config"
	"github.com/abdulhadi/ustaad/internal/domain"
	"github.com/abdulhadi/ustaad/internal/observability"
	"github.com/abdulhadi/ustaad/internal/subjects"
	"github.com/abdulhadi/ustaad/internal/tui"
)

const version = "1.0.0"

func main() {
	var useMock bool

	root := &cobra.Command{
		Use:   "ustaad",
		Short: "Abdul Hadi — an AI tutor for school subjects, in your terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(useMock)
		},
		SilenceUsage: true,
	}
	root.Flags().BoolVar(&useMock, "mock", false, "use the offline mock tutor instead of Gemini")

	root.AddCommand(
		&cobra.Command{
			Use:   "subjects",
			Short: "List the subject catalog",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.Load()
				catalog, err := subjects.LoadDefault(cfg.SubjectsFile)
				if err != nil {
					return err
				}
				for _, s := range catalog.All() {
					fmt.Printf("%-12s %s\n", s.ID, s.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored display name",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.Load()
				return identity.NewFileStore(cfg.IdentityFile).Clear()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println("ustaad", version)
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runChat(useMock bool) error {
	cfg := config.Load()

	// The TUI owns the terminal, so logs go to a file.
	if f, err := openLogFile(cfg.LogFile); err == nil {
		defer f.Close()
		observability.SetOutput(f)
	}

	catalog, err := subjects.LoadDefault(cfg.SubjectsFile)
	if err != nil {
		return err
	}

	var tutor domain.TutorClient
	if useMock || cfg.UseMockTutor {
		observability.Logger().Info("using mock tutor client")
		tutor = llm.NewMockTutor()
	} else {
		client, err := llm.NewGeminiClient(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("initializing tutor client: %w", err)
		}
		tutor = client
	}

	mgr := session.NewManager(
		tutor,
		speech.NewCommandRecognizer(cfg.SpeechCommand, cfg.SpeechLanguage),
		attachment.NewReader(),
		identity.NewFileStore(cfg.IdentityFile),
		catalog,
	)

	return tui.Run(mgr, catalog)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
