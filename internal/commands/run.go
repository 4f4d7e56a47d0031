package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/salmoriadev/bancodio3.0/internal/bank"
	"github.com/salmoriadev/bancodio3.0/internal/config"
	"github.com/salmoriadev/bancodio3.0/internal/logger"
	"github.com/salmoriadev/bancodio3.0/internal/shell"
)

func newRunCommand(global *globalOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive banking menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, *global, input)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "read menu input from a file instead of stdin")

	return cmd
}

func runShell(cmd *cobra.Command, global globalOptions, input string) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	settings, err := bankSettings(cfg)
	if err != nil {
		return err
	}
	b := bank.New(settings, bank.WithLogger(log))

	var in io.Reader = cmd.InOrStdin()
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	log.Debug().
		Str("bank", cfg.Bank.Name).
		Str("branch", settings.Branch).
		Str("window", string(settings.Checking.Window)).
		Msg("session started")

	if err := shell.New(b, cfg.Bank.Name, in, cmd.OutOrStdout()).Run(); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}

	log.Debug().Int("accounts", len(b.ListAccounts())).Msg("session ended")
	return nil
}

// loadConfig returns the config file's contents, or the defaults when no file
// was given, with flag overrides applied.
func loadConfig(global globalOptions) (*config.Config, error) {
	cfg := config.Default()
	if global.configPath != "" {
		loaded, err := config.Load(global.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if global.logLevel != "" {
		cfg.Log.Level = global.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func bankSettings(cfg *config.Config) (bank.Settings, error) {
	limit, err := cfg.CheckingLimit()
	if err != nil {
		return bank.Settings{}, err
	}
	return bank.Settings{
		Branch: cfg.Bank.Branch,
		Checking: bank.CheckingPolicy{
			WithdrawalLimit: limit,
			MaxWithdrawals:  cfg.Checking.MaxWithdrawals,
			Window:          bank.Window(cfg.Checking.WithdrawalWindow),
		},
	}, nil
}
