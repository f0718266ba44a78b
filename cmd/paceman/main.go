package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/studiowebux/paceman/internal/cli"
	"github.com/studiowebux/paceman/internal/config"
	"github.com/studiowebux/paceman/internal/dispatch"
	"github.com/studiowebux/paceman/internal/executor"
	"github.com/studiowebux/paceman/internal/history"
	"github.com/studiowebux/paceman/internal/logging"
	"github.com/studiowebux/paceman/internal/parser"
	"github.com/studiowebux/paceman/internal/tui"
	"github.com/studiowebux/paceman/internal/version"
)

var (
	appVersion = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paceman",
	Short: "paceman - interactive HTTP request composer",
	Long: `paceman is a terminal HTTP client.

Run without arguments to start the interactive composer, or use 'paceman send'
to dispatch a single request from the command line.

Examples:
  paceman                                   # Start the composer
  paceman --load api.http --name "get user" # Start with a request from a file
  paceman send https://example.com          # GET and print the response
  paceman send POST https://example.com -o json
  paceman send -f requests.yaml -n login --full
  paceman history -n 10                     # Recently sent requests`,
	Version:       appVersion,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var sendCmd = &cobra.Command{
	Use:   "send [METHOD] [URL]",
	Short: "Send one request and print the response",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(args)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently sent requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd)
	},
}

// Global flags
var (
	flagConfig  string
	flagEnvFile string
	flagDebug   bool
)

// Flags for the root command
var (
	flagLoad string
	flagName string
)

// Flags for send
var (
	flagMethod string
	flagFile   string
	flagOutput string
	flagFull   bool
	flagFilter string
	flagQuery  string
	flagSave   string
	flagFail   bool
)

// Flags for history and version
var (
	flagLimit int
	flagClear bool
	flagCheck bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.paceman/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Load environment variables from file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.Flags().StringVarP(&flagLoad, "load", "l", "", "Start with a request loaded from a file")
	rootCmd.Flags().StringVarP(&flagName, "name", "n", "", "Request name inside the file")

	sendCmd.Flags().StringVarP(&flagMethod, "method", "X", "", "HTTP method (overrides the file or positional method)")
	sendCmd.Flags().StringVarP(&flagFile, "file", "f", "", "Request file (.yaml, .json, .jsonc, .http)")
	sendCmd.Flags().StringVarP(&flagName, "name", "n", "", "Request name inside the file")
	sendCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml/body)")
	sendCmd.Flags().BoolVar(&flagFull, "full", false, "Show headers in text output")
	sendCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter applied to a JSON body")
	sendCmd.Flags().StringVar(&flagQuery, "query", "", "JMESPath query applied after the filter")
	sendCmd.Flags().StringVarP(&flagSave, "save", "s", "", "Save output to file")
	sendCmd.Flags().BoolVar(&flagFail, "fail", false, "Exit with an error on status 400 or above")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of entries (0 for all)")
	historyCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all history")

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check for a newer release")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and opens the log file
func setup() (*config.Config, *logrus.Logger, func() error, error) {
	if err := config.Initialize(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: flagConfig,
		EnvFile:    flagEnvFile,
		Version:    appVersion,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	log, closeLog, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Debug: flagDebug,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, closeLog, nil
}

// runTUI starts the interactive composer
func runTUI() error {
	cfg, log, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.RunOptions{
		Config:  cfg,
		Logger:  log,
		Version: appVersion,
	}

	if flagLoad != "" {
		req, err := parser.Load(flagLoad, flagName)
		if err != nil {
			return err
		}
		resolver := parser.NewResolver(nil)
		req = resolver.ExpandRequest(req)
		if unresolved := resolver.Unresolved(); len(unresolved) > 0 {
			log.WithField("variables", unresolved).Warn("unresolved variables in loaded request")
		}
		opts.Initial = &req
	}

	return tui.Run(opts)
}

// runSend dispatches one request from the command line
func runSend(args []string) error {
	cfg, log, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := cli.SendOptions{
		Method:       flagMethod,
		FilePath:     flagFile,
		Name:         flagName,
		OutputFormat: flagOutput,
		ShowFull:     flagFull,
		Filter:       flagFilter,
		Query:        flagQuery,
		SavePath:     flagSave,
		Fail:         flagFail,
		Interactive:  isInteractive(),
	}

	switch len(args) {
	case 1:
		opts.URL = args[0]
	case 2:
		if opts.Method == "" {
			opts.Method = args[0]
		}
		opts.URL = args[1]
	}
	if opts.URL != "" && opts.FilePath != "" {
		return fmt.Errorf("use either a URL or a request file (-f), not both")
	}

	client := executor.NewClient(
		executor.WithTimeout(cfg.RequestTimeout),
		executor.WithUserAgent(cfg.UserAgent),
	)

	dispatchOpts := []dispatch.Option{dispatch.WithLogger(log)}
	if cfg.RecordHistory {
		hist, err := history.NewManager(cfg.StateDB)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer hist.Close()
		dispatchOpts = append(dispatchOpts, dispatch.WithRecorder(hist))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Send(ctx, dispatch.New(client, dispatchOpts...), opts)
}

// runHistory lists or clears the send history
func runHistory() error {
	cfg, _, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	hist, err := history.NewManager(cfg.StateDB)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer hist.Close()

	if flagClear {
		if err := hist.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared")
		return nil
	}

	entries, err := hist.Recent(flagLimit)
	if err != nil {
		return err
	}
	return cli.PrintHistory(os.Stdout, entries, flagOutput)
}

// runVersion prints the version and optionally checks for a newer release
func runVersion(cmd *cobra.Command) error {
	fmt.Printf("paceman %s\n", appVersion)
	if !flagCheck {
		return nil
	}

	cfg, _, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	res, err := version.NewChecker(cfg.UpdateURL, cfg.UserAgent).Check(cmd.Context(), appVersion)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}

	if res.Available {
		fmt.Printf("New version available: %s\n%s\n", res.Latest, res.URL)
	} else {
		fmt.Println("You are running the latest version")
	}
	return nil
}

// isInteractive reports whether stdin is a terminal
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
