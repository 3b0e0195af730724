package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kn1ghtofzero/web-automation-agent/infrastructure/config"
	"github.com/kn1ghtofzero/web-automation-agent/infrastructure/logging"
)

var (
	configFile string
	headless   bool
	noConfirm  bool
	logLevel   string
)

// Execute builds and runs the root command
func Execute() error {
	root := &cobra.Command{
		Use:           "web-automation-agent",
		Short:         "Turns natural-language commands into browser action plans and executes them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file")
	root.PersistentFlags().BoolVar(&headless, "headless", false, "run the browser without a window")
	root.PersistentFlags().BoolVar(&noConfirm, "no-confirm", false, "close the browser immediately after the last action")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newPlanCommand(), newRunCommand())

	return root.Execute()
}

// setup loads configuration, applies flag overrides and builds the logger
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = headless
	}
	if noConfirm {
		cfg.KeepOpen = false
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogFile), nil
}

// runInteractive is the default mode: a prompt loop reading one
// command at a time
func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Web Automation Agent")
	fmt.Println("====================")
	fmt.Println("Type a command for the agent, or 'quit' to exit")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" || input == "q" {
			fmt.Println("Goodbye!")
			return nil
		}

		if err := compileAndRun(cmd.Context(), cfg, logger, input); err != nil {
			fmt.Printf("\n%v\n\n", err)
		}
	}
}
