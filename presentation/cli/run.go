package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kn1ghtofzero/web-automation-agent/application/compiler"
	"github.com/kn1ghtofzero/web-automation-agent/application/executor"
	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
	"github.com/kn1ghtofzero/web-automation-agent/infrastructure/browser"
	"github.com/kn1ghtofzero/web-automation-agent/infrastructure/config"
)

// newPlanCommand compiles a command and prints the plan as JSON
// without touching a browser
func newPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <command...>",
		Short: "Compile a command into an action plan and print it as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			plan, err := compiler.NewCompiler(logger).Compile(strings.Join(args, " "))
			if err != nil {
				return err
			}

			data, err := entities.MarshalPlan(plan)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

// newRunCommand compiles (or loads) a plan and executes it against a
// live browser session
func newRunCommand() *cobra.Command {
	var planFile string

	cmd := &cobra.Command{
		Use:   "run <command...>",
		Short: "Compile a command and execute the plan in a browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			if planFile != "" {
				data, err := os.ReadFile(planFile)
				if err != nil {
					return fmt.Errorf("failed to read plan file: %w", err)
				}
				plan, err := entities.UnmarshalPlan(data)
				if err != nil {
					return err
				}
				return executePlan(cmd.Context(), cfg, logger, plan)
			}

			if len(args) == 0 {
				return fmt.Errorf("provide a command or --plan-file")
			}
			return compileAndRun(cmd.Context(), cfg, logger, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&planFile, "plan-file", "", "execute a plan from a JSON file instead of compiling a command")
	return cmd
}

// compileAndRun compiles one command and executes the resulting plan.
// Validation failures reject the plan before any session is opened.
func compileAndRun(ctx context.Context, cfg *config.Config, logger *logrus.Logger, command string) error {
	plan, err := compiler.NewCompiler(logger).Compile(command)
	if err != nil {
		return err
	}
	return executePlan(ctx, cfg, logger, plan)
}

func executePlan(ctx context.Context, cfg *config.Config, logger *logrus.Logger, plan entities.ActionPlan) error {
	session, err := browser.NewSession(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open browser session: %w", err)
	}
	defer session.Close()

	exec := executor.New(session, cfg, logger)
	if cfg.KeepOpen {
		exec.Confirm = func() {
			fmt.Print("\nActions completed! Press Enter to close the browser...")
			_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		}
	}

	log := exec.Execute(ctx, plan)
	fmt.Printf("\nRun %s: %s\n", log.RunID, log.Summary())
	return nil
}
