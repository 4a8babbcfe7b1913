package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"browser-toolkit/internal/di"
	"browser-toolkit/internal/domain/entity"
	"browser-toolkit/internal/infrastructure/env"
	"browser-toolkit/internal/infrastructure/logger"
	"browser-toolkit/internal/infrastructure/prompts"
	"browser-toolkit/internal/infrastructure/screenshot"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const defaultBrowserTimeout = 30 * time.Second

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "browser-toolkit",
		Short:         "Schema-validated browser and menu tools driven by an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(entity.AgentTypeWebsite, "browse [task...]", "Drive a real browser to complete a task"),
		newRunCmd(entity.AgentTypeCooking, "cook [message...]", "Ask the cooking agent about the menu"),
		newToolsCmd(),
	)
	return rootCmd
}

func newRunCmd(agentType entity.AgentType, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, _ := prompts.Profile(agentType)

			envService := env.NewEnvService()
			apiKey, err := envService.MustGet("OPENAI_API_KEY")
			if err != nil {
				return err
			}

			cfg := configFromEnv(envService)
			cfg.APIKey = apiKey
			cfg.Progress = cmd.OutOrStdout()

			task := strings.TrimSpace(strings.Join(args, " "))
			if task == "" {
				task = profile.DefaultTask
			}

			container, err := di.NewContainer(cmd.Context(), cfg, profile)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			defer container.Close()

			container.Logger.Info("Task started", "task", task)

			result, err := container.TaskExecutor.Execute(cmd.Context(), task)
			if err != nil {
				container.Logger.Error("Task failed", "error", err)
				return fmt.Errorf("task failed: %w", err)
			}

			container.Logger.Info("Task completed", "iterations", result.Iterations, "toolCalls", result.ToolCalls)
			printAnswer(cmd.OutOrStdout(), result.FinalAnswer)
			return nil
		},
	}
}

func newToolsCmd() *cobra.Command {
	var agent string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool definitions an agent exposes as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := prompts.Profile(entity.AgentType(agent))
			if !ok {
				return fmt.Errorf("unknown agent %q (want %s or %s)", agent, entity.AgentTypeWebsite, entity.AgentTypeCooking)
			}

			cfg := configFromEnv(env.NewEnvService())
			cfg.LogFile = ""
			cfg.LogLevel = "error"
			cfg.Progress = io.Discard

			container, err := di.NewContainer(cmd.Context(), cfg, profile)
			if err != nil {
				return err
			}
			defer container.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(definitionsJSON(container.Tools.Definitions()))
		},
	}

	cmd.Flags().StringVarP(&agent, "agent", "a", string(entity.AgentTypeWebsite), "agent whose tools to print (website, cooking)")
	return cmd
}

type definitionJSON struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

func definitionsJSON(defs []entity.ToolDefinition) []definitionJSON {
	out := make([]definitionJSON, 0, len(defs))
	for _, d := range defs {
		out = append(out, definitionJSON{
			Name:        d.Name.String(),
			Description: d.Description,
			Parameters:  d.Parameters,
		})
	}
	return out
}

func configFromEnv(e *env.EnvService) di.Config {
	return di.Config{
		BaseURL:        e.Get("OPENAI_BASE_URL"),
		Model:          e.Get("OPENAI_MODEL"),
		Headless:       e.GetBool("BROWSER_HEADLESS", false),
		SlowMotion:     e.GetDuration("BROWSER_SLOW_MOTION", 0),
		BrowserTimeout: e.GetDuration("BROWSER_TIMEOUT", defaultBrowserTimeout),
		NoSandbox:      e.GetBool("BROWSER_NO_SANDBOX", false),
		ScreenshotDir:  e.GetWithDefault("SCREENSHOT_DIR", screenshot.DefaultDir),
		LogLevel:       e.GetWithDefault("LOG_LEVEL", "info"),
		LogFile:        e.GetWithDefault("LOG_FILE", logger.DefaultConfig().File),
		MaxIterations:  e.GetInt("MAX_ITERATIONS", 0),
	}
}

func printAnswer(out io.Writer, answer string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintln(out, "\nFinal answer:")
	fmt.Fprintln(out, answer)
}
