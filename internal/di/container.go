package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"browser-toolkit/internal/adapter/tool"
	"browser-toolkit/internal/application/port/input"
	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/application/service"
	"browser-toolkit/internal/domain/entity"
	"browser-toolkit/internal/infrastructure/browser/rod"
	"browser-toolkit/internal/infrastructure/llm/openai"
	"browser-toolkit/internal/infrastructure/logger"
	"browser-toolkit/internal/infrastructure/prompts"
	"browser-toolkit/internal/infrastructure/screenshot"
	"browser-toolkit/internal/infrastructure/userinteraction"
	"browser-toolkit/internal/usecase/executor"
)

type Container struct {
	Profile      entity.AgentProfile
	Session      *rod.SessionManager
	Browser      output.BrowserPort
	LLM          output.LLMPort
	Logger       output.LoggerPort
	Tools        output.ToolRegistry
	TaskExecutor input.TaskExecutor

	rootLogger *logger.LoggerAdapter
}

type Config struct {
	APIKey  string
	BaseURL string
	// Model overrides the profile's model.
	Model string

	Headless       bool
	SlowMotion     time.Duration
	BrowserTimeout time.Duration
	NoSandbox      bool
	ScreenshotDir  string

	LogLevel string
	LogFile  string

	MaxIterations int
	// Progress receives step-by-step output. Nil means stdout.
	Progress io.Writer
}

// NewContainer wires everything the profile needs. The browser is not
// launched here: the session is provisioned by the first tool that needs it.
func NewContainer(ctx context.Context, cfg Config, profile entity.AgentProfile) (*Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("container setup aborted: %w", err)
	}

	logCfg := logger.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	logCfg.File = cfg.LogFile

	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c := &Container{
		Profile:    profile,
		Logger:     log.WithField("agent", profile.Name),
		rootLogger: log,
	}

	deps := tool.Deps{Logger: c.Logger, Now: time.Now}
	if needsBrowser(profile) {
		browserCfg := rod.DefaultConfig()
		browserCfg.Headless = cfg.Headless
		browserCfg.SlowMotion = cfg.SlowMotion
		browserCfg.NoSandbox = cfg.NoSandbox
		if cfg.BrowserTimeout > 0 {
			browserCfg.Timeout = cfg.BrowserTimeout
		}

		c.Session = rod.NewSessionManager(browserCfg, c.Logger)
		c.Browser = rod.NewBrowserAdapter(c.Session, c.Logger)

		storeCfg := screenshot.DefaultConfig()
		if cfg.ScreenshotDir != "" {
			storeCfg.Dir = cfg.ScreenshotDir
		}
		deps.Browser = c.Browser
		deps.Screenshots = screenshot.NewStore(storeCfg, c.Logger)
	}

	registry := service.NewToolRegistry(c.Logger)
	if err := tool.RegisterProfile(registry, profile, deps); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	c.Tools = registry

	if err := ctx.Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("container setup aborted: %w", err)
	}

	instructions, err := prompts.GenerateInstructions(profile.Instructions, registry)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to render instructions: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = profile.Model
	}
	llmCfg := openai.DefaultConfig(cfg.APIKey, model)
	llmCfg.BaseURL = cfg.BaseURL
	llmCfg.Logger = c.Logger
	c.LLM = openai.NewAdapter(llmCfg)

	c.TaskExecutor = executor.New(
		c.LLM,
		registry,
		c.Logger,
		userinteraction.NewConsoleProgress(cfg.Progress),
		executor.Config{
			Model:         llmCfg.Model,
			SystemPrompt:  instructions,
			MaxIterations: cfg.MaxIterations,
		},
	)

	c.Logger.Debug("Container ready", "tools", len(registry.All()), "model", llmCfg.Model)
	return c, nil
}

// Close releases the browser first so its process never outlives the logger.
func (c *Container) Close() error {
	var err error
	if c.Browser != nil {
		if cerr := c.Browser.Close(); cerr != nil {
			c.Logger.Warn("Failed to close browser", "error", cerr)
			err = cerr
		}
	}
	if c.rootLogger != nil {
		c.rootLogger.Close()
	}
	return err
}

func needsBrowser(profile entity.AgentProfile) bool {
	for _, name := range profile.Tools {
		switch name {
		case entity.ToolGetCurrentTime, entity.ToolGetMenu:
		default:
			return true
		}
	}
	return false
}
