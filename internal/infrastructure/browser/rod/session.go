package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultSlowMotion = 0
)

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	// Timeout bounds every page operation.
	Timeout   time.Duration
	NoSandbox bool
	DevTools  bool
	// Bin overrides the browser executable. Empty means let the launcher find or download one.
	Bin string
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   false,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
		NoSandbox:  false,
		DevTools:   false,
	}
}

// Session is the one browser + page pair of a process.
type Session struct {
	Browser *rod.Browser
	Page    *rod.Page
}

// SessionManager provisions the session lazily on first use and serializes
// every operation on it. Release tears it down; after that every call fails
// with entity.ErrSessionClosed.
type SessionManager struct {
	mu       sync.Mutex
	cfg      BrowserConfig
	logger   output.LoggerPort
	launcher *launcher.Launcher
	session  *Session
	closed   bool
}

func NewSessionManager(cfg BrowserConfig, logger output.LoggerPort) *SessionManager {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &SessionManager{cfg: cfg, logger: logger}
}

func (m *SessionManager) Timeout() time.Duration {
	return m.cfg.Timeout
}

// Acquire returns the session, launching the browser on the first call.
func (m *SessionManager) Acquire(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquireLocked(ctx)
}

// Provisioned reports whether a live session exists.
func (m *SessionManager) Provisioned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil && !m.closed
}

// Do runs fn against the page, provisioning the session if needed. The page
// handed to fn is bound to a context carrying the operation deadline.
func (m *SessionManager) Do(ctx context.Context, fn func(page *rod.Page) error) error {
	return m.run(ctx, true, fn)
}

// DoExisting is Do without provisioning: it fails with entity.ErrNoSession
// when no page has been opened yet.
func (m *SessionManager) DoExisting(ctx context.Context, fn func(page *rod.Page) error) error {
	return m.run(ctx, false, fn)
}

func (m *SessionManager) run(ctx context.Context, provision bool, fn func(page *rod.Page) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return entity.ErrSessionClosed
	}
	if m.session == nil && !provision {
		return entity.ErrNoSession
	}

	opCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	session, err := m.acquireLocked(opCtx)
	if err != nil {
		return err
	}

	err = fn(session.Page.Context(opCtx))
	if err == nil {
		return nil
	}
	if errors.Is(opCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("%w after %s: %v", entity.ErrTimeout, m.cfg.Timeout, err)
	}
	return err
}

func (m *SessionManager) acquireLocked(ctx context.Context) (*Session, error) {
	if m.closed {
		return nil, entity.ErrSessionClosed
	}
	if m.session != nil {
		return m.session, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The launcher is not bound to ctx: cancelling it would kill the
	// browser once the first operation finishes.
	l := launcher.New().
		Headless(m.cfg.Headless).
		Devtools(m.cfg.DevTools).
		NoSandbox(m.cfg.NoSandbox).
		Delete("use-mock-keychain")
	if m.cfg.Bin != "" {
		l = l.Bin(m.cfg.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(controlURL).
		SlowMotion(m.cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	m.launcher = l
	m.session = &Session{Browser: browser, Page: page}

	if m.logger != nil {
		m.logger.Info("Browser session started", "headless", m.cfg.Headless)
	}
	return m.session, nil
}

// Release closes the browser and kills its process. It is safe to call more
// than once and waits for an in-flight operation to finish.
func (m *SessionManager) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	var err error
	if m.session != nil {
		err = m.session.Browser.Close()
		m.session = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher.Cleanup()
		m.launcher = nil
	}

	if m.logger != nil {
		m.logger.Info("Browser session released")
	}
	return err
}
