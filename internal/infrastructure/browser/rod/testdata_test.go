package rod

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"browser-toolkit/internal/infrastructure/logger"

	"github.com/stretchr/testify/require"
)

const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	FormHTML = `<!DOCTYPE html>
<html>
<body>
	<form id="testForm" onsubmit="event.preventDefault(); document.getElementById('status').textContent = 'Submitted';">
		<label for="username">Username</label>
		<input id="username" class="field wide" type="text" name="username" placeholder="Your name" />
		<label for="password">Password</label>
		<input id="password" type="password" name="password" />
		<button id="submit" type="submit">Submit</button>
	</form>
	<a href="/login" id="login">Log in</a>
	<div id="status"></div>
</body>
</html>`

	LockedHTML = `<!DOCTYPE html>
<html>
<body>
	<input id="ro" value="fixed" readonly />
	<input id="off" value="off" disabled />
	<input id="agree" type="checkbox" />
	<select id="size"><option>S</option><option>M</option></select>
	<div id="d">plain text</div>
	<div id="editor" contenteditable="true"></div>
	<textarea id="notes"></textarea>
	<button id="locked" disabled onclick="document.getElementById('d').textContent = 'clicked'">Locked</button>
</body>
</html>`

	InteractiveHTML = `<!DOCTYPE html>
<html>
<body>
	<button id="btn">Click Me</button>
	<div id="result"></div>
	<script>
		document.getElementById('btn').addEventListener('click', function() {
			document.getElementById('result').textContent = 'Clicked!';
		});
	</script>
</body>
</html>`
)

// newPageServer serves each page at its own path.
func newPageServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, html := range pages {
		html := html
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, html)
		})
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig() BrowserConfig {
	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.SlowMotion = 0
	cfg.NoSandbox = true
	cfg.Timeout = 15 * time.Second
	return cfg
}

// newTestAdapter needs a real browser, so it is skipped with -short.
func newTestAdapter(t *testing.T, cfg BrowserConfig) (*BrowserAdapter, *SessionManager) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	session := NewSessionManager(cfg, logger.NewNop())
	t.Cleanup(func() {
		require.NoError(t, session.Release())
	})
	return NewBrowserAdapter(session, logger.NewNop()), session
}
