package rod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const screenshotQuality = 20

const extractElementsJS = `(selector) => Array.from(document.querySelectorAll(selector)).map((el) => {
	const tag = el.tagName.toLowerCase();
	const classes = typeof el.className === "string" ? el.className.trim().split(/\s+/).filter(Boolean) : [];
	return {
		selector: tag + (el.id ? "#" + el.id : "") + (classes.length ? "." + classes.join(".") : ""),
		type: tag,
		text: el.innerText || el.value || "",
		placeholder: el.placeholder || "",
		name: typeof el.name === "string" ? el.name : "",
	};
})`

// writableJS reports whether typing into the element changes its value.
const writableJS = `() => {
	if (this.disabled || this.readOnly) return false;
	if (this.isContentEditable) return true;
	const tag = this.tagName.toLowerCase();
	if (tag === "textarea") return true;
	if (tag !== "input") return false;
	return !["button", "checkbox", "color", "file", "hidden", "image", "radio", "range", "reset", "submit"].includes(this.type);
}`

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
	"about": true,
}

type BrowserAdapter struct {
	session *SessionManager
	logger  output.LoggerPort
}

func NewBrowserAdapter(session *SessionManager, logger output.LoggerPort) *BrowserAdapter {
	return &BrowserAdapter{session: session, logger: logger}
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}

	err := b.session.Do(ctx, func(page *rod.Page) error {
		if err := page.Navigate(rawURL); err != nil {
			return err
		}
		return page.WaitLoad()
	})
	if err != nil {
		return classify(err, entity.ErrNavigation, "open "+rawURL)
	}
	return nil
}

func (b *BrowserAdapter) Click(ctx context.Context, selector string) error {
	err := b.session.Do(ctx, func(page *rod.Page) error {
		el, err := findElement(page, selector)
		if err != nil {
			return err
		}
		disabled, err := el.Eval(`() => !!this.disabled`)
		if err != nil {
			return err
		}
		if disabled.Value.Bool() {
			return fmt.Errorf("%w: %s is disabled", entity.ErrElementNotFound, selector)
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("%w: %s is not interactable: %v", entity.ErrElementNotFound, selector, err)
		}
		return nil
	})
	if err != nil {
		return classify(err, entity.ErrElementNotFound, "click "+selector)
	}
	return nil
}

// Fill replaces the element's content with value.
func (b *BrowserAdapter) Fill(ctx context.Context, selector, value string) error {
	err := b.session.Do(ctx, func(page *rod.Page) error {
		el, err := findElement(page, selector)
		if err != nil {
			return err
		}
		writable, err := el.Eval(writableJS)
		if err != nil {
			return err
		}
		if !writable.Value.Bool() {
			return fmt.Errorf("%w: %s is not writable", entity.ErrElementNotFound, selector)
		}
		if value == "" {
			_, err := el.Eval(`() => {
				this.value = "";
				this.dispatchEvent(new Event("input", { bubbles: true }));
				this.dispatchEvent(new Event("change", { bubbles: true }));
			}`)
			return err
		}
		if err := el.SelectAllText(); err != nil {
			b.logger.Debug("Select all failed, typing anyway", "selector", selector, "error", err)
		}
		if err := el.Input(value); err != nil {
			return fmt.Errorf("%w: %s is not writable: %v", entity.ErrElementNotFound, selector, err)
		}
		return nil
	})
	if err != nil {
		return classify(err, entity.ErrElementNotFound, "fill "+selector)
	}
	return nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) ([]byte, error) {
	var data []byte
	err := b.session.DoExisting(ctx, func(page *rod.Page) error {
		var err error
		data, err = page.Screenshot(false, &proto.PageCaptureScreenshot{
			Format:  proto.PageCaptureScreenshotFormatJpeg,
			Quality: gson.Int(screenshotQuality),
		})
		return err
	})
	if err != nil {
		return nil, classify(err, entity.ErrCapture, "screenshot")
	}
	return data, nil
}

func (b *BrowserAdapter) ExtractElements(ctx context.Context, tags []string) ([]entity.ElementDescriptor, error) {
	selector := strings.Join(tags, ", ")

	var elements []entity.ElementDescriptor
	err := b.session.DoExisting(ctx, func(page *rod.Page) error {
		res, err := page.Eval(extractElementsJS, selector)
		if err != nil {
			return err
		}
		raw, err := res.Value.MarshalJSON()
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &elements)
	})
	if err != nil {
		return nil, classify(err, entity.ErrQuery, "extract "+selector)
	}
	return elements, nil
}

func (b *BrowserAdapter) CurrentURL(ctx context.Context) (string, error) {
	var current string
	err := b.session.DoExisting(ctx, func(page *rod.Page) error {
		info, err := page.Info()
		if err != nil {
			return err
		}
		current = info.URL
		return nil
	})
	if err != nil {
		return "", classify(err, entity.ErrQuery, "current url")
	}
	return current, nil
}

func (b *BrowserAdapter) Close() error {
	return b.session.Release()
}

// findElement looks the selector up once, without waiting for it to appear.
func findElement(page *rod.Page, selector string) (*rod.Element, error) {
	found, el, err := page.Has(selector)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrElementNotFound, selector, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", entity.ErrElementNotFound, selector)
	}
	return el, nil
}

func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: empty url", entity.ErrNavigation)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: invalid url %q: %v", entity.ErrNavigation, rawURL, err)
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return fmt.Errorf("%w: unsupported url scheme in %q", entity.ErrNavigation, rawURL)
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return fmt.Errorf("%w: url %q has no host", entity.ErrNavigation, rawURL)
	}
	return nil
}

// classify tags err with kind unless it already carries a kind of its own.
// Timeouts and lifecycle errors pass through untouched so callers can tell
// them apart.
func classify(err error, kind error, op string) error {
	switch {
	case errors.Is(err, entity.ErrTimeout),
		errors.Is(err, entity.ErrSessionClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, kind):
		return err
	}
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}
