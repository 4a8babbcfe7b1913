package output

import (
	"context"

	"browser-toolkit/internal/domain/entity"
)

// BrowserPort is the single shared page every browser tool drives.
// Implementations serialize calls and bound each one with a deadline.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error

	// Screenshot returns the raw capture of the current viewport.
	Screenshot(ctx context.Context) ([]byte, error)
	ExtractElements(ctx context.Context, tags []string) ([]entity.ElementDescriptor, error)

	CurrentURL(ctx context.Context) (string, error)
	Close() error
}

type ScreenshotStore interface {
	Save(ctx context.Context, raw []byte) (*entity.Screenshot, error)
}
