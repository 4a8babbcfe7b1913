package screenshot

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var _ output.ScreenshotStore = (*Store)(nil)

const (
	DefaultDir       = "temp"
	DefaultMaxWidth  = 1024
	DefaultMaxHeight = 720
	DefaultQuality   = 10
)

type Config struct {
	Dir       string
	MaxWidth  int
	MaxHeight int
	// Quality of the lossy WebP encoding, 0-100.
	Quality float32
}

func DefaultConfig() Config {
	return Config{
		Dir:       DefaultDir,
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
		Quality:   DefaultQuality,
	}
}

// Store downsamples captures, re-encodes them as WebP and writes them under
// Dir with a random 128-bit hex name.
type Store struct {
	cfg    Config
	logger output.LoggerPort
}

func NewStore(cfg Config, logger output.LoggerPort) *Store {
	def := DefaultConfig()
	if cfg.Dir == "" {
		cfg.Dir = def.Dir
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = def.MaxWidth
	}
	if cfg.MaxHeight <= 0 {
		cfg.MaxHeight = def.MaxHeight
	}
	if cfg.Quality <= 0 {
		cfg.Quality = def.Quality
	}
	return &Store{cfg: cfg, logger: logger}
}

func (s *Store) Save(ctx context.Context, raw []byte) (*entity.Screenshot, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > s.cfg.MaxWidth || b.Dy() > s.cfg.MaxHeight {
		img = imaging.Fit(img, s.cfg.MaxWidth, s.cfg.MaxHeight, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: s.cfg.Quality}); err != nil {
		return nil, fmt.Errorf("webp encode failed: %w", err)
	}

	if err := os.MkdirAll(s.cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create screenshot dir: %w", err)
	}

	path := filepath.Join(s.cfg.Dir, randomName()+".webp")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write screenshot: %w", err)
	}

	shot := &entity.Screenshot{
		Path:        path,
		Format:      "webp",
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Data:        buf.Bytes(),
		EncodedSize: base64.StdEncoding.EncodedLen(buf.Len()),
	}

	if s.logger != nil {
		s.logger.Info("Screenshot saved",
			"path", shot.Path,
			"width", shot.Width,
			"height", shot.Height,
			"bytes", buf.Len(),
			"base64Len", shot.EncodedSize)
	}
	return shot, nil
}

// randomName is 32 lowercase hex characters.
func randomName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
