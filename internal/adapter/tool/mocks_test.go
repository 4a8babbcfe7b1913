package tool

import (
	"context"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

var (
	_ output.BrowserPort     = (*mockBrowser)(nil)
	_ output.ScreenshotStore = (*mockStore)(nil)
)

type mockBrowser struct {
	mock.Mock
}

func (m *mockBrowser) Navigate(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

func (m *mockBrowser) Click(ctx context.Context, selector string) error {
	return m.Called(ctx, selector).Error(0)
}

func (m *mockBrowser) Fill(ctx context.Context, selector, value string) error {
	return m.Called(ctx, selector, value).Error(0)
}

func (m *mockBrowser) Screenshot(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockBrowser) ExtractElements(ctx context.Context, tags []string) ([]entity.ElementDescriptor, error) {
	args := m.Called(ctx, tags)
	elements, _ := args.Get(0).([]entity.ElementDescriptor)
	return elements, args.Error(1)
}

func (m *mockBrowser) CurrentURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockBrowser) Close() error {
	return m.Called().Error(0)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, raw []byte) (*entity.Screenshot, error) {
	args := m.Called(ctx, raw)
	shot, _ := args.Get(0).(*entity.Screenshot)
	return shot, args.Error(1)
}
