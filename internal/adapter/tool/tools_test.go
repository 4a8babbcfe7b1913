package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"browser-toolkit/internal/application/service"
	"browser-toolkit/internal/domain/entity"
	"browser-toolkit/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestOpenWebsite(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("Navigate", mock.Anything, "https://example.com").Return(nil)
	browser.On("CurrentURL", mock.Anything).Return("https://example.com/", nil)

	result, err := NewOpenWebsiteTool(browser, logger.NewNop()).
		Execute(ctx, `{"url":"https://example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, "Opened https://example.com/", result.Content)
	assert.Nil(t, result.Image)
	browser.AssertExpectations(t)
}

func TestOpenWebsite_NavigationError(t *testing.T) {
	browser := new(mockBrowser)
	navErr := fmt.Errorf("%w: net::ERR_NAME_NOT_RESOLVED", entity.ErrNavigation)
	browser.On("Navigate", mock.Anything, "https://nowhere.invalid").Return(navErr)

	_, err := NewOpenWebsiteTool(browser, logger.NewNop()).
		Execute(ctx, `{"url":"https://nowhere.invalid"}`)
	assert.ErrorIs(t, err, entity.ErrNavigation)
	browser.AssertNotCalled(t, "CurrentURL", mock.Anything)
}

func TestClickElement(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("Click", mock.Anything, "#submit").Return(nil)

	result, err := NewClickElementTool(browser, logger.NewNop()).Execute(ctx, `{"selector":"#submit"}`)
	require.NoError(t, err)
	assert.Equal(t, "Clicked on #submit", result.Content)
}

func TestClickElement_NotFound(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("Click", mock.Anything, "#missing").Return(fmt.Errorf("%w: #missing", entity.ErrElementNotFound))

	_, err := NewClickElementTool(browser, logger.NewNop()).Execute(ctx, `{"selector":"#missing"}`)
	assert.ErrorIs(t, err, entity.ErrElementNotFound)
}

func TestFillForm_AppliesInOrder(t *testing.T) {
	browser := new(mockBrowser)
	var order []string
	record := func(args mock.Arguments) { order = append(order, args.String(1)) }
	browser.On("Fill", mock.Anything, "#name", "Ada").Run(record).Return(nil)
	browser.On("Fill", mock.Anything, "#email", "ada@example.com").Run(record).Return(nil)

	result, err := NewFillFormTool(browser, logger.NewNop()).Execute(ctx,
		`{"fields":[{"selector":"#name","value":"Ada"},{"selector":"#email","value":"ada@example.com"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "Filled 2 fields successfully", result.Content)
	assert.Equal(t, []string{"#name", "#email"}, order)
}

func TestFillForm_StopsAtFirstFailure(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("Fill", mock.Anything, "#a", "1").Return(nil)
	browser.On("Fill", mock.Anything, "#b", "2").Return(fmt.Errorf("%w: #b", entity.ErrElementNotFound))

	_, err := NewFillFormTool(browser, logger.NewNop()).Execute(ctx,
		`{"fields":[{"selector":"#a","value":"1"},{"selector":"#b","value":"2"},{"selector":"#c","value":"3"}]}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrElementNotFound)
	assert.Contains(t, err.Error(), "field 2 of 3")

	browser.AssertCalled(t, "Fill", mock.Anything, "#a", "1")
	browser.AssertNotCalled(t, "Fill", mock.Anything, "#c", "3")
}

func TestExtractElements(t *testing.T) {
	elements := []entity.ElementDescriptor{
		{Selector: "input#email", Type: "input", Placeholder: "Email", Name: "email"},
		{Selector: "button.primary", Type: "button", Text: "Sign up"},
	}

	tests := []struct {
		name string
		args string
		tags []string
	}{
		{"omitted", `{}`, []string{"input", "button"}},
		{"null", `{"elementTypes":null}`, []string{"input", "button"}},
		{"empty", `{"elementTypes":[]}`, []string{"input", "button"}},
		{"link alias", `{"elementTypes":["link","a","label"]}`, []string{"a", "label"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser := new(mockBrowser)
			browser.On("ExtractElements", mock.Anything, tt.tags).Return(elements, nil)

			result, err := NewExtractElementsTool(browser, logger.NewNop()).Execute(ctx, tt.args)
			require.NoError(t, err)

			var got []entity.ElementDescriptor
			require.NoError(t, json.Unmarshal([]byte(result.Content), &got))
			assert.Equal(t, elements, got)
			browser.AssertExpectations(t)
		})
	}
}

func TestExtractElements_NoMatchesIsEmptyArray(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("ExtractElements", mock.Anything, []string{"label"}).Return(nil, nil)

	result, err := NewExtractElementsTool(browser, logger.NewNop()).Execute(ctx, `{"elementTypes":["label"]}`)
	require.NoError(t, err)
	assert.Equal(t, "[]", result.Content)
}

func TestExtractElements_NoPage(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("ExtractElements", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: %w", entity.ErrQuery, entity.ErrNoSession))

	_, err := NewExtractElementsTool(browser, logger.NewNop()).Execute(ctx, `{}`)
	assert.ErrorIs(t, err, entity.ErrQuery)
}

func TestTakeScreenshot(t *testing.T) {
	raw := []byte("jpeg")
	shot := &entity.Screenshot{Path: "temp/0123.webp", Format: "webp", Width: 1024, Height: 576, Data: []byte{1}, EncodedSize: 4}

	browser := new(mockBrowser)
	browser.On("Screenshot", mock.Anything).Return(raw, nil)
	store := new(mockStore)
	store.On("Save", mock.Anything, raw).Return(shot, nil)

	result, err := NewTakeScreenshotTool(browser, store, logger.NewNop()).Execute(ctx, `{}`)
	require.NoError(t, err)
	assert.Same(t, shot, result.Image)
	assert.JSONEq(t, `{"path":"temp/0123.webp","width":1024,"height":576,"encoded_size":4}`, result.Content)
}

func TestTakeScreenshot_Errors(t *testing.T) {
	t.Run("capture", func(t *testing.T) {
		browser := new(mockBrowser)
		browser.On("Screenshot", mock.Anything).Return(nil, fmt.Errorf("%w: no page", entity.ErrCapture))
		store := new(mockStore)

		_, err := NewTakeScreenshotTool(browser, store, logger.NewNop()).Execute(ctx, `{}`)
		assert.ErrorIs(t, err, entity.ErrCapture)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("persist", func(t *testing.T) {
		browser := new(mockBrowser)
		browser.On("Screenshot", mock.Anything).Return([]byte("jpeg"), nil)
		store := new(mockStore)
		store.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		_, err := NewTakeScreenshotTool(browser, store, logger.NewNop()).Execute(ctx, `{}`)
		assert.ErrorIs(t, err, entity.ErrCapture)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestGetCurrentTime(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	result, err := NewGetCurrentTimeTool(func() time.Time { return fixed }).Execute(ctx, `{}`)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14T09:26:53.589793Z", result.Content)
}

func TestGetCurrentTime_NonDecreasing(t *testing.T) {
	tool := NewGetCurrentTimeTool(nil)

	first, err := tool.Execute(ctx, `{}`)
	require.NoError(t, err)
	second, err := tool.Execute(ctx, `{}`)
	require.NoError(t, err)

	a, err := time.Parse(time.RFC3339Nano, first.Content)
	require.NoError(t, err)
	b, err := time.Parse(time.RFC3339Nano, second.Content)
	require.NoError(t, err)
	assert.False(t, b.Before(a))
}

func TestGetMenu(t *testing.T) {
	tool := NewGetMenuTool()

	first, err := tool.Execute(ctx, `{}`)
	require.NoError(t, err)
	second, err := tool.Execute(ctx, `{}`)
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.JSONEq(t,
		`{"Drinks":{"Chai":"INR 50","Coffee":"INR 70"},"Veg":{"DalMakhni":"INR 250","Panner":"INR 400"}}`,
		first.Content)
}

func TestRegisterProfile(t *testing.T) {
	profile := entity.AgentProfile{
		Name:  "test",
		Tools: []entity.ToolName{entity.ToolOpenWebsite, entity.ToolTakeScreenshot, entity.ToolGetMenu},
	}

	t.Run("registers allowed tools", func(t *testing.T) {
		registry := service.NewToolRegistry(logger.NewNop())
		err := RegisterProfile(registry, profile, Deps{
			Browser:     new(mockBrowser),
			Screenshots: new(mockStore),
			Logger:      logger.NewNop(),
		})
		require.NoError(t, err)
		assert.Len(t, registry.All(), 3)
	})

	t.Run("browser tools need a browser", func(t *testing.T) {
		registry := service.NewToolRegistry(logger.NewNop())
		err := RegisterProfile(registry, profile, Deps{Logger: logger.NewNop()})
		assert.Error(t, err)
	})
}

func TestSchemasRejectBadArguments(t *testing.T) {
	browser := new(mockBrowser)
	registry := service.NewToolRegistry(logger.NewNop())
	require.NoError(t, RegisterProfile(registry, entity.AgentProfile{
		Tools: []entity.ToolName{
			entity.ToolOpenWebsite, entity.ToolClickElement, entity.ToolFillForm,
			entity.ToolExtractElements, entity.ToolTakeScreenshot, entity.ToolGetMenu,
		},
	}, Deps{Browser: browser, Screenshots: new(mockStore), Logger: logger.NewNop()}))

	tests := []struct {
		tool entity.ToolName
		args string
	}{
		{entity.ToolOpenWebsite, `{}`},
		{entity.ToolOpenWebsite, `{"url":""}`},
		{entity.ToolOpenWebsite, `{"url":42}`},
		{entity.ToolClickElement, `{"selector":"#a","force":true}`},
		{entity.ToolFillForm, `{"fields":[]}`},
		{entity.ToolFillForm, `{"fields":[{"selector":"#a"}]}`},
		{entity.ToolExtractElements, `{"elementTypes":["div"]}`},
		{entity.ToolTakeScreenshot, `{"fullPage":true}`},
		{entity.ToolGetMenu, `[]`},
	}

	for _, tt := range tests {
		t.Run(string(tt.tool)+" "+tt.args, func(t *testing.T) {
			_, err := registry.Invoke(ctx, tt.tool, tt.args)
			assert.ErrorIs(t, err, entity.ErrSchemaValidation)
		})
	}

	assert.Empty(t, browser.Calls, "rejected arguments must never reach the browser")
}
