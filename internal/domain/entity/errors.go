package entity

import "errors"

var (
	ErrNavigation       = errors.New("navigation error")
	ErrElementNotFound  = errors.New("element not found")
	ErrCapture          = errors.New("capture error")
	ErrQuery            = errors.New("query error")
	ErrSchemaValidation = errors.New("schema validation error")
	ErrTimeout          = errors.New("operation timed out")

	ErrNoSession     = errors.New("no browser session")
	ErrSessionClosed = errors.New("browser session closed")

	ErrUnknownTool   = errors.New("unknown tool")
	ErrDuplicateTool = errors.New("duplicate tool name")
)
