// Package reqctx carries the acting principal and the outgoing notice queue of one request.
package reqctx

import (
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Context is created per request and passed explicitly to handlers and services.
type Context struct {
	Principal *access.Principal
	notices   []Notice
}

func New(p *access.Principal) *Context {
	return &Context{Principal: p}
}

func (rc *Context) add(level Level, text string) {
	rc.notices = append(rc.notices, Notice{Level: level, Text: text})
}

func (rc *Context) Success(text string) { rc.add(LevelSuccess, text) }
func (rc *Context) Info(text string)    { rc.add(LevelInfo, text) }
func (rc *Context) Warning(text string) { rc.add(LevelWarning, text) }
func (rc *Context) Error(text string)   { rc.add(LevelError, text) }

// Notices returns the queued notices in the order they were added.
func (rc *Context) Notices() []Notice {
	out := make([]Notice, len(rc.notices))
	copy(out, rc.notices)
	return out
}

// Authorize runs the role guard for op against this request's principal.
func (rc *Context) Authorize(op access.Operation) access.Decision {
	return access.Check(rc.Principal, op)
}

const localsKey = "reqctx"

// Attach stores rc on the fiber context.
func Attach(c *fiber.Ctx, rc *Context) {
	c.Locals(localsKey, rc)
}

// From returns the request context, creating an anonymous one when the session middleware did not run.
func From(c *fiber.Ctx) *Context {
	if rc, ok := c.Locals(localsKey).(*Context); ok && rc != nil {
		return rc
	}
	rc := New(nil)
	Attach(c, rc)
	return rc
}
