package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Client abstracts completion providers for resume analysis.
type Client interface {
	Complete(ctx context.Context, instructions string) (Message, error)
}

// Message is one completion message on the wire.
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// Part is one element of a multi-part message body.
type Part struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// Content is a completion message body. Providers return either a plain
// string or a list of text parts; both decode into this union and normalize
// through Text.
type Content struct {
	text    string
	parts   []Part
	isParts bool
}

// TextContent builds a plain-string body.
func TextContent(s string) Content {
	return Content{text: s}
}

// PartsContent builds a multi-part body.
func PartsContent(parts []Part) Content {
	return Content{parts: parts, isParts: true}
}

// Text normalizes the body to a single string. Multi-part bodies collapse to
// the text of the first part.
func (c Content) Text() string {
	if !c.isParts {
		return c.text
	}
	if len(c.parts) == 0 {
		return ""
	}
	return c.parts[0].Text
}

// Empty reports whether the normalized body is blank.
func (c Content) Empty() bool {
	return strings.TrimSpace(c.Text()) == ""
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.isParts {
		return json.Marshal(c.parts)
	}
	return json.Marshal(c.text)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Content{text: s}
		return nil
	}
	var parts []Part
	if err := json.Unmarshal(data, &parts); err == nil {
		*c = Content{parts: parts, isParts: true}
		return nil
	}
	return fmt.Errorf("content is neither string nor parts: %s", truncate(string(data), 80))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("completion provider not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, instructions string) (Message, error) {
	_ = ctx
	_ = instructions
	return Message{}, ErrNotConfigured
}
