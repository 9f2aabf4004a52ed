package ai

import (
	"encoding/json"
	"testing"
)

func TestContentUnmarshalString(t *testing.T) {
	var m Message
	payload := `{"role":"assistant","content":"{\"overallScore\":80}"}`
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := m.Content.Text(); got != `{"overallScore":80}` {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestContentUnmarshalParts(t *testing.T) {
	var m Message
	payload := `{"role":"assistant","content":[{"type":"text","text":"{\"overallScore\":80}"}]}`
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := m.Content.Text(); got != `{"overallScore":80}` {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestContentBothShapesNormalizeEqually(t *testing.T) {
	var asString, asParts Message
	if err := json.Unmarshal([]byte(`{"role":"assistant","content":"hello"}`), &asString); err != nil {
		t.Fatalf("unmarshal string shape: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"role":"assistant","content":[{"text":"hello"}]}`), &asParts); err != nil {
		t.Fatalf("unmarshal parts shape: %v", err)
	}
	if asString.Content.Text() != asParts.Content.Text() {
		t.Fatalf("shapes normalize differently: %q vs %q", asString.Content.Text(), asParts.Content.Text())
	}
}

func TestContentUnmarshalRejectsObject(t *testing.T) {
	var c Content
	if err := json.Unmarshal([]byte(`{"text":"hello"}`), &c); err == nil {
		t.Fatalf("expected error for object-shaped content")
	}
}

func TestContentEmpty(t *testing.T) {
	if !TextContent("  \n").Empty() {
		t.Fatalf("whitespace body should be empty")
	}
	if !PartsContent(nil).Empty() {
		t.Fatalf("zero-part body should be empty")
	}
	if TextContent("x").Empty() {
		t.Fatalf("non-blank body reported empty")
	}
}
