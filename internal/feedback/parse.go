package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var categoryKeys = []string{"toneAndStyle", "content", "structure", "skills"}

// Parse decodes completion-service output into a validated Feedback. Any JSON
// error, missing required key, out-of-range score, or unknown tip type fails
// the whole object; there is no partial acceptance.
func Parse(raw string) (Feedback, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Feedback{}, errors.New("empty feedback text")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return Feedback{}, fmt.Errorf("feedback parse: %w", err)
	}
	if err := requireKeys(top, append([]string{"overallScore", "ATS"}, categoryKeys...)); err != nil {
		return Feedback{}, err
	}
	for _, key := range append([]string{"ATS"}, categoryKeys...) {
		if err := requireSectionKeys(top[key], key); err != nil {
			return Feedback{}, err
		}
	}

	var parsed Feedback
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Feedback{}, fmt.Errorf("feedback parse: %w", err)
	}
	if err := Validate(parsed); err != nil {
		return Feedback{}, err
	}
	return parsed, nil
}

// Validate applies the range and tip-type invariants to an already-decoded
// Feedback. Empty tip sequences are fine; they mean "nothing to improve".
func Validate(f Feedback) error {
	if err := checkScore("overallScore", f.OverallScore); err != nil {
		return err
	}
	if err := checkScore("ATS.score", f.ATS.Score); err != nil {
		return err
	}
	for _, tip := range f.ATS.Tips {
		if err := checkTipType("ATS", tip.Type); err != nil {
			return err
		}
	}

	categories := map[string]Category{
		"toneAndStyle": f.ToneAndStyle,
		"content":      f.Content,
		"structure":    f.Structure,
		"skills":       f.Skills,
	}
	for _, name := range categoryKeys {
		category := categories[name]
		if err := checkScore(name+".score", category.Score); err != nil {
			return err
		}
		for _, tip := range category.Tips {
			if err := checkTipType(name, tip.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func requireKeys(raw map[string]json.RawMessage, keys []string) error {
	for _, key := range keys {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("missing field: %s", key)
		}
	}
	return nil
}

func requireSectionKeys(raw json.RawMessage, section string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("field %s is not an object: %w", section, err)
	}
	for _, key := range []string{"score", "tips"} {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("missing field: %s.%s", section, key)
		}
	}
	return nil
}

func checkScore(field string, score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("%s out of range: %d", field, score)
	}
	return nil
}

func checkTipType(section string, tipType TipType) error {
	switch tipType {
	case TipGood, TipImprove:
		return nil
	default:
		return fmt.Errorf("%s tip has unknown type: %q", section, tipType)
	}
}
