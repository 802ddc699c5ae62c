package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripCodeFences removes markdown code-fence markers that models sometimes
// wrap around JSON despite being told not to.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseExcuses extracts the excuse pair from a model's free-text output.
// The text is expected to be a JSON object with exactly the excuse1 and
// excuse2 keys, possibly wrapped in code fences.
func ParseExcuses(raw string) (*Excuses, error) {
	cleaned := stripCodeFences(raw)

	var excuses Excuses
	if err := json.Unmarshal([]byte(cleaned), &excuses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	if !validExcuse(excuses.Excuse1) || !validExcuse(excuses.Excuse2) {
		return nil, ErrInvalidFormat
	}

	return &excuses, nil
}

func validExcuse(e *Excuse) bool {
	return e != nil && strings.TrimSpace(e.Title) != "" && strings.TrimSpace(e.Text) != ""
}
