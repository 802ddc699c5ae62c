package ai

import (
	"errors"
	"testing"
)

func TestParseExcuses(t *testing.T) {
	t.Parallel()

	valid := `{"excuse1":{"title":"Traffic Delay","text":"I got stuck in traffic."},"excuse2":{"title":"The Fox Ate My Laptop","text":"Look, I know how this looks, but a fox took it."}}`

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "plain json", raw: valid},
		{name: "json code fence", raw: "```json\n" + valid + "\n```"},
		{name: "bare code fence", raw: "```\n" + valid + "\n```"},
		{name: "surrounding whitespace", raw: "\n\n  " + valid + "  \n"},
		{name: "not json", raw: "I'm sorry, I can't help with that.", wantErr: ErrUnparseable},
		{name: "truncated json", raw: valid[:40], wantErr: ErrUnparseable},
		{name: "missing excuse2", raw: `{"excuse1":{"title":"a","text":"b"}}`, wantErr: ErrInvalidFormat},
		{name: "missing excuse1", raw: `{"excuse2":{"title":"a","text":"b"}}`, wantErr: ErrInvalidFormat},
		{name: "empty title", raw: `{"excuse1":{"title":"","text":"b"},"excuse2":{"title":"a","text":"b"}}`, wantErr: ErrInvalidFormat},
		{name: "whitespace text", raw: `{"excuse1":{"title":"a","text":"  "},"excuse2":{"title":"a","text":"b"}}`, wantErr: ErrInvalidFormat},
		{name: "empty objects", raw: `{"excuse1":{},"excuse2":{}}`, wantErr: ErrInvalidFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			excuses, err := ParseExcuses(tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseExcuses error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExcuses returned error: %v", err)
			}
			if excuses.Excuse1.Title != "Traffic Delay" {
				t.Errorf("excuse1 title = %q", excuses.Excuse1.Title)
			}
			if excuses.Excuse2.Title != "The Fox Ate My Laptop" {
				t.Errorf("excuse2 title = %q", excuses.Excuse2.Title)
			}
		})
	}
}
