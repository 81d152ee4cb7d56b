package transcript_test

import (
	"testing"

	"github.com/rpad300/godmode-sub015/pkg/service/transcript"
)

func TestDetectSpeaker(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		wantSpeaker   string
		wantText      string
		wantTimestamp string
	}{
		{
			name:          "bold pipe with timestamp",
			line:          "**Ana Silva | 00:15**",
			wantSpeaker:   "Ana Silva",
			wantTimestamp: "00:15",
		},
		{
			name:          "bold pipe with hour timestamp",
			line:          "**Ana Silva | 1:02:45**",
			wantSpeaker:   "Ana Silva",
			wantTimestamp: "1:02:45",
		},
		{
			name:          "plain pipe with timestamp",
			line:          "Ana Silva | 00:15",
			wantSpeaker:   "Ana Silva",
			wantTimestamp: "00:15",
		},
		{
			name:        "colon with inline text",
			line:        "Ana: let's start with the roadmap",
			wantSpeaker: "Ana",
			wantText:    "let's start with the roadmap",
		},
		{
			name:        "colon with multi-token name",
			line:        "Ana Silva: I have a question",
			wantSpeaker: "Ana Silva",
			wantText:    "I have a question",
		},
		{
			name:          "bracketed timestamp prefix",
			line:          "[00:15] Ana Silva: hello there everyone",
			wantSpeaker:   "Ana Silva",
			wantText:      "hello there everyone",
			wantTimestamp: "00:15",
		},
		{
			name:          "bare timestamp prefix",
			line:          "00:15 Ana Silva: hello there everyone",
			wantSpeaker:   "Ana Silva",
			wantText:      "hello there everyone",
			wantTimestamp: "00:15",
		},
		{
			name:          "parenthesized timestamp",
			line:          "Ana Silva (00:15): hello there everyone",
			wantSpeaker:   "Ana Silva",
			wantText:      "hello there everyone",
			wantTimestamp: "00:15",
		},
		{
			name:        "bold name with colon",
			line:        "**Ana Silva**: hello there everyone",
			wantSpeaker: "Ana Silva",
			wantText:    "hello there everyone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl, ok := transcript.DetectSpeaker(tt.line)
			if !ok {
				t.Fatalf("expected %q to be detected as speaker line", tt.line)
			}
			if sl.Speaker != tt.wantSpeaker {
				t.Errorf("speaker: got %q, want %q", sl.Speaker, tt.wantSpeaker)
			}
			if sl.Text != tt.wantText {
				t.Errorf("text: got %q, want %q", sl.Text, tt.wantText)
			}
			if sl.Timestamp != tt.wantTimestamp {
				t.Errorf("timestamp: got %q, want %q", sl.Timestamp, tt.wantTimestamp)
			}
		})
	}
}

func TestDetectSpeakerRejectsContinuations(t *testing.T) {
	lines := []string{
		"and then we moved on to the next topic",
		"the budget was 5:1 against",
		"no speaker marker here at all",
		"* bullet point, not a speaker",
		"| 00:15",
	}

	for _, line := range lines {
		if sl, ok := transcript.DetectSpeaker(line); ok {
			t.Errorf("expected %q to be a continuation, matched speaker %q", line, sl.Speaker)
		}
	}
}

func TestDetectSpeakerPriority(t *testing.T) {
	// A bracketed line must resolve via the bracket dialect even though the
	// tail also resembles the colon dialect.
	sl, ok := transcript.DetectSpeaker("[00:30] Ana: quick note on the schedule")
	if !ok {
		t.Fatal("expected detection")
	}
	if sl.Timestamp != "00:30" {
		t.Errorf("timestamp: got %q, want %q", sl.Timestamp, "00:30")
	}
	if sl.Speaker != "Ana" {
		t.Errorf("speaker: got %q, want %q", sl.Speaker, "Ana")
	}
}
