package transcript

import (
	"regexp"
	"strings"
)

// SpeakerLine is a recognized speaker-change marker. Text may be empty for
// dialects that put the utterance on the following lines. Timestamp is
// empty when the dialect carries no time marker.
type SpeakerLine struct {
	Speaker   string
	Text      string
	Timestamp string
}

// matcherFunc tries one transcript dialect against a trimmed line
type matcherFunc func(line string) (*SpeakerLine, bool)

var (
	// **Name | 00:01** or **Name | 00:01:02**, utterance on following lines
	boldPipeRe = regexp.MustCompile(`^\*\*([^|*]+?)\s*\|\s*(\d{1,2}:\d{2}(?::\d{2})?)\s*\*\*$`)

	// Name | 00:01 without emphasis markers
	plainPipeRe = regexp.MustCompile(`^([\p{L}][\p{L}' .-]*?)\s*\|\s*(\d{1,2}:\d{2}(?::\d{2})?)$`)

	// Name: text, with capitalized name token(s)
	colonRe = regexp.MustCompile(`^(\p{Lu}[\p{L}'.-]*(?:\s+\p{Lu}[\p{L}'.-]*)*):\s*(.*)$`)

	// [00:01] Name: text
	bracketTimeRe = regexp.MustCompile(`^\[(\d{1,2}:\d{2}(?::\d{2})?)\]\s*([^:]+?):\s*(.*)$`)

	// 00:01 Name: text
	bareTimeRe = regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)\s+([^:]+?):\s*(.*)$`)

	// Name (00:01): text
	parenTimeRe = regexp.MustCompile(`^([^():]+?)\s*\((\d{1,2}:\d{2}(?::\d{2})?)\)\s*:\s*(.*)$`)

	// **Name**: text
	boldColonRe = regexp.MustCompile(`^\*\*([^*]+?)\*\*\s*:\s*(.*)$`)
)

// speakerMatchers is the fixed priority order; the first match wins
var speakerMatchers = []matcherFunc{
	matchBoldPipe,
	matchPlainPipe,
	matchColon,
	matchBracketTime,
	matchBareTime,
	matchParenTime,
	matchBoldColon,
}

// DetectSpeaker recognizes one trimmed, non-empty line as a speaker-change
// marker. It returns false for continuation lines.
func DetectSpeaker(line string) (*SpeakerLine, bool) {
	for _, match := range speakerMatchers {
		if sl, ok := match(line); ok {
			sl.Speaker = strings.TrimSpace(sl.Speaker)
			sl.Text = strings.TrimSpace(sl.Text)
			return sl, true
		}
	}
	return nil, false
}

func matchBoldPipe(line string) (*SpeakerLine, bool) {
	m := boldPipeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &SpeakerLine{Speaker: m[1], Timestamp: m[2]}, true
}

func matchPlainPipe(line string) (*SpeakerLine, bool) {
	m := plainPipeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &SpeakerLine{Speaker: m[1], Timestamp: m[2]}, true
}

func matchColon(line string) (*SpeakerLine, bool) {
	m := colonRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &SpeakerLine{Speaker: m[1], Text: m[2]}, true
}

func matchBracketTime(line string) (*SpeakerLine, bool) {
	m := bracketTimeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &SpeakerLine{Speaker: m[2], Text: m[3], Timestamp: m[1]}, true
}

func matchBareTime(line string) (*SpeakerLine, bool) {
	m := bareTimeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &SpeakerLine{Speaker: m[2], Text: m[3], Timestamp: m[1]}, true
}

func matchParenTime(line string) (*SpeakerLine, bool) {
	m := parenTimeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &SpeakerLine{Speaker: m[1], Text: m[3], Timestamp: m[2]}, true
}

func matchBoldColon(line string) (*SpeakerLine, bool) {
	m := boldColonRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &SpeakerLine{Speaker: m[1], Text: m[2]}, true
}
