package transcript

import (
	"strings"
	"time"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

const (
	// minInterventionLength filters out fragments such as "Yes." that carry
	// no behavioral signal
	minInterventionLength = 10

	// contextRingCapacity bounds how many preceding non-target utterances
	// are retained
	contextRingCapacity = 3

	// contextExcerptLimit caps each retained utterance excerpt
	contextExcerptLimit = 200

	// contextJoinCount is how many ring entries are attached to an
	// emitted intervention
	contextJoinCount = 2
)

// scanState is the collector state folded across the line sequence.
// Keeping it an explicit value (rather than closure captures) makes the
// intermediate states testable.
type scanState struct {
	speaker       string
	speakerTarget bool
	timestamp     string
	buffer        []string
	ring          []string
}

// Extract scans a raw transcript and collects the target person's speaking
// turns, each with a short window of the other speakers' preceding remarks.
// It is a pure function of its inputs: malformed lines are treated as
// continuations or discarded, never reported as errors.
func Extract(content, personName string, aliases []string, filename string) *model.ExtractionResult {
	matcher := NewNameMatcher(personName, aliases)
	lines := strings.Split(content, "\n")

	var st scanState
	var interventions []model.Intervention

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		sl, ok := DetectSpeaker(line)
		if !ok {
			// Continuation of the current utterance; stray lines before the
			// first speaker are discarded.
			if st.speaker != "" {
				st.buffer = append(st.buffer, line)
			}
			continue
		}

		st.flush(&interventions, i)

		st.speaker = sl.Speaker
		st.speakerTarget = matcher.Matches(sl.Speaker)
		st.timestamp = sl.Timestamp
		st.buffer = nil
		if sl.Text != "" {
			st.buffer = append(st.buffer, sl.Text)
		}
	}

	st.flush(&interventions, len(lines))

	total := 0
	for _, iv := range interventions {
		total += iv.WordCount
	}

	return &model.ExtractionResult{
		PersonName:        personName,
		DocumentID:        types.DocumentID(filename),
		Filename:          filename,
		Interventions:     interventions,
		TotalWordCount:    total,
		InterventionCount: len(interventions),
		ExtractedAt:       time.Now().UTC(),
	}
}

// flush closes the current utterance at line index idx: target speakers may
// emit an intervention, other speakers feed the context ring.
func (st *scanState) flush(out *[]model.Intervention, idx int) {
	if st.speaker == "" || len(st.buffer) == 0 {
		return
	}

	text := strings.TrimSpace(strings.Join(st.buffer, " "))

	if st.speakerTarget {
		if len(text) > minInterventionLength {
			*out = append(*out, model.Intervention{
				Timestamp:  st.timestamp,
				Speaker:    st.speaker,
				Text:       text,
				Context:    st.context(),
				WordCount:  len(strings.Fields(text)),
				LineNumber: idx - len(st.buffer),
			})
		}
		return
	}

	excerpt := text
	if len(excerpt) > contextExcerptLimit {
		excerpt = excerpt[:contextExcerptLimit]
	}
	st.ring = append(st.ring, st.speaker+": "+excerpt)
	if len(st.ring) > contextRingCapacity {
		st.ring = st.ring[1:]
	}
}

// context joins the most recent ring entries into the intervention context
func (st *scanState) context() string {
	n := len(st.ring)
	if n == 0 {
		return ""
	}
	start := n - contextJoinCount
	if start < 0 {
		start = 0
	}
	return strings.Join(st.ring[start:], " ")
}
