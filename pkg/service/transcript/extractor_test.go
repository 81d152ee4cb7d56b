package transcript_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/rpad300/godmode-sub015/pkg/service/transcript"
)

func TestExtract(t *testing.T) {
	t.Run("collects target turns with context", func(t *testing.T) {
		content := strings.Join([]string{
			"Maria: Welcome everyone to the meeting.",
			"John: I agree, but let's check budget first.",
			"Maria: Thanks.",
			"John: Yes.",
		}, "\n")

		result := transcript.Extract(content, "John Silva", nil, "standup.md")

		gt.Value(t, result.PersonName).Equal("John Silva")
		gt.Value(t, string(result.DocumentID)).Equal("standup.md")
		gt.Value(t, result.Filename).Equal("standup.md")
		gt.Array(t, result.Interventions).Length(1).Required()

		iv := result.Interventions[0]
		gt.Value(t, iv.Speaker).Equal("John")
		gt.Value(t, iv.Text).Equal("I agree, but let's check budget first.")
		gt.Value(t, iv.WordCount).Equal(7)
		gt.Value(t, iv.LineNumber).Equal(1)
		gt.Value(t, iv.Context).Equal("Maria: Welcome everyone to the meeting.")

		// "Yes." is below the minimum length and must be dropped
		gt.Value(t, result.InterventionCount).Equal(1)
		gt.Value(t, result.TotalWordCount).Equal(7)
	})

	t.Run("joins multi-line utterances", func(t *testing.T) {
		content := strings.Join([]string{
			"**John | 00:05**",
			"This is the first line of my point",
			"and this is the continuation.",
			"**Maria | 00:06**",
			"Understood.",
		}, "\n")

		result := transcript.Extract(content, "John", nil, "call.md")

		gt.Array(t, result.Interventions).Length(1).Required()
		iv := result.Interventions[0]
		gt.Value(t, iv.Text).Equal("This is the first line of my point and this is the continuation.")
		gt.Value(t, iv.Timestamp).Equal("00:05")
		gt.Value(t, iv.LineNumber).Equal(1)
	})

	t.Run("context keeps only the last two preceding turns", func(t *testing.T) {
		content := strings.Join([]string{
			"Alice: First remark from Alice here.",
			"Bob: Second remark from Bob here.",
			"Carol: Third remark from Carol here.",
			"John: My intervention comes after three other speakers.",
		}, "\n")

		result := transcript.Extract(content, "John", nil, "sync.md")

		gt.Array(t, result.Interventions).Length(1).Required()
		ctx := result.Interventions[0].Context
		gt.Value(t, ctx).Equal("Bob: Second remark from Bob here. Carol: Third remark from Carol here.")
	})

	t.Run("context excerpts capped at 200 characters", func(t *testing.T) {
		long := strings.Repeat("word ", 60) // 300 chars
		content := strings.Join([]string{
			"Maria: " + long,
			"John: This turn should carry a truncated context.",
		}, "\n")

		result := transcript.Extract(content, "John", nil, "long.md")

		gt.Array(t, result.Interventions).Length(1).Required()
		ctx := result.Interventions[0].Context
		if len(ctx) > len("Maria: ")+200 {
			t.Errorf("context too long: %d chars", len(ctx))
		}
		gt.Bool(t, strings.HasPrefix(ctx, "Maria: word word")).True()
	})

	t.Run("flushes open utterance at end of input", func(t *testing.T) {
		content := strings.Join([]string{
			"Maria: Quick question before we wrap.",
			"John: Closing remark without a following speaker.",
		}, "\n")

		result := transcript.Extract(content, "John", nil, "wrap.md")
		gt.Array(t, result.Interventions).Length(1)
	})

	t.Run("person absent yields empty result", func(t *testing.T) {
		content := strings.Join([]string{
			"Maria: Only Maria talks in this one.",
			"Maria: And keeps going for a while.",
		}, "\n")

		result := transcript.Extract(content, "John Silva", nil, "solo.md")

		gt.Value(t, result.InterventionCount).Equal(0)
		gt.Value(t, result.TotalWordCount).Equal(0)
		gt.Array(t, result.Interventions).Length(0)
	})

	t.Run("empty content yields empty result", func(t *testing.T) {
		result := transcript.Extract("", "John", nil, "empty.md")
		gt.Value(t, result.InterventionCount).Equal(0)
	})

	t.Run("stray lines before first speaker are discarded", func(t *testing.T) {
		content := strings.Join([]string{
			"Meeting notes, 2026-03-01",
			"",
			"John: Actual first utterance of the transcript.",
		}, "\n")

		result := transcript.Extract(content, "John", nil, "notes.md")

		gt.Array(t, result.Interventions).Length(1).Required()
		gt.Value(t, result.Interventions[0].Text).Equal("Actual first utterance of the transcript.")
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		content := strings.Join([]string{
			"[00:01] Maria: Opening the discussion now.",
			"[00:02] John: Here is what I think about the plan.",
			"[00:03] Maria: Noted, anything else?",
			"[00:04] John: One more thing about the timeline we should cover.",
		}, "\n")

		a := transcript.Extract(content, "John", nil, "rerun.md")
		b := transcript.Extract(content, "John", nil, "rerun.md")

		if !reflect.DeepEqual(a.Interventions, b.Interventions) {
			t.Error("extraction is not deterministic")
		}
		gt.Array(t, a.Interventions).Length(2)
	})

	t.Run("interventions at or below ten characters dropped", func(t *testing.T) {
		content := strings.Join([]string{
			"John: Yes exactly.", // 12 chars, kept
			"Maria: What about the deadline?",
			"John: Maybe not.", // 10 chars, dropped
		}, "\n")

		result := transcript.Extract(content, "John", nil, "short.md")

		gt.Array(t, result.Interventions).Length(1).Required()
		gt.Value(t, result.Interventions[0].Text).Equal("Yes exactly.")
	})
}
