package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_PlainStringVerbatim(t *testing.T) {
	s := "  Subject: Hi\n\nbody\n"
	assert.Equal(t, s, Extract(Text(s)))
	assert.Equal(t, s, Extract(Classify(s)))
}

func TestExtract_OutputSequenceOfTypedItems(t *testing.T) {
	res := &Object{Output: []Item{
		{Type: "output_text", Text: "Subject: one"},
		{Type: "output_text", Text: "two"},
		{Type: "output_text", Text: "three"},
	}}
	assert.Equal(t, "Subject: one\ntwo\nthree", Extract(res))
}

func TestExtract_AttributeOrder(t *testing.T) {
	res := &Object{
		FinalOutput: "   ",
		OutputText:  "from output_text",
		Text:        "from text",
		Message:     &Message{Content: "from message"},
	}
	text, strategy := extract(res)
	assert.Equal(t, "from output_text", text)
	assert.Equal(t, strategyAttribute, strategy)
}

func TestExtract_MessageContent(t *testing.T) {
	res := &Object{Message: &Message{Role: "assistant", Content: "from message"}, Items: []Item{{Text: "later"}}}
	text, strategy := extract(res)
	assert.Equal(t, "from message", text)
	assert.Equal(t, strategyMessage, strategy)
}

func TestExtract_SequencePerElementRules(t *testing.T) {
	res := &Object{Items: []Item{
		{Type: "message", Content: []Item{
			{Type: "output_text", Text: "typed"},
			{Type: "refusal", Text: "ignored"},
		}},
		{Message: &Message{Content: "nested message"}},
		{Value: "plain string"},
		{Type: "reasoning"},
	}}
	text, strategy := extract(res)
	assert.Equal(t, "typed\nnested message\nplain string", text)
	assert.Equal(t, strategySequence, strategy)
}

func TestExtract_FirstNonEmptySequenceWins(t *testing.T) {
	res := &Object{
		Output:  []Item{{Type: "reasoning"}},
		Choices: []Item{{Type: "message", Message: &Message{Content: "choice"}}},
	}
	assert.Equal(t, "choice", Extract(res))
}

func TestExtract_ObjectDump(t *testing.T) {
	res := &Object{Dump: json.RawMessage(`{
		"a": {"text": "hello", "id": "x"},
		"b": [{"content": "world"}, {"content": [{"text": "!"}]}],
		"text": 5
	}`)}
	text, strategy := extract(res)
	assert.Equal(t, "hello\nworld\n!", text)
	assert.Equal(t, strategyDump, strategy)
}

func TestExtract_Document(t *testing.T) {
	doc := Document(`{"candidates":[{"content":{"parts":[{"text":"Subject: A"},{"text":"B"}],"role":"model"}}]}`)
	assert.Equal(t, "Subject: A\nB", Extract(doc))

	text, strategy := extract(Document(`{"id": 1}`))
	assert.Equal(t, `{"id": 1}`, text)
	assert.Equal(t, strategyFallback, strategy)
}

func TestExtract_List(t *testing.T) {
	res := List{Text("a"), Text("   "), &Object{Text: "b"}, Unrecognized{Value: map[string]any{"output_text": "c"}}}
	text, strategy := extract(res)
	assert.Equal(t, "a\nb\nc", text)
	assert.Equal(t, strategyList, strategy)

	assert.Equal(t, List{Text("x"), Text("y")}, Classify([]any{"x", "y"}))
}

func TestExtract_UnrecognizedMapping(t *testing.T) {
	res := Classify(map[string]any{"final_output": "done"})
	assert.IsType(t, Unrecognized{}, res)
	assert.Equal(t, "done", Extract(res))
}

type opaque struct {
	N  int
	ch chan int
}

type panicky struct{}

func (panicky) MarshalJSON() ([]byte, error) { panic("cannot marshal") }

func TestExtract_NeverFails(t *testing.T) {
	cases := map[string]Result{
		"nil result":      nil,
		"nil object":      (*Object)(nil),
		"empty object":    &Object{},
		"opaque struct":   Classify(opaque{N: 7}),
		"nil value":       Classify(nil),
		"channel":         Classify(make(chan int)),
		"empty list":      List{},
		"panicky marshal": Unrecognized{Value: panicky{}},
	}
	for name, res := range cases {
		t.Run(name, func(t *testing.T) {
			var got string
			assert.NotPanics(t, func() { got = Extract(res) })
			assert.NotEmpty(t, got)
			assert.False(t, blank(got))
		})
	}
	assert.Equal(t, "{N:7 ch:<nil>}", Extract(Classify(opaque{N: 7})))
	assert.Equal(t, "<nil>", Extract(Classify(nil)))
}
