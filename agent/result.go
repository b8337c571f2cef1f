package agent

import "encoding/json"

// Result is the raw outcome of one runtime call. Its shape depends on the runtime
// and SDK version, so it is modelled as a closed set of variants:
// Text, *Object, Document, List and Unrecognized.
type Result interface {
	isResult()
}

// Text is a plain string result.
type Text string

// Message is a role/content pair nested inside a result.
type Message struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// Item is one element of a sequence-valued result attribute.
type Item struct {
	Type    string   `json:"type,omitempty"`
	Text    string   `json:"text,omitempty"`
	Message *Message `json:"message,omitempty"`
	Content []Item   `json:"content,omitempty"`
	// Value holds the element when it is a bare string.
	Value string `json:"-"`
}

// Object is a result exposing named attributes.
type Object struct {
	FinalOutput string
	OutputText  string
	Text        string

	Message *Message

	Output  []Item
	Items   []Item
	Choices []Item

	// Dump is an optional JSON rendering of the whole object.
	Dump json.RawMessage
}

// Document is a nested mapping/sequence structure in JSON form.
type Document json.RawMessage

// List is a result that is itself a sequence of results.
type List []Result

// Unrecognized carries a value of unknown shape.
type Unrecognized struct {
	Value any
}

func (Text) isResult()         {}
func (*Object) isResult()      {}
func (Document) isResult()     {}
func (List) isResult()         {}
func (Unrecognized) isResult() {}

// Classify maps an arbitrary value onto a Result variant.
func Classify(v any) Result {
	switch x := v.(type) {
	case Result:
		return x
	case string:
		return Text(x)
	case json.RawMessage:
		return Document(x)
	case []byte:
		if json.Valid(x) {
			return Document(x)
		}
		return Text(string(x))
	case []any:
		out := make(List, len(x))
		for i, e := range x {
			out[i] = Classify(e)
		}
		return out
	case []string:
		out := make(List, len(x))
		for i, e := range x {
			out[i] = Text(e)
		}
		return out
	default:
		return Unrecognized{Value: v}
	}
}
