package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extraction strategies, reported to metrics.
const (
	strategyText      = "text"
	strategyAttribute = "attribute"
	strategyMessage   = "message"
	strategySequence  = "sequence"
	strategyDump      = "dump"
	strategyList      = "list"
	strategyFallback  = "fallback"
)

// dumpKeys are the field names whose string values count as text in a structure dump.
var dumpKeys = map[string]bool{
	"final_output": true,
	"output_text":  true,
	"text":         true,
	"content":      true,
}

// Extract returns the best-guess email text of r. It never panics and never
// returns an empty string for a non-Text result.
func Extract(r Result) string {
	s, _ := extract(r)
	return s
}

func extract(r Result) (text string, strategy string) {
	defer func() {
		if p := recover(); p != nil {
			text, strategy = fallback(fmt.Sprintf("unreadable result: %v", p))
		}
	}()

	switch v := r.(type) {
	case Text:
		return string(v), strategyText
	case *Object:
		return extractObject(v)
	case Document:
		if s := searchDump(v); s != "" {
			return s, strategyDump
		}
		return fallback(string(v))
	case List:
		var parts []string
		for _, e := range v {
			if s := Extract(e); !blank(s) {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n"), strategyList
		}
		return fallback(fmt.Sprintf("%+v", []Result(v)))
	case Unrecognized:
		if raw, err := json.Marshal(v.Value); err == nil {
			if s := searchDump(raw); s != "" {
				return s, strategyDump
			}
		}
		return fallback(fmt.Sprintf("%+v", v.Value))
	default:
		return fallback(fmt.Sprintf("%+v", r))
	}
}

func extractObject(o *Object) (string, string) {
	if o == nil {
		return fallback("<nil>")
	}
	for _, s := range []string{o.FinalOutput, o.OutputText, o.Text} {
		if !blank(s) {
			return s, strategyAttribute
		}
	}
	if o.Message != nil && !blank(o.Message.Content) {
		return o.Message.Content, strategyMessage
	}
	for _, seq := range [][]Item{o.Output, o.Items, o.Choices} {
		if s := joinItems(seq); s != "" {
			return s, strategySequence
		}
	}
	if len(o.Dump) > 0 {
		if s := searchDump(o.Dump); s != "" {
			return s, strategyDump
		}
	}
	return fallback(fmt.Sprintf("%+v", *o))
}

func joinItems(items []Item) string {
	var parts []string
	for _, it := range items {
		if s := itemText(it); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func itemText(it Item) string {
	switch it.Type {
	case "", "output_text", "text":
		if !blank(it.Text) {
			return it.Text
		}
	}
	if it.Message != nil && !blank(it.Message.Content) {
		return it.Message.Content
	}
	if s := joinItems(it.Content); s != "" {
		return s
	}
	if !blank(it.Value) {
		return it.Value
	}
	return ""
}

// searchDump walks a JSON document and collects string values stored under
// dumpKeys, in document order.
func searchDump(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	var parts []string
	walkDump(gjson.ParseBytes(raw), &parts)
	return strings.Join(parts, "\n")
}

func walkDump(v gjson.Result, parts *[]string) {
	switch {
	case v.IsObject():
		v.ForEach(func(key, val gjson.Result) bool {
			if val.Type == gjson.String {
				if dumpKeys[key.String()] && !blank(val.String()) {
					*parts = append(*parts, val.String())
				}
				return true
			}
			walkDump(val, parts)
			return true
		})
	case v.IsArray():
		v.ForEach(func(_, val gjson.Result) bool {
			walkDump(val, parts)
			return true
		})
	}
}

func fallback(s string) (string, string) {
	if blank(s) {
		s = "<empty result>"
	}
	return s, strategyFallback
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
