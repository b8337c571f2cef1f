// Package export turns a drafted email into downloadable formats.
package export

import (
	"bytes"
	"fmt"
	"html"
	"mime"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// BaseName is the download file name without extension.
const BaseName = "investor_email"

type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatEML      Format = "eml"
)

// Formats lists what Render accepts, in download-button order.
var Formats = []Format{FormatText, FormatHTML, FormatEML, FormatMarkdown}

// Rendered is one export ready to be served or written.
type Rendered struct {
	Data        []byte
	ContentType string
	Filename    string
}

var md = goldmark.New(goldmark.WithRendererOptions(gmhtml.WithHardWraps()))

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func Filename(f Format) string { return BaseName + "." + string(f) }

// Render converts the email text to format f.
func Render(f Format, text string) (Rendered, error) {
	out := Rendered{Filename: Filename(f)}
	switch f {
	case FormatText:
		out.Data = []byte(text)
		out.ContentType = "text/plain; charset=utf-8"
	case FormatMarkdown:
		out.Data = []byte(ToMarkdown(text))
		out.ContentType = "text/markdown; charset=utf-8"
	case FormatHTML:
		doc, err := ToHTMLDocument(text)
		if err != nil {
			return Rendered{}, err
		}
		out.Data = []byte(doc)
		out.ContentType = "text/html; charset=utf-8"
	case FormatEML:
		out.Data = BuildEML(text)
		out.ContentType = "message/rfc822"
	default:
		return Rendered{}, fmt.Errorf("unsupported export format %q", f)
	}
	return out, nil
}

// SplitSubject separates a leading "Subject: ..." line from the body. Text
// without one comes back whole with an empty subject.
func SplitSubject(text string) (subject, body string) {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	first, rest, _ := strings.Cut(trimmed, "\n")
	first = strings.TrimSpace(first)
	if !strings.HasPrefix(strings.ToLower(first), "subject:") {
		return "", text
	}
	return strings.TrimSpace(first[len("subject:"):]), strings.TrimLeft(rest, "\r\n")
}

// ToMarkdown bolds the subject label and turns "•" bullets into list items.
func ToMarkdown(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	subjectDone := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !subjectDone && trimmed != "" {
			subjectDone = true
			if strings.HasPrefix(strings.ToLower(trimmed), "subject:") {
				lines[i] = "**Subject:** " + strings.TrimSpace(trimmed[len("subject:"):])
				continue
			}
		}
		if rest, ok := strings.CutPrefix(trimmed, "•"); ok {
			lines[i] = "- " + strings.TrimSpace(rest)
		}
	}
	return strings.Join(lines, "\n")
}

// ToHTML renders the email as an inline-styled HTML fragment.
func ToHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(ToMarkdown(text)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return normalizeForMail(buf.String()), nil
}

// ToHTMLDocument wraps ToHTML in a standalone page titled with the subject.
func ToHTMLDocument(text string) (string, error) {
	fragment, err := ToHTML(text)
	if err != nil {
		return "", err
	}
	subject, _ := SplitSubject(text)
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(subject))
	b.WriteString("</title>\n</head>\n<body>\n<div style=\"font-family:Arial,Helvetica,sans-serif;font-size:15px;line-height:1.5;color:#222;\">\n")
	b.WriteString(fragment)
	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String(), nil
}

var (
	olRe = regexp.MustCompile(`(?s)<ol[^>]*>(.*?)</ol>`)
	ulRe = regexp.MustCompile(`(?s)<ul[^>]*>(.*?)</ul>`)
	liRe = regexp.MustCompile(`(?s)<li[^>]*>(.*?)</li>`)
	hRe  = regexp.MustCompile(`(?s)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
)

const (
	paragraphStyle = `margin:0 0 1em;`
	bulletStyle    = `margin:0 0 0.3em 1em;`
)

var headingSizes = map[string]string{
	"1": "22px",
	"2": "20px",
	"3": "18px",
	"4": "16px",
	"5": "15px",
	"6": "15px",
}

// Mail clients drop list and heading styles unevenly; flatten them into
// styled paragraphs so the layout survives.
func normalizeForMail(html string) string {
	html = convertHeadings(html)
	html = flattenLists(html)
	return strings.ReplaceAll(html, "<p>", `<p style="`+paragraphStyle+`">`)
}

func flattenLists(html string) string {
	html = olRe.ReplaceAllStringFunc(html, func(block string) string {
		items := liRe.FindAllStringSubmatch(block, -1)
		if len(items) == 0 {
			return block
		}
		var b strings.Builder
		for i, item := range items {
			fmt.Fprintf(&b, `<p style="%s">%d. %s</p>`, bulletStyle, i+1, listItemText(item[1]))
			b.WriteString("\n")
		}
		return b.String()
	})

	return ulRe.ReplaceAllStringFunc(html, func(block string) string {
		items := liRe.FindAllStringSubmatch(block, -1)
		if len(items) == 0 {
			return block
		}
		var b strings.Builder
		for _, item := range items {
			fmt.Fprintf(&b, `<p style="%s">• %s</p>`, bulletStyle, listItemText(item[1]))
			b.WriteString("\n")
		}
		return b.String()
	})
}

// Loose lists wrap each item in its own paragraph.
func listItemText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<p>")
	s = strings.TrimSuffix(s, "</p>")
	return strings.TrimSpace(s)
}

func convertHeadings(html string) string {
	return hRe.ReplaceAllStringFunc(html, func(block string) string {
		parts := hRe.FindStringSubmatch(block)
		if len(parts) != 3 {
			return block
		}
		size := headingSizes[parts[1]]
		return fmt.Sprintf(`<p style="font-size:%s;font-weight:700;margin:1em 0 0.6em;">%s</p>`, size, strings.TrimSpace(parts[2]))
	})
}

// BuildEML writes an unsent RFC 5322 message that mail clients open as a
// draft. The subject header comes from the leading "Subject:" line.
func BuildEML(text string) []byte {
	subject, body := SplitSubject(text)

	var b bytes.Buffer
	if subject != "" {
		b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("X-Unsent: 1\r\n")
	b.WriteString("\r\n")

	body = strings.ReplaceAll(body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\r\n")
	}
	return b.Bytes()
}
