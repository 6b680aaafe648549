package constraint

import (
	"fmt"
	"maps"
	"strings"
)

// MessageContext carries what an interpolator may reference.
type MessageContext struct {
	Declaration *Declaration
	Value       any
}

// MessageInterpolator turns a message template into the final message.
type MessageInterpolator interface {
	Interpolate(template string, mc MessageContext) string
}

// maxKeyDepth bounds nested message key resolution.
const maxKeyDepth = 8

// TemplateInterpolator resolves "{key}" placeholders from a message bundle,
// then "{name}" placeholders from the declaration attributes. A backslash
// escapes the next character. Unknown placeholders are left as written.
type TemplateInterpolator struct {
	messages map[string]string
}

// NewTemplateInterpolator merges the bundles; later bundles win.
func NewTemplateInterpolator(bundles ...map[string]string) *TemplateInterpolator {
	messages := make(map[string]string)
	for _, b := range bundles {
		maps.Copy(messages, b)
	}
	return &TemplateInterpolator{messages: messages}
}

func (ti *TemplateInterpolator) Interpolate(template string, mc MessageContext) string {
	msg := template
	for range maxKeyDepth {
		next := substitute(msg, false, func(name string) (string, bool) {
			s, ok := ti.messages[name]
			return s, ok
		})
		if next == msg {
			break
		}
		msg = next
	}

	var attrs Attributes
	if mc.Declaration != nil {
		attrs = mc.Declaration.Attributes
	}
	return substitute(msg, true, func(name string) (string, bool) {
		v, ok := attrs[name]
		if !ok {
			return "", false
		}
		return fmt.Sprint(v), true
	})
}

// substitute replaces "{name}" placeholders found by lookup. Escaped
// characters are kept as written, or unescaped when unescape is set.
func substitute(s string, unescape bool, lookup func(string) (string, bool)) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			if !unescape {
				sb.WriteByte(c)
			}
			sb.WriteByte(s[i+1])
			i += 2
		case c == '{':
			end := strings.IndexAny(s[i+1:], "{}\\")
			if end < 0 || s[i+1+end] != '}' {
				sb.WriteByte(c)
				i++
				continue
			}
			name := s[i+1 : i+1+end]
			if v, ok := lookup(name); ok {
				sb.WriteString(v)
			} else {
				sb.WriteString(s[i : i+2+end])
			}
			i += end + 2
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

var messageEscaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`, `$`, `\$`)

// EscapeMessageParameter escapes the characters that have a meaning in
// message templates, so that s is rendered literally.
func EscapeMessageParameter(s string) string {
	return messageEscaper.Replace(s)
}
