package reporter

import (
	"strings"

	"github.com/ppiankov/eyec/internal/models"
)

// Attr is a single DOT attribute. Values are written verbatim, so string
// values carry their own quotes.
type Attr struct {
	Key   string
	Value string
}

// NodeAttributes returns the style attributes for a file node
func NodeAttributes(f *models.File) []Attr {
	if f == nil {
		return nil
	}
	switch f.Type {
	case models.Executable:
		return []Attr{{Key: "shape", Value: "box"}}
	case models.Library:
		return []Attr{
			{Key: "style", Value: quote("filled")},
			{Key: "fillcolor", Value: quote("gray")},
		}
	case models.Object:
		return []Attr{
			{Key: "style", Value: quote("filled")},
			{Key: "fillcolor", Value: quote("lightgray")},
		}
	default:
		return nil
	}
}

// FormatAttrs renders attributes as "key=value " tokens
func FormatAttrs(attrs []Attr) string {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value)
		b.WriteByte(' ')
	}
	return b.String()
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// quote wraps s in DOT double quotes. Backslashes and quotes are escaped and
// line breaks become \n so the string always terminates on its own line.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
