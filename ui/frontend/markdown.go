package frontend

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md renders markdown; sanitizer strips anything dangerous afterwards, so
// chat answers and blog posts from outside this process are safe to inline.
var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// markdown converts untrusted markdown to sanitized HTML.
func markdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		// Fall back to the sanitized source text.
		return template.HTML(sanitizer.Sanitize(template.HTMLEscapeString(source)))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
