// Package markdown turns post and page bodies into HTML.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/sourcegraph/syntaxhighlight"
)

const extensions = parser.CommonExtensions | parser.AutoHeadingIDs | parser.Footnotes | parser.MathJax

// highlighted lists the fence tags handed to the highlighter. Anything else is
// emitted as escaped plain code.
var highlighted = map[string]bool{
	"bash": true, "c": true, "cpp": true, "css": true, "go": true,
	"html": true, "java": true, "javascript": true, "js": true, "json": true,
	"julia": true, "python": true, "py": true, "r": true, "rust": true,
	"sh": true, "shell": true, "sql": true, "ts": true, "typescript": true,
	"yaml": true,
}

// ToHTML renders md with footnotes, math and highlighted code blocks. A new
// parser and renderer are built per call since both keep per-document state.
func ToHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          html.CommonFlags | html.FootnoteReturnLinks,
		RenderNodeHook: renderCode,
	})
	return string(markdown.ToHTML(markdown.NormalizeNewlines(md), p, renderer))
}

func renderCode(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	block, ok := node.(*ast.CodeBlock)
	if !ok || !entering {
		return ast.GoToNext, false
	}

	lang := language(block.Info)
	if !highlighted[lang] {
		io.WriteString(w, "<pre><code>")
		html.EscapeHTML(w, block.Literal)
		io.WriteString(w, "</code></pre>\n")
		return ast.GoToNext, true
	}

	code, err := syntaxhighlight.AsHTML(block.Literal)
	if err != nil {
		var buf bytes.Buffer
		html.EscapeHTML(&buf, block.Literal)
		code = buf.Bytes()
	}
	fmt.Fprintf(w, `<pre><code class="language-%s">`, lang)
	w.Write(code)
	io.WriteString(w, "</code></pre>\n")
	return ast.GoToNext, true
}

func language(info []byte) string {
	fields := strings.Fields(string(info))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(fields[0], "{}."))
}
