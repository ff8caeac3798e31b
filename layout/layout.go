// Package layout fills the site's HTML shell with page content and metadata.
package layout

import (
	"html"
	"os"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
)

// ErrTemplateNotFound is returned when the shell template file is missing.
var ErrTemplateNotFound = errors.New("template not found")

// Placeholder names understood by the shell template, written as {{NAME}}.
const (
	KeyTitle        = "TITLE"
	KeyDescription  = "DESCRIPTION"
	KeyContent      = "CONTENT"
	KeyCanonicalURL = "CANONICAL_URL"
	KeyOGType       = "OG_TYPE"
	KeyOGImage      = "OG_IMAGE"
	KeyScripts      = "SCRIPTS"
	KeySiteName     = "SITE_NAME"
)

var placeholder = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Fields maps placeholder names to replacement text.
type Fields map[string]string

// Apply replaces every {{NAME}} in tmpl whose NAME is in fields. Unknown
// placeholders stay as written. The template is scanned once, so inserted
// values are never substituted again.
func Apply(tmpl string, fields Fields) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := fields[name]; ok {
			return value
		}
		return match
	})
}

// Load reads the shell template at path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.Wrapf(ErrTemplateNotFound, "%s", path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "error reading template %s", path)
	}
	return string(data), nil
}

// Meta is the per-page data every generator hands to the shell.
type Meta struct {
	Title        string
	Description  string
	CanonicalURL string
	Type         string
	Image        string
	SiteName     string
	Content      string
	Scripts      string
}

var plainText = bluemonday.StrictPolicy()

// Fields escapes the metadata for use inside tags and attributes. Content and
// Scripts are inserted as-is.
func (m Meta) Fields() Fields {
	description := html.UnescapeString(plainText.Sanitize(m.Description))
	return Fields{
		KeyTitle:        html.EscapeString(m.Title),
		KeyDescription:  html.EscapeString(strings.TrimSpace(description)),
		KeyCanonicalURL: html.EscapeString(m.CanonicalURL),
		KeyOGType:       html.EscapeString(m.Type),
		KeyOGImage:      html.EscapeString(m.Image),
		KeySiteName:     html.EscapeString(m.SiteName),
		KeyContent:      m.Content,
		KeyScripts:      m.Scripts,
	}
}

// Render fills tmpl with m.
func Render(tmpl string, m Meta) string {
	return Apply(tmpl, m.Fields())
}
