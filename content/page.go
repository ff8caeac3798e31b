package content

import (
	"os"

	"github.com/ZacxDev/go-static-blog/markdown"
	"github.com/pkg/errors"
)

// Page is an optional standalone page such as home or about.
type Page struct {
	Meta Meta
	HTML string
}

// ReadPage renders the Markdown page at path. ok is false when the file does
// not exist, which callers treat as "use the fallback".
func ReadPage(path string) (page Page, ok bool, err error) {
	source, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Page{}, false, nil
	}
	if err != nil {
		return Page{}, false, errors.Wrapf(err, "error reading page %s", path)
	}

	meta, body, err := Parse(source)
	if err != nil {
		return Page{}, false, errors.Wrapf(err, "page %s", path)
	}
	return Page{Meta: meta, HTML: markdown.ToHTML(body)}, true, nil
}
