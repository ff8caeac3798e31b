package content

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"github.com/pkg/errors"
)

// Meta is the YAML header of a post or page. Every field is optional at
// parse time.
type Meta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Categories  []string `yaml:"categories"`
	Published   bool     `yaml:"published"`
	Link        string   `yaml:"link"`
	External    bool     `yaml:"external"`
	Image       string   `yaml:"image"`
}

// Parse splits source into its front-matter and Markdown body. A document
// without front-matter yields an empty Meta and the whole input as body.
func Parse(source []byte) (Meta, []byte, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, nil, errors.Wrap(err, "error parsing frontmatter")
	}
	if meta.Categories == nil {
		meta.Categories = []string{}
	}
	return meta, body, nil
}
