package generator

import (
	"encoding/json"

	"github.com/ZacxDev/go-static-blog/content"
	"github.com/ZacxDev/go-static-blog/layout"
	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
)

const BlogRoute = content.BlogRoute

// card is one entry of the blog index.
type card struct {
	Title        string
	URL          string
	Date         string
	ISODate      string
	Description  string
	Categories   []string
	// CategoryList is a JSON array so categories may contain any character.
	CategoryList string
	External     bool
}

func newCard(post content.Post) (card, error) {
	list := post.Categories
	if list == nil {
		list = []string{}
	}
	categories, err := json.Marshal(list)
	if err != nil {
		return card{}, errors.Wrapf(err, "post %s", post.Slug)
	}
	c := card{
		Title:        post.Title,
		URL:          "/" + post.URLPath(),
		Date:         post.DisplayDate(),
		ISODate:      post.Date.Format("2006-01-02"),
		Description:  post.Description,
		Categories:   post.Categories,
		CategoryList: string(categories),
		External:     post.IsExternal(),
	}
	if c.External {
		c.URL = post.Link
	}
	return c, nil
}

// BlogIndex writes blog/index.html listing posts in the given order with a
// filter button per category. Unpublished posts are skipped.
func (g *Generator) BlogIndex(posts []content.Post) (string, error) {
	var published []content.Post
	cards := []card{}
	for _, post := range posts {
		if !post.Published {
			continue
		}
		c, err := newCard(post)
		if err != nil {
			return "", err
		}
		published = append(published, post)
		cards = append(cards, c)
	}

	ctx := plush.NewContext()
	ctx.Set("cards", cards)
	ctx.Set("categories", content.Categories(published))

	body, err := renderFragment("blog", ctx)
	if err != nil {
		return "", err
	}

	return g.write(BlogRoute, layout.Meta{
		Title:        g.pageTitle("Blog"),
		Description:  g.Site.Description,
		CanonicalURL: g.Site.URL(BlogRoute),
		Type:         "website",
		Content:      body,
	})
}
