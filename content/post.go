// Package content reads blog posts and standalone pages from disk.
package content

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
)

const (
	dateLayout    = "2006-01-02"
	displayLayout = "January 2, 2006"
)

// ErrMissingDate is returned for a published post without a date.
var ErrMissingDate = errors.New("published post has no date")

// Post is one parsed and rendered post. Posts are built once per build and
// never mutated afterwards.
type Post struct {
	Slug        string
	Title       string
	Description string
	Date        time.Time
	Categories  []string
	Published   bool
	Link        string
	External    bool
	Image       string
	HTML        string
	Source      string
}

// BlogRoute is the section every post page lives under.
const BlogRoute = "blog"

// URLPath is the post's route with the slug escaped for links. Output paths
// use the raw slug.
func (p Post) URLPath() string {
	return BlogRoute + "/" + url.PathEscape(p.Slug)
}

// IsExternal reports whether the listing should send readers to Link
// instead of the post page.
func (p Post) IsExternal() bool {
	return p.External && p.Link != ""
}

// DisplayDate formats the post date as "January 2, 2006".
func (p Post) DisplayDate() string {
	return FormatDate(p.Date)
}

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC so
// the day never moves with the local timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid date %q", s)
	}
	return t, nil
}

// FormatDate renders t in the long US form, e.g. "March 1, 2024".
func FormatDate(t time.Time) string {
	return t.UTC().Format(displayLayout)
}
