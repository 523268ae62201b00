package newsletter

import (
	"bytes"
	_ "embed"
	"text/template"
)

// Item is one rumor line in the rendered newsletter.
type Item struct {
	Title     string
	Excerpt   string
	Category  string
	Score     float64
	Views     int64
	Confirmed int64
	Debunked  int64
	Shared    int64
	Created   string
}

// Data feeds the newsletter template.
type Data struct {
	Title         string
	Slug          string
	Datetime      string
	PeriodFrom    string
	PeriodTo      string
	Preface       string
	Postscript    string
	EditorsNote   string
	CoverImageURL string

	TotalRumors        int
	NewThisPeriod      int
	TotalViews         int64
	MostActiveCategory string

	Trending    []Item
	NewThisWeek []Item
}

//go:embed digest.tmpl
var digestTpl string

var compiled = template.Must(template.New("digest").Parse(digestTpl))

// Render produces the markdown newsletter body with YAML frontmatter.
func Render(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
