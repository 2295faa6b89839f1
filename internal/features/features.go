// Package features renders the homepage feature section: three fixed
// columns, each an icon above a heading above a paragraph.
package features

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed icons/*.svg
var icons embed.FS

const (
	// HeadingLevel is shared by every column heading.
	HeadingLevel = 3
	columnClass  = "col col--4"
)

// Entry is one feature block.
type Entry struct {
	Icon    string // file name under icons/
	Heading string
	Body    string
}

// Entries returns the feature blocks in display order.
func Entries() []Entry {
	return []Entry{
		{
			Icon:    "acf.svg",
			Heading: "ACF Pro Integration",
			Body: "Build custom Gutenberg blocks with seamless Advanced Custom Fields Pro " +
				"integration. Create powerful, flexible content blocks without the complexity.",
		},
		{
			Icon:    "deodar.svg",
			Heading: "CLI-Powered Development",
			Body: "Rapid development with our command-line tool. Generate blocks, manage builds, " +
				"and streamline your WordPress development workflow with simple commands.",
		},
		{
			Icon:    "es-build-and-sass.svg",
			Heading: "Modern Asset Management",
			// TODO: replace with asset-pipeline copy once the esbuild/Sass docs land; this
			// currently repeats the CLI description.
			Body: "Rapid development with our command-line tool. Generate blocks, manage builds, " +
				"and streamline your WordPress development workflow with simple commands.",
		},
	}
}

// Column is the layout of one entry inside the grid.
type Column struct {
	Class        string
	IconClass    string
	Icon         string
	Heading      string
	HeadingLevel int
	Body         string
}

// Section is the full grid, columns in entry order.
type Section struct {
	Columns []Column
}

// Layout maps Entries onto equal-width grid columns.
func Layout() Section {
	entries := Entries()
	cols := make([]Column, len(entries))
	for i, e := range entries {
		cols[i] = Column{
			Class:        columnClass,
			IconClass:    iconClass(e.Icon),
			Icon:         e.Icon,
			Heading:      e.Heading,
			HeadingLevel: HeadingLevel,
			Body:         e.Body,
		}
	}
	return Section{Columns: cols}
}

// iconClass turns "es-build-and-sass.svg" into "featureSvg--es-build-and-sass".
func iconClass(file string) string {
	return "featureSvg--" + strings.TrimSuffix(file, ".svg")
}

var sectionTpl = template.Must(template.New("features").Funcs(template.FuncMap{
	"icon":    inlineIcon,
	"heading": heading,
}).Parse(`<section class="features">
  <div class="container">
    <div class="row">
{{- range .Columns}}
      <div class="{{.Class}}">
        <div class="text--center">{{icon .}}</div>
        <div class="text--center padding-horiz--md">
          {{heading .}}
          <p>{{.Body}}</p>
        </div>
      </div>
{{- end}}
    </div>
  </div>
</section>
`))

// Render writes the section markup to w.
func Render(w io.Writer) error {
	return sectionTpl.Execute(w, Layout())
}

// HTML renders the section for embedding in a page template.
func HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// inlineIcon embeds the SVG markup with the column's class and an img role.
func inlineIcon(c Column) (template.HTML, error) {
	raw, err := icons.ReadFile("icons/" + c.Icon)
	if err != nil {
		return "", fmt.Errorf("feature icon %s: %w", c.Icon, err)
	}
	attrs := fmt.Sprintf(`<svg class="featureSvg %s" role="img"`, template.HTMLEscapeString(c.IconClass))
	svg := strings.Replace(strings.TrimSpace(string(raw)), "<svg", attrs, 1)
	return template.HTML(svg), nil
}

func heading(c Column) template.HTML {
	return template.HTML(fmt.Sprintf("<h%d>%s</h%d>", c.HeadingLevel, template.HTMLEscapeString(c.Heading), c.HeadingLevel))
}
