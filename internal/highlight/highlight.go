// Package highlight wires chroma code highlighting into the markdown pipeline
// and produces the stylesheet for the light and dark code themes.
package highlight

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DarkScope is the selector the dark code theme is nested under.
const DarkScope = "[data-theme=dark]"

// StyleExists reports whether name is a registered chroma style.
func StyleExists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// LanguageExists reports whether chroma has a lexer for the language id.
func LanguageExists(id string) bool {
	return lexers.Get(id) != nil
}

// Extension returns a goldmark extension that emits class-based highlighting,
// so one page works under both themes.
func Extension(theme string) goldmark.Extender {
	return highlighting.NewHighlighting(
		highlighting.WithStyle(theme),
		highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
	)
}

// WriteStylesheet writes CSS for the light theme followed by the dark theme
// scoped under DarkScope.
func WriteStylesheet(w io.Writer, theme, darkTheme string) error {
	light, err := lookup(theme)
	if err != nil {
		return err
	}
	dark, err := lookup(darkTheme)
	if err != nil {
		return err
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, light); err != nil {
		return fmt.Errorf("write %s css: %w", theme, err)
	}

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, dark); err != nil {
		return fmt.Errorf("write %s css: %w", darkTheme, err)
	}
	return scope(w, &buf, DarkScope)
}

func lookup(name string) (*chroma.Style, error) {
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown code theme %q", name)
	}
	return style, nil
}

// scope prefixes every rule chroma emits ("/* Name */ .sel { ... }") with selector.
func scope(w io.Writer, r io.Reader, selector string) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if idx := strings.Index(line, "*/ "); idx >= 0 {
			line = line[:idx+3] + selector + " " + line[idx+3:]
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return sc.Err()
}
