package builder

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Page template names. A Document's Type selects between the article ones.
const (
	IndexTemplate    = "index.html"
	ContentTemplate  = "content.html"
	ArticleTemplate  = "article.html"
	ShopTemplate     = "shop.html"
	ShopItemTemplate = "shop_item.html"
	TagTemplate      = "tag.html"
	partialsTemplate = "partials.html"
)

var pageTemplates = []string{IndexTemplate, ContentTemplate, ArticleTemplate, ShopTemplate, ShopItemTemplate, TagTemplate}

// Templates holds one parsed template per page kind.
type Templates struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
}

// LoadTemplates parses every page template. A file in templateDir overrides
// the built-in default of the same name, partials included.
func LoadTemplates(templateDir string) (*Templates, error) {
	partials, err := readTemplate(templateDir, partialsTemplate)
	if err != nil {
		return nil, err
	}

	t := &Templates{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		src, err := readTemplate(templateDir, name)
		if err != nil {
			return nil, err
		}
		tmpl, err := template.New(partialsTemplate).Funcs(templateFuncs).Parse(partials)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", partialsTemplate, err)
		}
		if _, err := tmpl.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return t, nil
}

func readTemplate(dir, name string) (string, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to read template %s: %w", name, err)
		}
	}
	src, ok := DefaultTemplates[name]
	if !ok {
		return "", fmt.Errorf("no template named %s", name)
	}
	return src, nil
}

// Execute renders the named page template.
func (t *Templates) Execute(w io.Writer, name string, data PageData) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("no template named %s", name)
	}
	return tmpl.ExecuteTemplate(w, name, data)
}

// ArticleTemplateFor picks the template rendering a Document of type docType.
func ArticleTemplateFor(docType string) string {
	switch docType {
	case "shop":
		return ShopTemplate
	case "shop_item":
		return ShopItemTemplate
	default:
		return ArticleTemplate
	}
}
