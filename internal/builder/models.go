// internal/builder/models.go
package builder

import (
	"html/template"

	"dok/internal/config"
	"dok/internal/content"
)

// SiteSettings are the settings handed to templates, with the markdown
// settings already rendered.
type SiteSettings struct {
	config.Settings
	Introduction template.HTML
	Footer       template.HTML
	Topbar       template.HTML
}

// PageData is the struct passed to templates.
type PageData struct {
	Title string
	// Article is the Document being rendered; nil on index, content and tag pages.
	Article  *content.Document
	Articles map[string]*content.Document
	Ordered  []*content.Document
	// Tagged lists the Documents of a tag page.
	Tagged   []*content.Document
	Tags     []string
	Settings SiteSettings
}

// Stats counts what a build produced.
type Stats struct {
	Articles int
	Tags     int
	Pages    int
}
