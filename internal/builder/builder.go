// internal/builder/builder.go
package builder

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dok/internal/backlinks"
	"dok/internal/config"
	"dok/internal/content"
	"dok/internal/markdown"
	"dok/internal/postprocess"
)

type BuildOptions struct {
	ContentDir  string
	OutputDir   string
	TemplateDir string
	AssetsDir   string
	// CleanDestination removes the HTML pages of the previous build before
	// writing the new ones. Staged media is kept.
	CleanDestination bool
	Unsafe           bool
	Workers          int
	Logger           *slog.Logger
}

func (o BuildOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// BuildSite loads the content tree, resolves the content graph and writes
// every page. Neither pages nor media reach the output directory until every
// page rendered and was written to a staging directory.
func BuildSite(ctx context.Context, opts BuildOptions, settings config.Settings) (Stats, error) {
	log := opts.logger()
	start := time.Now()
	conv := markdown.New(markdown.Options{Unsafe: opts.Unsafe})

	// Step 1: load every content folder.
	bc := content.NewBuildContext()
	loader := &content.Loader{
		Root:      opts.ContentDir,
		Converter: conv,
		MediaDir:  filepath.Join(opts.OutputDir, postprocess.MediaDir),
		Workers:   opts.Workers,
		Logger:    log,
	}
	if err := loader.Load(ctx, bc); err != nil {
		return Stats{}, err
	}
	log.Debug("Content loaded", "documents", bc.Len(), "stage", "load")

	// Step 2: assemble the graph and resolve backlinks.
	site, err := content.Assemble(bc.Documents())
	if err != nil {
		return Stats{}, err
	}
	if err := backlinks.Resolve(ctx, site, opts.Workers); err != nil {
		return Stats{}, fmt.Errorf("backlink resolution failed: %w", err)
	}
	log.Debug("Content graph resolved", "documents", len(site.Ordered), "tags", site.Tags.Len(), "stage", "graph")

	// Step 3: render every page in memory.
	siteSettings, err := renderSettings(conv, settings)
	if err != nil {
		return Stats{}, err
	}
	tmpl, err := LoadTemplates(opts.TemplateDir)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load templates: %w", err)
	}
	pages, err := renderPages(tmpl, site, siteSettings)
	if err != nil {
		return Stats{}, err
	}
	feed, err := renderFeed(site, settings)
	if err != nil {
		return Stats{}, err
	}

	// Step 4: publish. Every file is written to a staging directory first, so
	// the previous output stays intact until the whole site exists on disk.
	files := make(map[string][]byte, len(pages)+1)
	for name, html := range pages {
		files[name] = []byte(html)
	}
	files[feedFile] = feed
	for name := range files {
		if err := checkPageName(name); err != nil {
			return Stats{}, err
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return Stats{}, err
	}
	staging, err := os.MkdirTemp(opts.OutputDir, ".dok-")
	if err != nil {
		return Stats{}, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(staging, name), data, 0644); err != nil {
			return Stats{}, fmt.Errorf("failed to write page %s: %w", name, err)
		}
	}

	if err := loader.StageMedia(bc); err != nil {
		return Stats{}, err
	}
	if opts.CleanDestination {
		if err := cleanPages(opts.OutputDir); err != nil {
			return Stats{}, err
		}
	}
	for name := range files {
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(opts.OutputDir, name)); err != nil {
			return Stats{}, fmt.Errorf("failed to publish %s: %w", name, err)
		}
	}
	if err := copyStaticAssets(opts.AssetsDir, filepath.Join(opts.OutputDir, "assets")); err != nil {
		return Stats{}, fmt.Errorf("failed to copy assets: %w", err)
	}

	stats := Stats{Articles: len(site.Ordered), Tags: site.Tags.Len(), Pages: len(pages)}
	log.Info("Site built",
		"articles", stats.Articles,
		"tags", stats.Tags,
		"pages", stats.Pages,
		"duration_ms", time.Since(start).Milliseconds())
	return stats, nil
}

func renderSettings(conv *markdown.GoldmarkConverter, settings config.Settings) (SiteSettings, error) {
	out := SiteSettings{Settings: settings}
	fields := []struct {
		name string
		src  string
		dst  *template.HTML
	}{
		{"introduction", settings.Introduction, &out.Introduction},
		{"footer", settings.Footer, &out.Footer},
		{"topbar", settings.Topbar, &out.Topbar},
	}
	for _, f := range fields {
		html, err := conv.RenderFragment(f.src)
		if err != nil {
			return SiteSettings{}, fmt.Errorf("failed to render setting %s: %w", f.name, err)
		}
		*f.dst = template.HTML(html)
	}
	return out, nil
}

// renderPages renders index, content, article and tag pages, keyed by output
// file name.
func renderPages(tmpl *Templates, site *content.Site, settings SiteSettings) (map[string]string, error) {
	base := PageData{
		Articles: site.Documents,
		Ordered:  site.Ordered,
		Tags:     site.Tags.Names(),
		Settings: settings,
	}
	pages := make(map[string]string, len(site.Ordered)+site.Tags.Len()+2)

	execute := func(name string, data PageData) (string, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, name, data); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", name, err)
		}
		return buf.String(), nil
	}

	index, err := execute(IndexTemplate, base)
	if err != nil {
		return nil, err
	}
	pages["index.html"] = index

	contentData := base
	contentData.Title = "Content"
	contentPage, err := execute(ContentTemplate, contentData)
	if err != nil {
		return nil, err
	}
	pages["content.html"] = contentPage

	for _, doc := range site.Ordered {
		data := base
		data.Title = doc.Title
		data.Article = doc
		out, err := execute(ArticleTemplateFor(doc.Type), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Path, err)
		}
		out, err = postprocess.Process(out, doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Path, err)
		}
		pages[doc.URL()] = out
	}

	for _, tag := range site.Tags.Names() {
		data := base
		data.Title = tag
		data.Tagged = site.Tags.Documents(tag)
		out, err := execute(TagTemplate, data)
		if err != nil {
			return nil, err
		}
		pages[TagPage(tag)] = out
	}
	return pages, nil
}

const feedFile = "rss.xml"

// checkPageName rejects output names that would not land directly in the
// output directory.
func checkPageName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("page name %q is not a plain file name", name)
	}
	return nil
}

// TagPage is the file name of a tag's page.
func TagPage(tag string) string {
	return "tag-" + tag + ".html"
}

// cleanPages removes the HTML files at the top of outputDir.
func cleanPages(outputDir string) error {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		if err := os.Remove(filepath.Join(outputDir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
