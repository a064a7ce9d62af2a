package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"dok/internal/ident"
	"dok/internal/markdown"
	"dok/internal/util"
)

// strayFiles are OS artifacts removed from the content tree while walking it.
var strayFiles = map[string]bool{
	".DS_Store": true,
	"Thumbs.db": true,
}

// Loader walks a content root and turns every folder holding an index file
// into a Document.
type Loader struct {
	Root      string
	Converter markdown.Converter
	// MediaDir receives every non-index file found under Root, renamed to
	// "<folder-slug>-<file>", when StageMedia runs. Staging is skipped when
	// empty.
	MediaDir string
	Workers  int
	Logger   *slog.Logger
}

type folder struct {
	path     string
	children []string
}

// MediaFile is a non-index file of a content folder, waiting to be staged.
type MediaFile struct {
	Dir  string
	Name string
}

// Load walks the content root and registers one Document per content folder in
// bc. Folders are loaded in parallel and the first error aborts the whole
// load. Media files are recorded in bc but not copied; see StageMedia.
func (l *Loader) Load(ctx context.Context, bc *BuildContext) error {
	info, err := os.Stat(l.Root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrMissingContentRoot, l.Root)
	}

	folders, media, err := l.walk()
	if err != nil {
		return err
	}

	workers := l.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, f := range folders {
		f := f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := l.LoadDocument(f.path, f.children)
			if err != nil {
				return err
			}
			return bc.Register(doc)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	bc.setMedia(media)
	return nil
}

// StageMedia copies the media recorded by Load into MediaDir. Callers run it
// once nothing else in the build can fail.
func (l *Loader) StageMedia(bc *BuildContext) error {
	for _, m := range bc.Media() {
		if err := l.stageMedia(m.Dir, m.Name); err != nil {
			return err
		}
	}
	return nil
}

// walk visits every directory under the root once, removing stray files and
// collecting content folders and media files.
func (l *Loader) walk() ([]folder, []MediaFile, error) {
	var folders []folder
	var media []MediaFile
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != l.Root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("failed to read folder %s: %w", path, err)
		}

		var children []string
		hasIndex := false
		for _, entry := range entries {
			name := entry.Name()
			switch {
			case entry.IsDir():
				if !strings.HasPrefix(name, ".") {
					children = append(children, name)
				}
			case name == IndexFile:
				hasIndex = true
			case strayFiles[name]:
				if err := os.Remove(filepath.Join(path, name)); err != nil {
					return fmt.Errorf("failed to remove %s: %w", filepath.Join(path, name), err)
				}
				l.logger().Debug("Removed stray file", "path", filepath.Join(path, name))
			case path != l.Root:
				media = append(media, MediaFile{Dir: path, Name: name})
			}
		}

		if hasIndex {
			folders = append(folders, folder{path: path, children: children})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return folders, media, nil
}

func (l *Loader) stageMedia(dir, name string) error {
	if l.MediaDir == "" {
		return nil
	}
	dest := filepath.Join(l.MediaDir, MediaName(dir, name))
	copied, err := util.CopyIfMissing(filepath.Join(dir, name), dest)
	if err != nil {
		return fmt.Errorf("failed to stage media %s: %w", filepath.Join(dir, name), err)
	}
	if copied {
		l.logger().Debug("Staged media", "src", filepath.Join(dir, name), "dest", dest)
	}
	return nil
}

// MediaName is the flat file name a media asset of folder dir is staged under.
func MediaName(dir, name string) string {
	return ident.SlugFromPath(dir) + "-" + name
}

// LoadDocument reads one content folder. It has no knowledge of any other
// Document; children are the names of the folder's sub-folders.
func (l *Loader) LoadDocument(path string, children []string) (*Document, error) {
	name := filepath.Base(filepath.Clean(path))
	date, slug, err := ident.Derive(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	source, err := os.ReadFile(filepath.Join(path, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Join(path, IndexFile), err)
	}
	res, err := l.Converter.Convert(source)
	if err != nil {
		return nil, fmt.Errorf("failed to process content for %s: %w", path, err)
	}

	parent := filepath.Dir(filepath.Clean(path))
	doc := &Document{
		Path:            path,
		Name:            name,
		PublicationDate: date,
		Slug:            slug,
		Children:        children,
		ChildSlugs:      childSlugs(children),
		Metadata:        res.Metadata,
		Body:            res.Body,
		TableOfContents: res.TOC,
		ParentSlug:      ident.SlugFromPath(parent),
		HasParent:       parent != filepath.Clean(l.Root),
	}
	if doc.Metadata == nil {
		doc.Metadata = markdown.Metadata{}
	}
	if err := applyMetadata(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func childSlugs(children []string) []string {
	slugs := make([]string, 0, len(children))
	for _, child := range children {
		slugs = append(slugs, ident.SlugFromPath(child))
	}
	return slugs
}
