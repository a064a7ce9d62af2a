package content

import (
	"sync"
)

// BuildContext owns the state of a single build: the slug registry and the
// Documents loaded so far. It is discarded when the build ends.
type BuildContext struct {
	mu    sync.Mutex
	slugs map[string]string
	docs  []*Document
	media []MediaFile
}

// NewBuildContext returns an empty context.
func NewBuildContext() *BuildContext {
	return &BuildContext{slugs: make(map[string]string)}
}

// Register records doc under its slug. A slug already taken by another folder
// is a SlugCollisionError naming both folders.
func (c *BuildContext) Register(doc *Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.slugs[doc.Slug]; ok {
		return &SlugCollisionError{Slug: doc.Slug, Existing: existing, Duplicate: doc.Path}
	}
	c.slugs[doc.Slug] = doc.Path
	c.docs = append(c.docs, doc)
	return nil
}

// Documents returns the registered Documents in registration order.
func (c *BuildContext) Documents() []*Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Len is the number of registered Documents.
func (c *BuildContext) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

func (c *BuildContext) setMedia(media []MediaFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.media = media
}

// Media returns the media files found by the last successful Load.
func (c *BuildContext) Media() []MediaFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MediaFile, len(c.media))
	copy(out, c.media)
	return out
}
