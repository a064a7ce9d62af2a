package content

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingContentRoot is returned when the content directory does not exist.
	ErrMissingContentRoot = errors.New("there is no content")
	// ErrSlugCollision is matched by every SlugCollisionError.
	ErrSlugCollision = errors.New("slug collision")
	// ErrInvalidMetadataValue is matched by every MetadataValueError.
	ErrInvalidMetadataValue = errors.New("invalid metadata value")
)

// SlugCollisionError names both folders that derive the same slug.
type SlugCollisionError struct {
	Slug      string
	Existing  string
	Duplicate string
}

func (e *SlugCollisionError) Error() string {
	return fmt.Sprintf("one of these %q must be renamed to have unique names: %s, %s", e.Slug, e.Existing, e.Duplicate)
}

func (e *SlugCollisionError) Is(target error) bool { return target == ErrSlugCollision }

// MetadataValueError reports a metadata value that cannot be read as the
// field's type.
type MetadataValueError struct {
	Path  string
	Key   string
	Value string
}

func (e *MetadataValueError) Error() string {
	return fmt.Sprintf("%s: metadata %q has unsupported value %q", e.Path, e.Key, e.Value)
}

func (e *MetadataValueError) Is(target error) bool { return target == ErrInvalidMetadataValue }
