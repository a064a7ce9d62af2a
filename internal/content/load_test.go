package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dok/internal/ident"
	"dok/internal/markdown"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func newLoader(root, media string) *Loader {
	return &Loader{
		Root:      root,
		Converter: markdown.New(markdown.Options{}),
		MediaDir:  media,
		Workers:   4,
	}
}

func loadSite(t *testing.T, l *Loader) *Site {
	t.Helper()
	bc := NewBuildContext()
	require.NoError(t, l.Load(context.Background(), bc))
	require.NoError(t, l.StageMedia(bc))
	site, err := Assemble(bc.Documents())
	require.NoError(t, err)
	return site
}

func TestLoad_ParentChildAndTags(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	writeFile(t, filepath.Join(root, "01-01-2024-intro", IndexFile), "title: Intro\ntags: a, b\n\nSee [details](details.html).\n")
	writeFile(t, filepath.Join(root, "01-01-2024-intro", "01-02-2024-details", IndexFile), "Details body.\n")

	site := loadSite(t, newLoader(root, ""))
	require.Len(t, site.Documents, 2)

	intro, ok := site.Get("intro")
	require.True(t, ok)
	require.Equal(t, "Intro", intro.Title)
	require.False(t, intro.HasParent)
	require.Equal(t, []string{"01-02-2024-details"}, intro.Children)
	require.Equal(t, []string{"details"}, intro.ChildSlugs)

	details, ok := site.Get("details")
	require.True(t, ok)
	require.Equal(t, "intro", details.ParentSlug)
	require.True(t, details.HasParent)
	require.Equal(t, "details", details.Title)
	require.Equal(t, "01/02/2024", details.Published())

	require.Equal(t, []string{"a", "b"}, site.Tags.Names())
	require.Equal(t, []*Document{intro}, site.Tags.Documents("a"))
	require.Equal(t, []*Document{intro}, site.Tags.Documents("b"))
}

func TestLoad_MissingRoot(t *testing.T) {
	l := newLoader(filepath.Join(t.TempDir(), "nope"), "")
	err := l.Load(context.Background(), NewBuildContext())
	require.True(t, errors.Is(err, ErrMissingContentRoot))
}

func TestLoad_InvalidFolderDate_AbortsBuild(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	writeFile(t, filepath.Join(root, "01-01-2024-ok", IndexFile), "ok\n")
	writeFile(t, filepath.Join(root, "not-a-date", IndexFile), "bad\n")

	err := newLoader(root, "").Load(context.Background(), NewBuildContext())
	require.Error(t, err)
	require.True(t, errors.Is(err, ident.ErrInvalidDateFormat))
	require.Contains(t, err.Error(), "not-a-date")
}

func TestLoad_SlugCollisionNamesBothPaths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	first := filepath.Join(root, "01-01-2024-same")
	second := filepath.Join(root, "01-01-2024-other", "02-02-2024-same")
	writeFile(t, filepath.Join(first, IndexFile), "one\n")
	writeFile(t, filepath.Join(root, "01-01-2024-other", IndexFile), "other\n")
	writeFile(t, filepath.Join(second, IndexFile), "two\n")

	err := newLoader(root, "").Load(context.Background(), NewBuildContext())
	require.True(t, errors.Is(err, ErrSlugCollision))
	require.Contains(t, err.Error(), first)
	require.Contains(t, err.Error(), second)
}

func TestLoad_InvalidMetadataBoolean(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	writeFile(t, filepath.Join(root, "01-01-2024-x", IndexFile), "open: maybe\n\nbody\n")

	err := newLoader(root, "").Load(context.Background(), NewBuildContext())
	require.True(t, errors.Is(err, ErrInvalidMetadataValue))
}

func TestLoad_StagesMediaAndRemovesStrayFiles(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "content")
	media := filepath.Join(tmp, "public", "medias")
	folder := filepath.Join(root, "01-01-2024-intro")
	writeFile(t, filepath.Join(folder, IndexFile), "body\n")
	writeFile(t, filepath.Join(folder, "photo.jpg"), "jpeg")
	writeFile(t, filepath.Join(folder, ".DS_Store"), "junk")
	writeFile(t, filepath.Join(root, "README.txt"), "root file")

	loadSite(t, newLoader(root, media))

	data, err := os.ReadFile(filepath.Join(media, "intro-photo.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(data))

	_, err = os.Stat(filepath.Join(folder, ".DS_Store"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(media, "content-README.txt"))
	require.True(t, os.IsNotExist(err))

	// Already staged media is left alone on the next build.
	writeFile(t, filepath.Join(folder, "photo.jpg"), "changed")
	loadSite(t, newLoader(root, media))
	data, err = os.ReadFile(filepath.Join(media, "intro-photo.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(data))
}

func TestLoad_FolderWithoutIndexIsNotADocument(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	writeFile(t, filepath.Join(root, "01-01-2024-a", IndexFile), "a\n")
	writeFile(t, filepath.Join(root, "01-01-2024-a", "files", "doc.pdf"), "pdf")

	site := loadSite(t, newLoader(root, ""))
	require.Len(t, site.Documents, 1)
}

func TestLoad_FailedLoadStagesNoMedia(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "content")
	media := filepath.Join(tmp, "medias")
	writeFile(t, filepath.Join(root, "01-01-2024-a", IndexFile), "a\n")
	writeFile(t, filepath.Join(root, "01-01-2024-a", "photo.jpg"), "jpeg")
	writeFile(t, filepath.Join(root, "broken", IndexFile), "b\n")

	err := newLoader(root, media).Load(context.Background(), NewBuildContext())
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(media, "a-photo.jpg"))
	require.True(t, os.IsNotExist(err))
}

func TestLoad_RecordsMediaWithoutStaging(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "content")
	media := filepath.Join(tmp, "medias")
	folder := filepath.Join(root, "01-01-2024-a")
	writeFile(t, filepath.Join(folder, IndexFile), "a\n")
	writeFile(t, filepath.Join(folder, "photo.jpg"), "jpeg")

	l := newLoader(root, media)
	bc := NewBuildContext()
	require.NoError(t, l.Load(context.Background(), bc))
	require.Equal(t, []MediaFile{{Dir: folder, Name: "photo.jpg"}}, bc.Media())
	require.NoFileExists(t, filepath.Join(media, "a-photo.jpg"))

	require.NoError(t, l.StageMedia(bc))
	require.FileExists(t, filepath.Join(media, "a-photo.jpg"))
}

func TestLoad_ElevenCharacterFolderStagesUnderItsSlug(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "content")
	media := filepath.Join(tmp, "medias")
	folder := filepath.Join(root, "01-01-2024-")
	writeFile(t, filepath.Join(folder, IndexFile), "body\n")
	writeFile(t, filepath.Join(folder, "photo.jpg"), "jpeg")

	site := loadSite(t, newLoader(root, media))
	doc, ok := site.Get("01-01-2024-")
	require.True(t, ok)
	require.FileExists(t, filepath.Join(media, doc.MediaSlug()+"-photo.jpg"))
}

func TestLoad_TagThatIsNotAFileName(t *testing.T) {
	for _, tag := range []string{"a/b", `a\b`, "..", "."} {
		root := filepath.Join(t.TempDir(), "content")
		writeFile(t, filepath.Join(root, "01-01-2024-x", IndexFile), "tags: ok, "+tag+"\n\nbody\n")

		err := newLoader(root, "").Load(context.Background(), NewBuildContext())
		require.Error(t, err, tag)
		require.True(t, errors.Is(err, ErrInvalidMetadataValue), tag)

		var mve *MetadataValueError
		require.True(t, errors.As(err, &mve))
		require.Equal(t, "tags", mve.Key)
	}
}
