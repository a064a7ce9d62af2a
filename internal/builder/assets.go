package builder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"dok/internal/util"
)

// assetExts are the file extensions copied from the assets directory.
var assetExts = map[string]bool{
	".css": true, ".js": true, ".txt": true, ".svg": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".ico": true, ".woff": true, ".woff2": true, ".ttf": true, ".pdf": true,
}

// copyStaticAssets mirrors assetsDir into outputDir. A missing assets
// directory is not an error.
func copyStaticAssets(assetsDir, outputDir string) error {
	if assetsDir == "" {
		return nil
	}
	if _, err := os.Stat(assetsDir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return filepath.Walk(assetsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !assetExts[strings.ToLower(filepath.Ext(info.Name()))] {
			return nil
		}
		rel, err := filepath.Rel(assetsDir, path)
		if err != nil {
			return err
		}
		return util.CopyFile(path, filepath.Join(outputDir, rel))
	})
}
