package predictor

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	logoFileName = "splash_logo.png"
	iconFileName = "app_icon.png"
)

// defaultEmojiAssets maps every class id the model supports to its display
// image. The mapping mirrors the label order the classifier was trained with.
var defaultEmojiAssets = map[int]string{
	0: "heart.png", 1: "heart_eyes.png", 2: "joy.png", 3: "two_hearts.png", 4: "fire.png",
	5: "blush.png", 6: "sunglasses.png", 7: "sparkles.png", 8: "blue_heart.png", 9: "kissing_heart.png",
	10: "camera.png", 11: "us_flag.png", 12: "sun.png", 13: "purple_heart.png", 14: "wink.png",
	15: "hundred.png", 16: "grin.png", 17: "tree.png", 18: "camera_flash.png", 19: "wink_tongue.png",
}

// AssetCatalog resolves class ids to emoji images inside the image directory.
// It is loaded once at startup and read-only thereafter.
type AssetCatalog struct {
	dir     string
	byClass map[int]string
}

// NewAssetCatalog builds the catalog over the given image directory.
func NewAssetCatalog(dir string) *AssetCatalog {
	byClass := make(map[int]string, len(defaultEmojiAssets))
	for id, name := range defaultEmojiAssets {
		byClass[id] = name
	}
	return &AssetCatalog{dir: dir, byClass: byClass}
}

// Len returns the number of mapped classes.
func (c *AssetCatalog) Len() int { return len(c.byClass) }

// Resolve returns the image file name mapped to the class id.
func (c *AssetCatalog) Resolve(classID int) (string, bool) {
	name, ok := c.byClass[classID]
	return name, ok
}

// ImagePath resolves the class id to an existing file on disk. It fails when
// the id has no mapping or the mapped file is missing, so the caller can fall
// back to a placeholder glyph.
func (c *AssetCatalog) ImagePath(classID int) (string, error) {
	name, ok := c.byClass[classID]
	if !ok {
		return "", fmt.Errorf("no image mapped for class %d", classID)
	}
	path := filepath.Join(c.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("image for class %d: %w", classID, err)
	}
	return path, nil
}

// LogoPath returns the splash logo location; the file may be absent.
func (c *AssetCatalog) LogoPath() string { return filepath.Join(c.dir, logoFileName) }

// IconPath returns the application icon location; the file may be absent.
func (c *AssetCatalog) IconPath() string { return filepath.Join(c.dir, iconFileName) }
