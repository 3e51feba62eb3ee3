package ui

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/webp"
)

// Slide is one page of the presentation.
type Slide struct {
	Name  string
	Image image.Image // nil for a blank page
}

var slideExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

// LoadSlides decodes every image in dir in name order. A missing or empty
// directory yields a single blank slide so the presenter can still annotate.
func LoadSlides(dir string) ([]Slide, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		log.Printf("[UI] Slides directory %q not found, using a blank slide", dir)
		return []Slide{{Name: "blank"}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slides: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !slideExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	slides := make([]Slide, 0, len(names))
	for _, name := range names {
		img, err := decodeFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("[UI] Skipping slide %s: %v", name, err)
			continue
		}
		slides = append(slides, Slide{Name: strings.TrimSuffix(name, filepath.Ext(name)), Image: img})
	}
	if len(slides) == 0 {
		return []Slide{{Name: "blank"}}, nil
	}
	log.Printf("[UI] Loaded %d slides from %s", len(slides), dir)
	return slides, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
