// Package manifest resolves the optional manifest.json sidecar to the
// slide canvas size.
//
// Any failure while locating, parsing, or validating the manifest is
// deliberately discarded: the resolver never returns an error, it
// returns a Resolution whose Source records whether the manifest or the
// built-in default won. Partial manifests are ignored in full — either
// slideSize carries numeric width and height, or the default applies.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// FileName is the manifest's fixed location at the staging root.
const FileName = "manifest.json"

// Default canvas dimensions in pixels.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// maxManifestSize caps manifest reads; a slide-deck descriptor has no
// business being larger.
const maxManifestSize = 1 << 20

// schema accepts only a manifest with positive integer slideSize fields.
const schema = `{
	"type": "object",
	"required": ["slideSize"],
	"properties": {
		"slideSize": {
			"type": "object",
			"required": ["width", "height"],
			"properties": {
				"width": {"type": "integer", "minimum": 1},
				"height": {"type": "integer", "minimum": 1}
			}
		}
	}
}`

// Source identifies where the resolved canvas size came from.
type Source int

const (
	SourceDefault Source = iota
	SourceManifest
)

// String returns the source name for logging.
func (s Source) String() string {
	if s == SourceManifest {
		return "manifest"
	}
	return "default"
}

// Size is the slide canvas in pixels.
type Size struct {
	Width  int
	Height int
}

// Resolution is the outcome of manifest resolution. Source makes the
// silent-fallback behavior visible to callers.
type Resolution struct {
	Size   Size
	Source Source
}

// fileManifest mirrors the manifest.json shape.
type fileManifest struct {
	SlideSize struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"slideSize"`
}

// defaultResolution is returned on every failure path.
func defaultResolution() Resolution {
	return Resolution{Size: Size{Width: DefaultWidth, Height: DefaultHeight}, Source: SourceDefault}
}

// Resolve reads manifest.json under stagedDir and returns the canvas
// size it specifies, or the 1280x720 default when the file is missing,
// unreadable, oversized, malformed, or fails schema validation.
func Resolve(stagedDir string) Resolution {
	path := filepath.Join(stagedDir, FileName)

	info, err := os.Stat(path)
	if err != nil || info.Size() > maxManifestSize {
		return defaultResolution()
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is rooted in the staging directory
	if err != nil {
		return defaultResolution()
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil || !result.Valid() {
		return defaultResolution()
	}

	var m fileManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return defaultResolution()
	}

	return Resolution{
		Size:   Size{Width: m.SlideSize.Width, Height: m.SlideSize.Height},
		Source: SourceManifest,
	}
}
