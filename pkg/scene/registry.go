package scene

import (
	"errors"
	"sort"

	"golang.org/x/xerrors"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrUnknownScene is returned by New for names that are not registered
var ErrUnknownScene = errors.New("scene: unknown scene")

// Options tune scene construction
type Options struct {
	Seed             int64  // Seed for randomly placed objects
	EarthTexture     string // Optional image for globe spheres; a checker is used when empty
	EnvironmentImage string // Optional equirectangular environment for the materials scene
}

// Info describes a built-in scene
type Info struct {
	Name        string
	Description string
	build       func(Options) (*Scene, error)
}

var builtins = map[string]Info{
	"cornell": {
		Name:        "cornell",
		Description: "Cornell box with an aluminium sphere and a rotated box",
		build:       NewCornellScene,
	},
	"spheres": {
		Name:        "spheres",
		Description: "Random field of small spheres with three large ones under a sky",
		build:       NewSpheresScene,
	},
	"moving": {
		Name:        "moving",
		Description: "Sphere field with motion blur, textures and a rectangle light",
		build:       NewMovingScene,
	},
	"final": {
		Name:        "final",
		Description: "Boxes, volumes, instanced spheres and textures in one room",
		build:       NewFinalScene,
	},
	"materials": {
		Name:        "materials",
		Description: "Row of spheres with every glossy and debug material",
		build:       NewMaterialsScene,
	},
}

// List returns the built-in scenes sorted by name
func List() []Info {
	infos := make([]Info, 0, len(builtins))
	for _, info := range builtins {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// New builds and preprocesses the named scene
func New(name string, opts Options) (*Scene, error) {
	info, ok := builtins[name]
	if !ok {
		return nil, xerrors.Errorf("%q: %w", name, ErrUnknownScene)
	}
	s, err := info.build(opts)
	if err != nil {
		return nil, xerrors.Errorf("building scene %s: %w", name, err)
	}
	s.Preprocess()
	return s, nil
}

// earthTexture loads the globe image, falling back to a blue and green checker
func earthTexture(opts Options) (material.Texture, error) {
	if opts.EarthTexture == "" {
		return material.NewSolidChecker(oceanBlue, landGreen), nil
	}
	tex, err := loaders.LoadTexture(opts.EarthTexture, material.FilterBilinear)
	if err != nil {
		return nil, xerrors.Errorf("earth texture: %w", err)
	}
	return tex, nil
}
