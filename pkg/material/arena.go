package material

import "fmt"

// Handle is a stable index of a material inside an Arena
type Handle int32

// Arena owns every material of a scene. Shapes and hit records refer to
// materials by Handle; the arena must not change while rendering.
type Arena struct {
	materials []Material
}

// NewArena creates an empty material arena
func NewArena() *Arena {
	return &Arena{}
}

// Add stores a material and returns its handle
func (a *Arena) Add(m Material) Handle {
	a.materials = append(a.materials, m)
	return Handle(len(a.materials) - 1)
}

// Get resolves a handle. It returns nil for handles the arena never issued.
func (a *Arena) Get(h Handle) Material {
	if h < 0 || int(h) >= len(a.materials) {
		return nil
	}
	return a.materials[h]
}

// Len returns the number of stored materials
func (a *Arena) Len() int {
	return len(a.materials)
}

// Counts returns how many materials of each kind the arena holds
func (a *Arena) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, m := range a.materials {
		counts[m.Kind()]++
	}
	return counts
}

func (h Handle) String() string {
	return fmt.Sprintf("material#%d", int32(h))
}
