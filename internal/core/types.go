package core

import "fmt"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Area returns the number of cells covered by the size.
func (s Size) Area() int { return s.W * s.H }

// Material is the content of a single grid cell.
type Material uint8

const (
	Empty Material = iota
	Wall
	Liquid
	Granular
	Gas
)

// materialTokens are the names written to save files.
var materialTokens = [...]string{
	Empty:    "air",
	Wall:     "wall",
	Liquid:   "water",
	Granular: "sand",
	Gas:      "gas",
}

var materialLabels = [...]string{
	Empty:    "Empty",
	Wall:     "Wall",
	Liquid:   "Liquid",
	Granular: "Granular",
	Gas:      "Gas",
}

// String returns the save-file token for the material.
func (m Material) String() string {
	if int(m) < len(materialTokens) {
		return materialTokens[m]
	}
	return fmt.Sprintf("material(%d)", uint8(m))
}

// Label returns a human readable name for status displays.
func (m Material) Label() string {
	if int(m) < len(materialLabels) {
		return materialLabels[m]
	}
	return m.String()
}

// Valid reports whether m is one of the known materials.
func (m Material) Valid() bool { return int(m) < len(materialTokens) }

// ParseMaterial maps a save-file token back to its material.
func ParseMaterial(token string) (Material, bool) {
	for i, name := range materialTokens {
		if name == token {
			return Material(i), true
		}
	}
	return Empty, false
}

// Materials lists the placeable materials in key-binding order (1-4).
func Materials() []Material {
	return []Material{Wall, Liquid, Granular, Gas}
}
