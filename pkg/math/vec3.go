// Package math provides the small geometry value types shared by the asset formats.
package math

// Vec3 is a 3D vector in file coordinates.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}
