package beatmap

import "math"

// Vec is a point or offset in osu!pixels.
type Vec struct {
	X, Y float64
}

// PlayfieldSize is the size of the playfield rectangle in osu!pixels.
var PlayfieldSize = Vec{X: 512, Y: 384}

var CenterPos = Vec{
	X: 256,
	Y: 192,
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul multiplies component-wise.
func (v Vec) Mul(o Vec) Vec {
	return Vec{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec) Cross(o Vec) float64 {
	return v.X*o.Y - v.Y*o.X
}

func Distance(a, b Vec) float64 {
	return a.Sub(b).Len()
}
