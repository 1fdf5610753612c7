package mathutil

// Vec4 is a homogeneous 4-component vector. The fourth component is the
// homogeneous scale; it stays 1 under rigid transforms.
type Vec4 [4]float64

// W returns the homogeneous scale component.
func (v Vec4) W() float64 {
	return v[3]
}
