package geom

// AffineTransformation is a 3x3 linear part (Matrix3) plus a translation,
// matching spec.md §3: "AffineTransformation adds a translation... used for
// the simulation-cell basis".
type AffineTransformation struct {
	Linear      Matrix3
	Translation Vector3
}

// IdentityAffine returns the identity affine transformation.
func IdentityAffine() AffineTransformation {
	return AffineTransformation{Linear: Identity3()}
}

// Apply maps point p through the affine transformation: p*Linear + Translation.
func (a AffineTransformation) Apply(p Point3) Point3 {
	return a.Linear.MulVector(p).Add(a.Translation)
}

// ApplyVector maps a free vector v (ignoring translation).
func (a AffineTransformation) ApplyVector(v Vector3) Vector3 {
	return a.Linear.MulVector(v)
}

// Inverse returns the inverse affine transformation, or an error if the
// linear part is singular.
func (a AffineTransformation) Inverse() (AffineTransformation, error) {
	invLinear, err := a.Linear.Inverse()
	if err != nil {
		return AffineTransformation{}, err
	}
	return AffineTransformation{
		Linear:      invLinear,
		Translation: invLinear.MulVector(a.Translation.Neg()),
	}, nil
}

// Determinant returns the determinant of the linear part.
func (a AffineTransformation) Determinant() float64 {
	return a.Linear.Determinant()
}

// Equals reports whether a and o are equal within tolerance eps.
func (a AffineTransformation) Equals(o AffineTransformation, eps float64) bool {
	return a.Linear.Equals(o.Linear, eps) && a.Translation.Equals(o.Translation, eps)
}
