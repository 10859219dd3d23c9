package core

import "math"

// Piecewise fits of the blackbody locus, one row per temperature band.
var (
	blackbodyTableR = [6]Vec3{
		{2.52432244e+03, -1.06185848e-03, 3.11067539e+00},
		{3.37763626e+03, -4.34581697e-04, 1.64843306e+00},
		{4.10671449e+03, -8.61949938e-05, 6.41423749e-01},
		{4.66849800e+03, 2.85655028e-05, 1.29075375e-01},
		{4.60124770e+03, 2.89727618e-05, 1.48001316e-01},
		{3.78765709e+03, 9.36026367e-06, 3.98995841e-01},
	}
	blackbodyTableG = [6]Vec3{
		{-7.50343014e+02, 3.15679613e-04, 4.73464526e-01},
		{-1.00402363e+03, 1.29189794e-04, 9.08181524e-01},
		{-1.22075471e+03, 2.56245413e-05, 1.20753416e+00},
		{-1.42546105e+03, -4.01730887e-05, 1.44002695e+00},
		{-1.18134453e+03, -2.18913373e-05, 1.30656109e+00},
		{-5.00279505e+02, -4.59745390e-06, 1.09090465e+00},
	}
	blackbodyTableB = [6][4]float64{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{-2.02524603e-11, 1.79435860e-07, -2.60561875e-04, -1.41761141e-02},
		{-2.22463426e-13, -1.55078698e-08, 3.81675160e-04, -7.30646033e-01},
		{6.72595954e-13, -2.73059993e-08, 4.24068546e-04, -7.52204323e-01},
	}
)

// BlackbodyBlender returns the RGB tint of a blackbody at temperature t (kelvin).
// Values above 1 are possible and intended for use as emission colors.
func BlackbodyBlender(t float64) Vec3 {
	if t >= 12000 {
		return NewVec3(0.826270103, 0.994478524, 1.56626022)
	}
	if t < 965 {
		return NewVec3(4.70366907, 0, 0)
	}

	var i int
	switch {
	case t >= 6365:
		i = 5
	case t >= 3315:
		i = 4
	case t >= 1902:
		i = 3
	case t >= 1449:
		i = 2
	case t >= 1167:
		i = 1
	default:
		i = 0
	}

	r, g, b := blackbodyTableR[i], blackbodyTableG[i], blackbodyTableB[i]
	tInv := 1 / t

	return NewVec3(
		r.X*tInv+r.Y*t+r.Z,
		g.X*tInv+g.Y*t+g.Z,
		((b[0]*t+b[1])*t+b[2])*t+b[3],
	)
}

// Blackbody approximates a blackbody color by interpolating between the
// colors at 1000 K, 6600 K and 29800 K.
func Blackbody(temperature float64) Vec3 {
	const (
		rangeFirst  = 1000.0
		rangeSecond = 6600.0
		rangeThird  = 29800.0
	)
	first := NewVec3(1.0, 0.22, 0.0)
	second := NewVec3(1.0, 0.976, 0.992)
	third := NewVec3(0.624, 0.749, 1.0)

	switch {
	case temperature <= rangeFirst:
		return first
	case temperature == rangeSecond:
		return second
	case temperature >= rangeThird:
		return third
	case temperature < rangeSecond:
		return first.Lerp(second, (temperature-rangeFirst)/(rangeSecond-rangeFirst))
	default:
		return second.Lerp(third, (temperature-rangeSecond)/(rangeThird-rangeSecond))
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// hueToRGB returns the pure-hue color for h in [0,1]
func hueToRGB(h float64) Vec3 {
	return NewVec3(
		clamp01(math.Abs(h*6-3)-1),
		clamp01(2-math.Abs(h*6-2)),
		clamp01(2-math.Abs(h*6-4)),
	)
}

// HSLToRGB converts hue, saturation, lightness (all in [0,1]) to RGB
func HSLToRGB(hsl Vec3) Vec3 {
	n := hueToRGB(hsl.X)
	chroma := (1 - math.Abs(2*hsl.Z-1)) * hsl.Y

	return NewVec3(
		(n.X-0.5)*chroma+hsl.Z,
		(n.Y-0.5)*chroma+hsl.Z,
		(n.Z-0.5)*chroma+hsl.Z,
	)
}

// HSVToRGB converts hue, saturation, value (all in [0,1]) to RGB
func HSVToRGB(hsv Vec3) Vec3 {
	n := hueToRGB(hsv.X)

	return NewVec3(
		((n.X-1)*hsv.Y+1)*hsv.Z,
		((n.Y-1)*hsv.Y+1)*hsv.Z,
		((n.Z-1)*hsv.Y+1)*hsv.Z,
	)
}

// RGBToHSL converts RGB to hue, saturation, lightness
func RGBToHSL(rgb Vec3) Vec3 {
	cmax := math.Max(math.Max(rgb.X, rgb.Y), rgb.Z)
	cmin := math.Min(math.Min(rgb.X, rgb.Y), rgb.Z)
	l := math.Min(1, (cmax+cmin)/2)

	if cmax == cmin {
		return NewVec3(0, 0, l)
	}

	d := cmax - cmin
	var s float64
	if l > 0.5 {
		s = d / (2 - cmax - cmin)
	} else {
		s = d / (cmax + cmin)
	}

	var h float64
	switch cmax {
	case rgb.X:
		h = (rgb.Y - rgb.Z) / d
		if rgb.Y < rgb.Z {
			h += 6
		}
	case rgb.Y:
		h = (rgb.Z-rgb.X)/d + 2
	default:
		h = (rgb.X-rgb.Y)/d + 4
	}

	return NewVec3(h/6, s, l)
}

// RGBToHSV converts RGB to hue, saturation, value
func RGBToHSV(rgb Vec3) Vec3 {
	r, g, b := rgb.X, rgb.Y, rgb.Z
	k := 0.0

	if g < b {
		g, b = b, g
		k = -1
	}
	minGB := b

	if r < g {
		r, g = g, r
		k = -2.0/6.0 - k
		minGB = math.Min(g, b)
	}

	chroma := r - minGB

	return NewVec3(
		math.Abs(k+(g-b)/(6*chroma+1e-20)),
		chroma/(r+1e-20),
		r,
	)
}
