package fractal

// escapeRadiusSq is |z|² beyond which an orbit is considered divergent.
const escapeRadiusSq = 4.0

// Evaluate iterates x' = x² - y² + a, y' = 2xy + b from (x0, y0).
//
// Two register pairs are shifted on every pass and the escape test reads the
// pair that was current before the shift, so the k-th iterate is tested on
// passes 2k and 2k+1 and a first escape at z_k reports Step 2k.
func Evaluate(x0, y0, a, b float64, maxIterations int) Result {
	xn, yn := x0, y0
	xn1, yn1 := x0, y0

	for i := 0; i < maxIterations; i++ {
		tx, ty := xn, yn
		xn, yn = xn1, yn1
		xn1 = tx*tx - ty*ty + a
		yn1 = 2*tx*ty + b

		if tx*tx+ty*ty > escapeRadiusSq {
			return Result{Escaped: true, Step: i}
		}
	}
	return Converged
}

// Mandelbrot evaluates the point (re, im) as the parameter of an orbit
// starting at the origin.
func Mandelbrot(re, im float64, maxIterations int) Result {
	return Evaluate(0, 0, re, im, maxIterations)
}

// Julia evaluates the orbit starting at (re, im) under the fixed parameter p.
func Julia(re, im float64, p Param, maxIterations int) Result {
	return Evaluate(re, im, p.A, p.B, maxIterations)
}
