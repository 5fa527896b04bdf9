package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Bands splits height rows into at most parts contiguous bands of nearly
// equal size. It returns nil for a non-positive height.
func Bands(height, parts int) []Band {
	if height <= 0 {
		return nil
	}
	parts = max(1, min(parts, height))
	out := make([]Band, parts)
	for i := range out {
		out[i] = Band{Y0: height * i / parts, Y1: height * (i + 1) / parts}
	}
	return out
}
