package lzw3

// advanceWidth applies the single code-width rule shared by the encoder and
// the decoder: width grows by exactly one bit whenever the watched code
// count rolls over the next power of two already covered by width, and by
// zero otherwise. It is called with a different "watched" value on each
// side (the just-assigned code on the encoder, the just-assigned code plus
// one on the decoder), which is what produces the one-step phase offset
// between the two without either side ever seeing the other's width
// directly.
func advanceWidth(width *uint, watched int) {
	*width += uint(watched) >> *width
}
