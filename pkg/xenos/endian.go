package xenos

// SwapEndian16 swaps every pair of bytes of b in place. A trailing odd byte
// is left untouched.
func SwapEndian16(b []byte) {
	for i := 0; i+1 < len(b); i += 2 {
		b[i], b[i+1] = b[i+1], b[i]
	}
}
