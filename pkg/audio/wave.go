package audio

// squareWave returns n signed 8-bit samples of a square wave at freq
// Hz. The length of a period is rounded to whole samples, and n is
// trimmed to a whole number of periods so the buffer loops cleanly.
func squareWave(freq, rate, n int, amplitude int8) []byte {
	period := rate / freq
	if period < 2 {
		period = 2
	}
	if n >= period {
		n -= n % period
	}

	out := make([]byte, n)
	for i := range out {
		v := amplitude
		if i%period >= period/2 {
			v = -amplitude
		}
		out[i] = byte(v)
	}
	return out
}
