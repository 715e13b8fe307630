// Package rng provides a string-seeded pseudo-random stream.
//
// The stream is ARC4 based and produces the same sequence of numbers as the
// JavaScript seedrandom library for the same seed string. Changing anything
// here changes every chunk of every existing world.
package rng

import "unicode/utf16"

const (
	width        = 256
	chunks       = 6       // bytes per draw before topping up the mantissa
	startDenom   = 1 << 48 // 256^chunks
	significance = 1 << 52
	overflow     = 1 << 53
)

// Source is a deterministic random stream seeded from a string.
// A Source is not safe for concurrent use.
type Source struct {
	s    [width]uint8
	i, j uint8
}

// New returns a Source seeded from seed.
func New(seed string) *Source {
	key := mixKey(seed)

	src := &Source{}
	for i := range src.s {
		src.s[i] = uint8(i)
	}

	// Standard RC4 key schedule.
	var j uint8
	for i := 0; i < width; i++ {
		t := src.s[i]
		j += uint8(key[i%len(key)]) + t
		src.s[i] = src.s[j]
		src.s[j] = t
	}

	// RC4-drop[256].
	for i := 0; i < width; i++ {
		src.byteOut()
	}

	return src
}

// mixKey folds the UTF-16 code units of seed into an RC4 key of at most 256 bytes.
func mixKey(seed string) []int {
	key := make([]int, 0, width)
	smear := 0
	for j, c := range utf16.Encode([]rune(seed)) {
		idx := j & (width - 1)
		if idx < len(key) {
			smear ^= key[idx] * 19
			key[idx] = (smear + int(c)) & (width - 1)
			continue
		}
		key = append(key, (smear+int(c))&(width-1))
	}
	if len(key) == 0 {
		key = append(key, 0)
	}
	return key
}

// byteOut advances the cipher by one step and returns the output byte.
func (src *Source) byteOut() uint8 {
	src.i++
	t := src.s[src.i]
	src.j += t
	src.s[src.i] = src.s[src.j]
	src.s[src.j] = t
	return src.s[src.s[src.i]+t]
}

// Float64 returns the next value in [0, 1) with 52 bits of precision.
func (src *Source) Float64() float64 {
	var n uint64
	for k := 0; k < chunks; k++ {
		n = n<<8 | uint64(src.byteOut())
	}

	d := float64(startDenom)
	var x uint64
	for n < significance {
		n = (n + x) * width
		d *= width
		x = uint64(src.byteOut())
	}
	for n >= overflow {
		n /= 2
		d /= 2
		x >>= 1
	}
	return float64(n+x) / d
}

// Intn returns floor(Float64() * n). It panics if n <= 0.
func (src *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}
	return int(src.Float64() * float64(n))
}

// Shuffle pseudo-randomizes the order of n elements using Fisher-Yates,
// walking from the last element down. swap swaps the elements with indexes i and j.
func (src *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, src.Intn(i+1))
	}
}
