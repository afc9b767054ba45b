package huffman

// simplePRNG is a linear congruential generator so generated test
// texts are identical on every platform and run.
type simplePRNG struct {
	state uint64
}

func newSimplePRNG(seed uint64) *simplePRNG {
	return &simplePRNG{state: seed}
}

func (p *simplePRNG) next() uint64 {
	p.state = p.state*6364136223846793005 + 1442695040888963407
	return p.state
}

// uint64N returns a random number in [0, n).
func (p *simplePRNG) uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return (p.next() >> 33) % n
}

// skewedText returns n symbols drawn from alphabet with a roughly
// geometric distribution, so codes of different lengths appear.
func (p *simplePRNG) skewedText(n int, alphabet string) string {
	runes := []rune(alphabet)
	out := make([]rune, n)
	for i := range out {
		j := 0
		for j < len(runes)-1 && p.uint64N(3) != 0 {
			j++
		}
		out[i] = runes[j]
	}
	return string(out)
}
