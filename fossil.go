package omeganet

import "strings"

// fossilBases maps characters to pseudo-nucleotide bases.
// Anything not listed becomes 'N'.
var fossilBases = map[rune]byte{
	'A': 'A', 'B': 'C', 'C': 'G', 'D': 'T', 'E': 'A', 'F': 'C', 'G': 'G', 'H': 'T',
	'I': 'A', 'J': 'C', 'K': 'G', 'L': 'T', 'M': 'A', 'N': 'N', 'O': 'C', 'P': 'G',
	'Q': 'T', 'R': 'A', 'S': 'C', 'T': 'G', 'U': 'T', 'V': 'A', 'W': 'C', 'X': 'G',
	'Y': 'T', 'Z': 'N',
}

// EncodeFossil turns a fact into a "DNA fossil" string over {A,C,G,T,N}.
// After base mapping, 3–7 runs of 3–6 'N' are spliced in at random positions.
func EncodeFossil(text string, src RandomSource) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(text) {
		if base, ok := fossilBases[r]; ok {
			b.WriteByte(base)
		} else {
			b.WriteByte('N')
		}
	}
	seq := b.String()

	runs := intBetween(src, 3, 7)
	for i := 0; i < runs; i++ {
		pos := intBetween(src, 0, len(seq))
		pad := strings.Repeat("N", intBetween(src, 3, 6))
		seq = seq[:pos] + pad + seq[pos:]
	}
	return seq
}
