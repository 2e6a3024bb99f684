package envelope

import "github.com/matzehuels/due/pkg/geom"

// Dedup returns the lines sorted by increasing slope with one line per slope:
// the one with the greatest intercept, the earliest in input on ties. The
// sort is a stable LSD radix sort on the slope offset, eight bits per pass,
// and only runs as many passes as the slope range needs.
//
// Dedup is idempotent. The result aliases the workspace.
func (ws *Workspace) Dedup(lines []geom.Line) []geom.Line {
	n := len(lines)
	ws.Reserve(n)

	src := append(ws.sorted[:0], lines...)
	dst := ws.tmp[:n]
	if n == 0 {
		return src
	}

	minM, maxM := src[0].M, src[0].M
	for _, l := range src[1:] {
		minM = min(minM, l.M)
		maxM = max(maxM, l.M)
	}
	// Unsigned subtraction yields the exact offset even when the slope range
	// exceeds int64.
	span := uint64(maxM) - uint64(minM)

	var count [256]int
	for shift := uint(0); shift < 64 && span>>shift > 0; shift += 8 {
		clear(count[:])
		for _, l := range src {
			count[byte((uint64(l.M)-uint64(minM))>>shift)]++
		}
		sum := 0
		for d, c := range count {
			count[d] = sum
			sum += c
		}
		for _, l := range src {
			d := byte((uint64(l.M) - uint64(minM)) >> shift)
			dst[count[d]] = l
			count[d]++
		}
		src, dst = dst, src
	}

	out := src[:0]
	for _, l := range src {
		if k := len(out); k > 0 && out[k-1].M == l.M {
			if l.B > out[k-1].B {
				out[k-1] = l
			}
			continue
		}
		out = append(out, l)
	}
	return out
}
