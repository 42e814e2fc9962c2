package sdpbody

import "encoding/binary"

// Case-variant tables for the fixed segments of "application/sdp". Each
// entry is one upper/lower spelling of the segment packed little-endian,
// so a candidate read straight from the buffer compares as a single integer.
var (
	applTable = caseVariants("appl") // 16 entries
	icatTable = caseVariants("icat") // 16 entries
	ionTable  = caseVariants("ion")  // 8 entries, 24 bits
	sdpTable  = caseVariants("sdp")  // 8 entries, 24 bits
)

// caseVariants enumerates every upper/lower case spelling of an ASCII
// letter token of at most 4 bytes.
func caseVariants(token string) []uint32 {
	n := len(token)
	out := make([]uint32, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		var v uint32
		for i := 0; i < n; i++ {
			c := token[i] | 0x20
			if mask&(1<<i) != 0 {
				c &^= 0x20
			}
			v |= uint32(c) << (8 * i)
		}
		out = append(out, v)
	}
	return out
}

// matchToken reports whether x equals any entry of table.
func matchToken(x uint32, table []uint32) bool {
	for _, v := range table {
		if v == x {
			return true
		}
	}
	return false
}

// read4 packs b[i:i+4] little-endian. ok is false if fewer than 4 bytes remain.
func read4(b []byte, i int) (uint32, bool) {
	if i < 0 || i+4 > len(b) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b[i:]), true
}

// read3 packs b[i:i+3] into the low 24 bits.
func read3(b []byte, i int) (uint32, bool) {
	if i < 0 || i+3 > len(b) {
		return 0, false
	}
	return uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16, true
}
