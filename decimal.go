package lazybinary

import "math/big"

// AppendTwosComplement appends the minimal big-endian two's complement
// representation of i to b. Zero is represented by a single 0x00 byte.
func AppendTwosComplement(b []byte, i *big.Int) []byte {
	if i.Sign() >= 0 {
		mag := i.Bytes()
		if len(mag) == 0 || mag[0]&0x80 != 0 {
			b = append(b, 0)
		}
		return append(b, mag...)
	}

	// -i-1 has the same bits as i with every bit flipped.
	m := new(big.Int).Neg(i)
	m.Sub(m, big.NewInt(1))
	mag := m.Bytes()
	if len(mag) == 0 || mag[0]&0x80 != 0 {
		b = append(b, 0xFF)
	}
	for _, c := range mag {
		b = append(b, ^c)
	}
	return b
}

// TwosComplementInt interprets b as a big-endian two's complement integer.
func TwosComplementInt(b []byte) *big.Int {
	i := new(big.Int)
	if len(b) == 0 {
		return i
	}
	if b[0]&0x80 == 0 {
		return i.SetBytes(b)
	}
	inv := make([]byte, len(b))
	for j, c := range b {
		inv[j] = ^c
	}
	i.SetBytes(inv)
	i.Add(i, big.NewInt(1))
	return i.Neg(i)
}
