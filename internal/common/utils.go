package common

// WipeByteArray overwrites b with zeros so secrets such as the account
// password do not linger in memory after use. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
