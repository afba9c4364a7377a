package model

import "crypto/sha256"

// AccountDiscriminator returns the 8-byte prefix Anchor writes in front of
// an account of the given type name.
func AccountDiscriminator(name string) [8]byte {
	return discriminator("account:" + name)
}

// InstructionDiscriminator returns the 8-byte prefix identifying a program
// instruction by its snake_case method name.
func InstructionDiscriminator(name string) [8]byte {
	return discriminator("global:" + name)
}

func discriminator(preimage string) [8]byte {
	sum := sha256.Sum256([]byte(preimage))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}
