// Package signer defines the narrow signing capability the staking
// service depends on: an identity and the ability to sign a transaction
// message, nothing else.
package signer

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Signer is the wallet capability the orchestrator requires.
type Signer interface {
	PublicKey() solana.PublicKey
	Sign(message []byte) (solana.Signature, error)
}

// Keypair signs with a local ed25519 private key.
type Keypair struct {
	key solana.PrivateKey
}

// LoadKeypair reads a Solana keygen JSON file.
func LoadKeypair(path string) (*Keypair, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load keypair %s: %w", path, err)
	}
	return &Keypair{key: key}, nil
}

// NewKeypair wraps an in-memory private key. Used in tests.
func NewKeypair(key solana.PrivateKey) *Keypair {
	return &Keypair{key: key}
}

func (k *Keypair) PublicKey() solana.PublicKey {
	return k.key.PublicKey()
}

func (k *Keypair) Sign(message []byte) (solana.Signature, error) {
	sig, err := k.key.Sign(message)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sign message: %w", err)
	}
	return sig, nil
}
