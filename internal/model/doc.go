// Package model holds the canonical wire layout for the staking program
// and the client-side view types derived from it.
//
// On-chain accounts are Anchor accounts: an 8-byte discriminator
// (sha256("account:<TypeName>")[:8]) followed by borsh-encoded fields in
// declaration order. Instruction data is the 8-byte method discriminator
// (sha256("global:<snake_name>")[:8]) followed by borsh-encoded arguments.
//
// PDA seeds: pool = ("staking_pool", mint), vault = ("token_vault", mint),
// user stake = ("user_stake", pool, user), pool authority = (pool).
package model
