/*
Package crypto verifies the secret-reveal signatures that unlock or refund a
swap.

A reveal is a message agreed by both counterparties before the swap is
opened, typically a serialized transaction of the counterpart chain. Only
the commitment, the content hash of that message, is stored with the swap.
A reveal is accepted when the message hashes to the commitment and the
signature over the commitment was produced by the claimed identity.

Two signature schemes are supported. Secp256k1 identities are 20 byte
addresses derived from the public key the same way account-based chains
derive them, and signatures are recoverable 65 byte [R || S || V] values.
Ed25519 identities are the 32 byte public keys.

Verification never fails with an error. Any mismatch or malformed input is
reported as a negative result.
*/
package crypto
