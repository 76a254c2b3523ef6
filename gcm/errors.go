package gcm

import "errors"

// Sentinel errors for the fatal, unrecoverable contract violations: state
// violations, size violations, and length overflow. None of these are
// retried or recovered locally; callers match them with errors.Is.
var (
	// ErrNotKeyed is returned when an operation needs a key schedule that
	// SetKey has not yet established.
	ErrNotKeyed = errors.New("gcm: engine has no key set")

	// ErrNoPacket is returned when an operation needs per-packet state
	// that PacketInit has not yet established.
	ErrNoPacket = errors.New("gcm: no packet initialized")

	// ErrSealed is returned by AddAuth once AAD has been sealed, either
	// explicitly via AuthFinalize or implicitly by the first Encrypt/Decrypt.
	ErrSealed = errors.New("gcm: AAD already sealed")

	// ErrInvalidSize is returned when a block size argument to
	// Encrypt/Decrypt falls outside 1..=16.
	ErrInvalidSize = errors.New("gcm: block size must be in 1..=16")

	// ErrLengthOverflow is returned when alen or plen, measured in bits,
	// would exceed the 32-bit fields the length block packs them into.
	ErrLengthOverflow = errors.New("gcm: AAD or ciphertext length overflows 32-bit bit-count field")

	// ErrTagMismatch is returned by streaming decrypt helpers when the
	// computed tag does not match the tag carried on the wire. The core
	// engine itself never compares tags; it only produces them.
	ErrTagMismatch = errors.New("gcm: authentication tag mismatch")
)
