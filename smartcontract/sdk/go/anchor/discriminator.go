package anchor

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

const DiscriminatorSize = 8

var (
	ErrInvalidDiscriminator = errors.New("invalid account discriminator")
)

// Discriminator is the 8-byte tag Anchor prepends to account data and
// instruction data.
type Discriminator [DiscriminatorSize]byte

func (d Discriminator) String() string {
	return fmt.Sprintf("%x", d[:])
}

// AccountDiscriminator returns sha256("account:<name>")[:8].
func AccountDiscriminator(name string) Discriminator {
	return sha256First8("account:" + name)
}

// InstructionDiscriminator returns sha256("global:<name>")[:8], where name is
// the snake_case instruction name.
func InstructionDiscriminator(name string) Discriminator {
	return sha256First8("global:" + name)
}

func sha256First8(s string) Discriminator {
	h := sha256.Sum256([]byte(s))
	var disc Discriminator
	copy(disc[:], h[:DiscriminatorSize])
	return disc
}

// PeekDiscriminator returns the leading discriminator of data.
func PeekDiscriminator(data []byte) (Discriminator, error) {
	var disc Discriminator
	if len(data) < DiscriminatorSize {
		return disc, fmt.Errorf("%w: data too short", ErrInvalidDiscriminator)
	}
	copy(disc[:], data[:DiscriminatorSize])
	return disc, nil
}

func ValidateDiscriminator(data []byte, expected Discriminator) error {
	got, err := PeekDiscriminator(data)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("%w: got %x, want %x", ErrInvalidDiscriminator, got[:], expected[:])
	}
	return nil
}
