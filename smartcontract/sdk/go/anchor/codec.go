package anchor

import (
	"bytes"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// Uint128 is a little-endian u128 as laid out by Borsh.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

func NewUint128(v *big.Int) Uint128 {
	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(v, 64)
	return Uint128{Lo: lo.Uint64(), Hi: hi.Uint64()}
}

func (u Uint128) BigInt() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	return u.BigInt().String()
}

// MarshalText renders u in decimal so JSON and YAML output carry the value
// rather than its two limbs.
func (u Uint128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Uint128) UnmarshalText(text []byte) error {
	v, ok := new(big.Int).SetString(string(text), 10)
	if !ok || v.Sign() < 0 || v.BitLen() > 128 {
		return fmt.Errorf("invalid u128 %q", text)
	}
	*u = NewUint128(v)
	return nil
}

// DecodeAccount validates the discriminator and Borsh-decodes the rest of
// data into a new T. Trailing bytes after the layout are ignored.
func DecodeAccount[T any](data []byte, disc Discriminator) (*T, error) {
	if err := ValidateDiscriminator(data, disc); err != nil {
		return nil, err
	}
	var item T
	if err := bin.NewBorshDecoder(data[DiscriminatorSize:]).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to deserialize account: %w", err)
	}
	return &item, nil
}

// EncodeAccount is the inverse of DecodeAccount.
func EncodeAccount(disc Discriminator, v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(disc[:])
	if err := bin.NewBorshEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("failed to serialize account: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeInstructionData returns disc followed by the Borsh encoding of args.
// A nil args encodes the discriminator only.
func EncodeInstructionData(disc Discriminator, args any) ([]byte, error) {
	data := make([]byte, 0, DiscriminatorSize)
	data = append(data, disc[:]...)
	if args == nil {
		return data, nil
	}
	body, err := borsh.Serialize(args)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize args: %w", err)
	}
	return append(data, body...), nil
}

// NewInstruction encodes args and wraps them with the account list.
func NewInstruction(programID solana.PublicKey, disc Discriminator, args any, accounts solana.AccountMetaSlice) (solana.Instruction, error) {
	data, err := EncodeInstructionData(disc, args)
	if err != nil {
		return nil, err
	}
	return &solana.GenericInstruction{
		ProgID:        programID,
		AccountValues: accounts,
		DataBytes:     data,
	}, nil
}
