package anchor_test

import (
	"encoding/binary"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/google/go-cmp/cmp"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/stretchr/testify/require"
)

type testAccount struct {
	Owner   solana.PublicKey
	Bump    uint8
	Paused  bool
	Balance uint64
	Stored  anchor.Uint128
	Updated int64
	Members []solana.PublicKey
}

func TestSDK_Anchor_DecodeAccount(t *testing.T) {
	t.Parallel()

	disc := anchor.AccountDiscriminator("TestAccount")
	want := testAccount{
		Owner:   solana.NewWallet().PublicKey(),
		Bump:    254,
		Paused:  true,
		Balance: 1_000_000,
		Stored:  anchor.Uint128{Lo: 7, Hi: 1},
		Updated: -42,
		Members: []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()},
	}

	data, err := anchor.EncodeAccount(disc, &want)
	require.NoError(t, err)
	require.Len(t, data, 8+32+1+1+8+16+8+4+64)

	// Accounts are often allocated with slack space.
	data = append(data, make([]byte, 32)...)

	got, err := anchor.DecodeAccount[testAccount](data, disc)
	require.NoError(t, err)
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("decoded account mismatch (-want +got):\n%s", diff)
	}
}

func TestSDK_Anchor_DecodeAccount_WrongDiscriminator(t *testing.T) {
	t.Parallel()

	data, err := anchor.EncodeAccount(anchor.AccountDiscriminator("Other"), &testAccount{})
	require.NoError(t, err)

	_, err = anchor.DecodeAccount[testAccount](data, anchor.AccountDiscriminator("TestAccount"))
	require.ErrorIs(t, err, anchor.ErrInvalidDiscriminator)
}

func TestSDK_Anchor_DecodeAccount_Truncated(t *testing.T) {
	t.Parallel()

	disc := anchor.AccountDiscriminator("TestAccount")
	data, err := anchor.EncodeAccount(disc, &testAccount{})
	require.NoError(t, err)

	_, err = anchor.DecodeAccount[testAccount](data[:20], disc)
	require.ErrorContains(t, err, "failed to deserialize account")
}

func TestSDK_Anchor_EncodeInstructionData(t *testing.T) {
	t.Parallel()

	disc := anchor.InstructionDiscriminator("stake_tokens")

	data, err := anchor.EncodeInstructionData(disc, struct{ Amount uint64 }{Amount: 500})
	require.NoError(t, err)
	require.Len(t, data, 16)
	require.Equal(t, disc[:], data[:8])
	require.Equal(t, uint64(500), binary.LittleEndian.Uint64(data[8:]))

	data, err = anchor.EncodeInstructionData(disc, nil)
	require.NoError(t, err)
	require.Equal(t, disc[:], data)
}

func TestSDK_Anchor_NewInstruction(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	account := solana.NewWallet().PublicKey()
	disc := anchor.InstructionDiscriminator("set_famine")

	ix, err := anchor.NewInstruction(programID, disc, struct{ FamineTs int64 }{FamineTs: 10}, solana.AccountMetaSlice{
		solana.Meta(account).WRITE(),
	})
	require.NoError(t, err)
	require.Equal(t, programID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 16)
	require.Equal(t, account, ix.Accounts()[0].PublicKey)
	require.True(t, ix.Accounts()[0].IsWritable)
}

func TestSDK_Anchor_Uint128(t *testing.T) {
	t.Parallel()

	v, ok := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	require.True(t, ok)
	u := anchor.NewUint128(v)
	require.Equal(t, anchor.Uint128{Lo: ^uint64(0), Hi: ^uint64(0)}, u)
	require.Equal(t, v.String(), u.String())

	small := anchor.NewUint128(big.NewInt(12345))
	require.Equal(t, anchor.Uint128{Lo: 12345}, small)
	require.Equal(t, int64(12345), small.BigInt().Int64())
}

func TestSDK_Anchor_Uint128_Text(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(struct {
		Rate anchor.Uint128 `json:"rate"`
	}{Rate: anchor.Uint128{Lo: 5, Hi: 1}})
	require.NoError(t, err)
	require.JSONEq(t, `{"rate":"18446744073709551621"}`, string(out))

	var back struct {
		Rate anchor.Uint128 `json:"rate"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	require.Equal(t, anchor.Uint128{Lo: 5, Hi: 1}, back.Rate)

	var u anchor.Uint128
	require.Error(t, u.UnmarshalText([]byte("-1")))
	require.Error(t, u.UnmarshalText([]byte("340282366920938463463374607431768211456")))
	require.NoError(t, u.UnmarshalText([]byte("340282366920938463463374607431768211455")))
	require.Equal(t, anchor.Uint128{Lo: ^uint64(0), Hi: ^uint64(0)}, u)
}
