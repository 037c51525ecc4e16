package sharecode

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroCode(t *testing.T) {
	code := Encode(ShareCode{})
	assert.Equal(t, "CSGO-AAAAA-AAAAA-AAAAA-AAAAA-AAAAA", code)

	sc, err := Decode(code)
	require.NoError(t, err)
	assert.Equal(t, ShareCode{}, sc)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		want := ShareCode{
			MatchId:   r.Uint64(),
			OutcomeId: r.Uint64(),
			Token:     uint32(r.Intn(0x10000)),
		}
		code := Encode(want)
		got, err := Decode(code)
		require.NoError(t, err, "code %s", code)
		assert.Equal(t, want, got, "code %s", code)
	}
}

func TestTokenMasked(t *testing.T) {
	code := Encode(ShareCode{MatchId: 1, OutcomeId: 2, Token: 0x12345})
	sc, err := Decode(code)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2345), sc.Token)
}

func TestDecodeMatchesBigIntReference(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		code := Encode(ShareCode{
			MatchId:   r.Uint64(),
			OutcomeId: r.Uint64(),
			Token:     uint32(r.Intn(0x10000)),
		})
		want := bigIntDecode(code)
		got, err := Decode(code)
		require.NoError(t, err)
		assert.Equal(t, want, got, "code %s", code)
	}
}

func TestString(t *testing.T) {
	sc := ShareCode{MatchId: 3451225354, OutcomeId: 3451225355, Token: 51931}
	assert.Equal(t, Encode(sc), sc.String())
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"missing prefix", "AAAAA-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"lowercase prefix", "csgo-AAAAA-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"too few groups", "CSGO-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"too many groups", "CSGO-AAAAA-AAAAA-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"short group", "CSGO-AAAA-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"missing dash", "CSGOAAAAA-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"letter I", "CSGO-AAAIA-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"letter l", "CSGO-AAAlA-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"digit 0", "CSGO-AAA0A-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"digit 1", "CSGO-AAA1A-AAAAA-AAAAA-AAAAA-AAAAA"},
		{"trailing junk", "CSGO-AAAAA-AAAAA-AAAAA-AAAAA-AAAAA "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code)
			assert.ErrorIs(t, err, ErrInvalidShareCode)
		})
	}
}

// bigIntDecode mirrors the share code math with big.Int arithmetic and
// serves as an independent reference for Decode.
func bigIntDecode(code string) ShareCode {
	compact := strings.ReplaceAll(strings.TrimPrefix(code, "CSGO-"), "-", "")

	base := big.NewInt(57)
	a := new(big.Int)
	for i := len(compact) - 1; i >= 0; i-- {
		idx := strings.IndexByte(alphabet, compact[i])
		a.Mul(a, base)
		a.Add(a, big.NewInt(int64(idx)))
	}

	byteMask := big.NewInt(0xFF)
	swapped := new(big.Int)
	for n := 0; n < 144; n += 8 {
		b := new(big.Int).Rsh(a, uint(n))
		b.And(b, byteMask)
		swapped.Lsh(swapped, 8)
		swapped.Add(swapped, b)
	}

	mask64 := new(big.Int).SetUint64(^uint64(0))
	matchId := new(big.Int).And(swapped, mask64)
	outcomeId := new(big.Int).Rsh(swapped, 64)
	outcomeId.And(outcomeId, mask64)
	token := new(big.Int).Rsh(swapped, 128)
	token.And(token, big.NewInt(0xFFFF))

	return ShareCode{
		MatchId:   matchId.Uint64(),
		OutcomeId: outcomeId.Uint64(),
		Token:     uint32(token.Uint64()),
	}
}
