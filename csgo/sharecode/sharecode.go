// Package sharecode encodes and decodes CS:GO match share codes.
//
// A share code like CSGO-Ab1cD-xYz23-... packs a match id, an outcome id and
// a 16 bit token into 25 base 57 digits. The GC accepts these three ids as a
// full match info request.
package sharecode

import (
	"encoding/binary"
	"errors"
	"regexp"
	"strings"
)

// alphabet is the base 57 digit set used by share codes. Characters easily
// confused with digits are left out.
const alphabet = "ABCDEFGHJKLMNOPQRSTUVWXYZabcdefhijkmnopqrstuvwxyz23456789"

var codePattern = regexp.MustCompile(`^CSGO(-[` + alphabet + `]{5}){5}$`)

// ErrInvalidShareCode is returned for strings that are not canonical share
// codes.
var ErrInvalidShareCode = errors.New("sharecode: invalid share code")

// ShareCode holds the three ids packed into a match share code. Token only
// uses its low 16 bits.
type ShareCode struct {
	MatchId   uint64
	OutcomeId uint64
	Token     uint32
}

// String returns the canonical share code form.
func (sc ShareCode) String() string {
	return Encode(sc)
}

// Decode parses a share code in its canonical CSGO-xxxxx-... form.
func Decode(code string) (ShareCode, error) {
	if !codePattern.MatchString(code) {
		return ShareCode{}, ErrInvalidShareCode
	}
	compact := strings.ReplaceAll(strings.TrimPrefix(code, "CSGO-"), "-", "")

	// Accumulate the 25 digits into a 144 bit number, least significant
	// digit first. Bits beyond 144 are dropped.
	var num [18]byte
	for i := len(compact) - 1; i >= 0; i-- {
		carry := uint32(strings.IndexByte(alphabet, compact[i]))
		for j := 17; j >= 0; j-- {
			cur := uint32(num[j])*57 + carry
			num[j] = byte(cur)
			carry = cur >> 8
		}
	}

	// The ids sit in the byte swapped form of the accumulated number.
	var swapped [18]byte
	for i := range num {
		swapped[i] = num[17-i]
	}
	return ShareCode{
		MatchId:   binary.BigEndian.Uint64(swapped[10:]),
		OutcomeId: binary.BigEndian.Uint64(swapped[2:10]),
		Token:     uint32(swapped[0])<<8 | uint32(swapped[1]),
	}, nil
}

// Encode returns the share code for the given ids. Token bits above the low
// 16 are ignored.
func Encode(sc ShareCode) string {
	var swapped [18]byte
	swapped[0] = byte(sc.Token >> 8)
	swapped[1] = byte(sc.Token)
	binary.BigEndian.PutUint64(swapped[2:10], sc.OutcomeId)
	binary.BigEndian.PutUint64(swapped[10:], sc.MatchId)

	var num [18]byte
	for i := range swapped {
		num[i] = swapped[17-i]
	}

	digits := make([]byte, 0, 25)
	for k := 0; k < 25; k++ {
		rem := uint32(0)
		for j := 0; j < 18; j++ {
			cur := rem<<8 | uint32(num[j])
			num[j] = byte(cur / 57)
			rem = cur % 57
		}
		digits = append(digits, alphabet[rem])
	}

	var b strings.Builder
	b.Grow(30)
	b.WriteString("CSGO")
	for i := 0; i < len(digits); i += 5 {
		b.WriteByte('-')
		b.Write(digits[i : i+5])
	}
	return b.String()
}
