package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gckit/go-csgo/csgo/sharecode"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := out
	buf := &bytes.Buffer{}
	out = buf
	t.Cleanup(func() { out = prev })
	return buf
}

func TestDecodeCmd(t *testing.T) {
	buf := captureOutput(t)

	code := sharecode.Encode(sharecode.ShareCode{
		MatchId:   3230642215713767580,
		OutcomeId: 3230647599900459625,
		Token:     40732,
	})
	require.NoError(t, runDecode(decodeCmd, []string{code}))

	assert.Contains(t, buf.String(), "match id:   3230642215713767580")
	assert.Contains(t, buf.String(), "outcome id: 3230647599900459625")
	assert.Contains(t, buf.String(), "token:      40732")
}

func TestDecodeCmdRejectsGarbage(t *testing.T) {
	err := runDecode(decodeCmd, []string{"CSGO-nope"})
	require.ErrorIs(t, err, sharecode.ErrInvalidShareCode)
}

func TestEncodeCmd(t *testing.T) {
	buf := captureOutput(t)

	args := []string{"3230642215713767580", "3230647599900459625", "40732"}
	require.NoError(t, runEncode(encodeCmd, args))

	decoded, err := sharecode.Decode(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, uint64(3230642215713767580), decoded.MatchId)
	assert.Equal(t, uint64(3230647599900459625), decoded.OutcomeId)
	assert.Equal(t, uint32(40732), decoded.Token)
}

func TestEncodeCmdRejectsBadNumbers(t *testing.T) {
	err := runEncode(encodeCmd, []string{"abc", "1", "2"})
	require.ErrorContains(t, err, "invalid match id")

	err = runEncode(encodeCmd, []string{"1", "2", "999999"})
	require.ErrorContains(t, err, "invalid token")
}
