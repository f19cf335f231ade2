package h264

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNAL(t *testing.T) {
	n, err := ParseNAL([]byte{0x67, 0x64, 0x00, 0x34})
	require.NoError(t, err)
	assert.Equal(t, SequenceParameterSet, n.UnitType)
	assert.Equal(t, byte(3), n.RefIDC)
	assert.Equal(t, []byte{0x67}, n.Header)
	assert.Equal(t, []byte{0x64, 0x00, 0x34}, n.RBSP)
}

func TestParseNAL_Errors(t *testing.T) {
	_, err := ParseNAL(nil)
	assert.ErrorIs(t, err, ErrEmptyNAL)

	_, err = ParseNAL([]byte{0x85})
	assert.ErrorIs(t, err, ErrForbiddenBit)

	_, err = ParseNAL([]byte{0x06, 0xff})
	assert.ErrorIs(t, err, ErrTruncatedSEI)
}

func TestParseNAL_EmulationPrevention(t *testing.T) {
	n, err := ParseNAL([]byte{0x65, 0x00, 0x00, 0x03, 0x01, 0x00, 0x00, 0x03, 0x00, 0x7F})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x7F}, n.RBSP)
}

func TestParseNAL_SEI(t *testing.T) {
	n, err := ParseNAL([]byte{0x06, 0x05, 0x03, 0xAA, 0xBB, 0xCC, 0x80})
	require.NoError(t, err)
	assert.Equal(t, SupplementalEnhancementInformation, n.UnitType)
	assert.Equal(t, 5, n.PayloadType)
	assert.Equal(t, 3, n.PayloadSize)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, n.Payload)

	n, err = ParseNAL([]byte{0x06, 0xff, 0x05, 0x02, 0x11, 0x22})
	require.NoError(t, err)
	assert.Equal(t, 260, n.PayloadType)
	assert.Equal(t, 2, n.PayloadSize)
}

func TestParseUnit(t *testing.T) {
	u, _ := ReadNextUnit([]byte{0x00, 0x00, 0x00, 0x01, 0x68, 0xEE, 0x3C, 0x80})
	n, err := ParseUnit(u)
	require.NoError(t, err)
	assert.Equal(t, PictureParameterSet, n.UnitType)
	assert.Equal(t, []byte{0xEE, 0x3C, 0x80}, n.RBSP)
}
