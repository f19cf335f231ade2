package h264

import (
	"errors"
	"fmt"
)

var ErrEmptyNAL = errors.New("nal unit is empty")
var ErrForbiddenBit = errors.New("forbidden_zero_bit is not 0")
var ErrTruncatedSEI = errors.New("sei message is truncated")

// ParseUnit parses the header and RBSP of a scanned unit.
func ParseUnit(u Unit) (NAL, error) {
	return ParseNAL(u.Payload())
}

// ParseNAL parses a NAL unit without its start code.
func ParseNAL(data []byte) (NAL, error) {
	if len(data) == 0 {
		return NAL{}, ErrEmptyNAL
	}

	n := NAL{}
	if data[0]>>7&0x01 != 0 {
		return NAL{}, ErrForbiddenBit
	}
	n.RefIDC = (data[0] >> 5) & 0x03
	n.UnitType = TypeOf(data[0])
	nalUnitHeaderBytes := 1
	n.Header = data[:nalUnitHeaderBytes]
	n.RBSP = unescapeRBSP(data[nalUnitHeaderBytes:])

	if err := n.ParseRBSP(); err != nil {
		return NAL{}, err
	}
	return n, nil
}

func (n *NAL) ParseRBSP() error {
	switch n.UnitType {
	case SupplementalEnhancementInformation:
		if err := n.parseSEI(); err != nil {
			return fmt.Errorf("parsing sei: %w", err)
		}
	}

	return nil
}

// parseSEI reads the first sei_message of the RBSP.
// Rec. ITU-T H.264 (08/2021) 7.3.2.3.1
func (n *NAL) parseSEI() error {
	offset := 0

	payloadType, read, err := readSEIValue(n.RBSP[offset:])
	if err != nil {
		return err
	}
	offset += read

	payloadSize, read, err := readSEIValue(n.RBSP[offset:])
	if err != nil {
		return err
	}
	offset += read

	n.SEI.PayloadType = payloadType
	n.SEI.PayloadSize = payloadSize

	end := offset + payloadSize
	if end > len(n.RBSP) {
		end = len(n.RBSP)
	}
	n.SEI.Payload = n.RBSP[offset:end]
	return nil
}

// readSEIValue reads a value coded as a run of 0xff bytes plus a last byte.
func readSEIValue(b []byte) (value, read int, err error) {
	for _, v := range b {
		read++
		value += int(v)
		if v != 0xff {
			return value, read, nil
		}
	}
	return 0, 0, ErrTruncatedSEI
}

// unescapeRBSP drops the emulation prevention byte of every 00 00 03.
func unescapeRBSP(data []byte) []byte {
	rbsp := make([]byte, 0, len(data))
	zeros := 0
	for _, b := range data {
		if zeros >= 2 && b == 0x03 {
			zeros = 0
			continue
		}
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
		rbsp = append(rbsp, b)
	}
	return rbsp
}
