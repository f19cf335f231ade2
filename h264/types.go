package h264

// Unit is one NAL unit located by the Annex-B scanner.
//
// Prefix and Packet are views into the scanned buffer. Their capacity is
// capped to their length, so appending to one allocates instead of writing
// over the bytes of the next unit. They are only valid as long as the
// scanned buffer is not modified.
type Unit struct {
	// Prefix holds bytes found before the first start code of the scan.
	Prefix []byte
	// Packet spans from the start code through the byte before the next
	// start code, or through the end of the buffer.
	Packet []byte
	// StartCodeLen is zero when no start code was found.
	StartCodeLen int
	Type         UnitType
	// Complete is true when the next start code was found, so the unit's
	// end is known.
	Complete bool
	// Offset of Packet[0] in the scanned buffer.
	Offset int
}

// Payload returns the unit without its start code.
func (u Unit) Payload() []byte {
	if u.StartCodeLen >= len(u.Packet) {
		return nil
	}
	return u.Packet[u.StartCodeLen:]
}

// Len is the number of buffer bytes consumed by the unit.
func (u Unit) Len() int {
	return len(u.Prefix) + len(u.Packet)
}

// Rec. ITU-T H.264 (08/2021) p.43
type NAL struct {
	RefIDC   byte
	UnitType UnitType
	RBSP     []byte
	Header   []byte
	SEI
}

type SEI struct {
	PayloadType int
	PayloadSize int
	Payload     []byte
}

type UnitType byte

const (
	// Rec. ITU-T H.264 (08/2021) p.65
	Unknown                            = UnitType(0)  //	Unspecified, or not classified
	Slice                              = UnitType(1)  //	Coded slice of a non-IDR picture
	DataPartitionA                     = UnitType(2)  //	Coded slice data partition A
	DataPartitionB                     = UnitType(3)  //	Coded slice data partition B
	DataPartitionC                     = UnitType(4)  //	Coded slice data partition C
	IDR                                = UnitType(5)  //	Coded slice of an IDR picture
	SupplementalEnhancementInformation = UnitType(6)  //	Supplemental enhancement information (SEI)
	SequenceParameterSet               = UnitType(7)  //	Sequence parameter set
	PictureParameterSet                = UnitType(8)  //	Picture parameter set
	AccessUnitDelimiter                = UnitType(9)  //	Access unit delimiter
	EndOfSequence                      = UnitType(10) //	End of sequence
	EndOfStream                        = UnitType(11) //	End of stream
	FillerData                         = UnitType(12) //	Filler data
)

var unitTypeNames = [...]string{
	Unknown:                            "unknown",
	Slice:                              "slice",
	DataPartitionA:                     "data_partition_a",
	DataPartitionB:                     "data_partition_b",
	DataPartitionC:                     "data_partition_c",
	IDR:                                "idr",
	SupplementalEnhancementInformation: "sei",
	SequenceParameterSet:               "sps",
	PictureParameterSet:                "pps",
	AccessUnitDelimiter:                "aud",
	EndOfSequence:                      "end_of_sequence",
	EndOfStream:                        "end_of_stream",
	FillerData:                         "filler",
}

func (t UnitType) String() string {
	if int(t) < len(unitTypeNames) {
		return unitTypeNames[t]
	}
	return unitTypeNames[Unknown]
}

// IsVCL reports whether the unit carries coded slice data.
func (t UnitType) IsVCL() bool {
	return t >= Slice && t <= IDR
}

// TypeOf classifies a NAL header byte. Types outside 1-12 are Unknown.
func TypeOf(header byte) UnitType {
	t := UnitType(header & 0x1f)
	if t > FillerData {
		return Unknown
	}
	return t
}
