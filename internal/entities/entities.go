package entities

import (
	"time"
)

type Codec string
type MediaType string

const (
	UnknownCodec Codec = "unknownCodec"
	H264         Codec = "h264"
	H265         Codec = "h265"
	AAC          Codec = "aac"
)

const (
	UnknownType MediaType = "unknownMediaType"
	VideoType   MediaType = "video"
	AudioType   MediaType = "audio"
)

type Stream struct {
	Codec Codec
	Type  MediaType
	Id    uint16
}

// UnitInfo describes one scanned NAL unit without its bytes.
type UnitInfo struct {
	Offset        int    `json:"offset"`
	Size          int    `json:"size"`
	PrefixSize    int    `json:"prefix_size"`
	StartCodeSize int    `json:"start_code_size"`
	Type          string `json:"type"`
	Complete      bool   `json:"complete"`
}

type ScanReport struct {
	Units         []UnitInfo     `json:"units"`
	TotalBytes    int64          `json:"total_bytes"`
	CompleteUnits int            `json:"complete_units"`
	TypeCounts    map[string]int `json:"type_counts"`
	// Samples counts the units forwarded to the WebRTC track.
	Samples       int            `json:"samples"`
	Captions      []Cue          `json:"captions,omitempty"`
}

type ScanStats struct {
	Units         int
	CompleteUnits int
	Bytes         int64
	Reads         int
}

type Cue struct {
	Type      string
	StartTime int64
	Text      string
}

type Config struct {
	HTTPPort       int32  `required:"true" default:"8080"`
	HTTPHost       string `required:"true" default:"0.0.0.0"`
	PproffHTTPPort int32  `required:"true" default:"6060"`

	// Annex-B input is read in chunks of this size; incomplete units are
	// carried over to the next chunk.
	ReadBufferSizeBytes int `required:"true" default:"65536"`
	// A unit that grows past this size without a terminating start code
	// aborts the scan.
	MaxUnitSizeBytes int   `required:"true" default:"16777216"`
	MaxBodySizeBytes int64 `required:"true" default:"67108864"`

	SampleDuration time.Duration `required:"true" default:"33ms"`
}
