package mapper

import (
	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/pion/webrtc/v3"
	"go.uber.org/zap"
)

type Mapper struct {
	l *zap.SugaredLogger
}

func NewMapper(l *zap.SugaredLogger) *Mapper {
	return &Mapper{l: l}
}

func (m *Mapper) FromTrackToRTPCodecCapability(track entities.Stream) webrtc.RTPCodecCapability {
	response := webrtc.RTPCodecCapability{}

	if track.Codec == entities.H264 {
		response.MimeType = webrtc.MimeTypeH264
	} else {
		m.l.Infow("no rtp codec capability for stream",
			"codec", track.Codec,
		)
	}

	return response
}

func (m *Mapper) FromMpegTsStreamTypeToCodec(st astits.StreamType) entities.Codec {
	if st == astits.StreamTypeH264Video {
		return entities.H264
	}
	if st == astits.StreamTypeH265Video {
		return entities.H265
	}
	if st == astits.StreamTypeAACAudio {
		return entities.AAC
	}
	return entities.UnknownCodec
}

func (m *Mapper) FromMpegTsStreamTypeToType(st astits.StreamType) entities.MediaType {
	if st.IsVideo() {
		return entities.VideoType
	}
	if st.IsAudio() {
		return entities.AudioType
	}
	return entities.UnknownType
}

func (m *Mapper) FromElementaryStreamToEntityStream(es *astits.PMTElementaryStream) entities.Stream {
	return entities.Stream{
		Codec: m.FromMpegTsStreamTypeToCodec(es.StreamType),
		Type:  m.FromMpegTsStreamTypeToType(es.StreamType),
		Id:    es.ElementaryPID,
	}
}

func (m *Mapper) FromUnitToEntityUnitInfo(u h264.Unit) entities.UnitInfo {
	return entities.UnitInfo{
		Offset:        u.Offset,
		Size:          len(u.Packet),
		PrefixSize:    len(u.Prefix),
		StartCodeSize: u.StartCodeLen,
		Type:          u.Type.String(),
		Complete:      u.Complete,
	}
}

func (m *Mapper) FromUnitInfosToScanReport(units []entities.UnitInfo) *entities.ScanReport {
	report := &entities.ScanReport{
		Units:      units,
		TypeCounts: map[string]int{},
	}
	if report.Units == nil {
		report.Units = []entities.UnitInfo{}
	}

	for _, u := range units {
		report.TotalBytes += int64(u.PrefixSize + u.Size)
		report.TypeCounts[u.Type]++
		if u.Complete {
			report.CompleteUnits++
		}
	}
	return report
}
