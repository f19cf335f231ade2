package mapper

import (
	"testing"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFromUnitInfosToScanReport(t *testing.T) {
	m := NewMapper(zap.NewNop().Sugar())

	var infos []entities.UnitInfo
	for u := range h264.Units([]byte{0xFF, 0, 0, 1, 0x67, 0x42, 0, 0, 1, 0x68, 0xCE, 0, 0, 1, 0x67}) {
		infos = append(infos, m.FromUnitToEntityUnitInfo(u))
	}

	report := m.FromUnitInfosToScanReport(infos)
	assert.Equal(t, int64(15), report.TotalBytes)
	assert.Equal(t, 2, report.CompleteUnits)
	assert.Equal(t, map[string]int{"sps": 2, "pps": 1}, report.TypeCounts)
	assert.Equal(t, entities.UnitInfo{Offset: 1, Size: 5, PrefixSize: 1, StartCodeSize: 3, Type: "sps", Complete: true}, report.Units[0])
}

func TestFromUnitInfosToScanReport_Empty(t *testing.T) {
	m := NewMapper(zap.NewNop().Sugar())

	report := m.FromUnitInfosToScanReport(nil)
	assert.NotNil(t, report.Units)
	assert.Empty(t, report.Units)
	assert.Zero(t, report.TotalBytes)
}

func TestFromElementaryStreamToEntityStream(t *testing.T) {
	m := NewMapper(zap.NewNop().Sugar())

	s := m.FromElementaryStreamToEntityStream(&astits.PMTElementaryStream{
		ElementaryPID: 256,
		StreamType:    astits.StreamTypeH264Video,
	})
	assert.Equal(t, entities.Stream{Codec: entities.H264, Type: entities.VideoType, Id: 256}, s)

	s = m.FromElementaryStreamToEntityStream(&astits.PMTElementaryStream{StreamType: astits.StreamTypeAACAudio})
	assert.Equal(t, entities.AAC, s.Codec)
	assert.Equal(t, entities.AudioType, s.Type)
}
