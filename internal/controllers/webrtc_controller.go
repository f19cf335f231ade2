package controllers

import (
	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"github.com/pion/webrtc/v3"
	"github.com/pion/webrtc/v3/pkg/media"
	"go.uber.org/zap"
)

type WebRTCController struct {
	c *entities.Config
	l *zap.SugaredLogger
	m *mapper.Mapper
}

func NewWebRTCController(
	c *entities.Config,
	l *zap.SugaredLogger,
	m *mapper.Mapper,
) *WebRTCController {
	return &WebRTCController{
		c: c,
		l: l,
		m: m,
	}
}

func (c *WebRTCController) CreateTrack(track entities.Stream, id string, streamID string) (*webrtc.TrackLocalStaticSample, error) {
	codecCapability := c.m.FromTrackToRTPCodecCapability(track)
	return webrtc.NewTrackLocalStaticSample(codecCapability, id, streamID)
}

// WriteUnit sends a complete, classified unit to the track. Other units are
// dropped and reported as not written.
func (c *WebRTCController) WriteUnit(track *webrtc.TrackLocalStaticSample, u h264.Unit) (bool, error) {
	if !u.Complete || u.Type == h264.Unknown {
		c.l.Debugw("dropping unit",
			"offset", u.Offset,
			"type", u.Type.String(),
			"complete", u.Complete,
		)
		return false, nil
	}

	duration := c.c.SampleDuration
	if !u.Type.IsVCL() {
		duration = 0
	}
	if err := track.WriteSample(media.Sample{Data: u.Packet, Duration: duration}); err != nil {
		c.l.Errorw("failed to write sample",
			"error", err,
		)
		return false, err
	}
	return true, nil
}
