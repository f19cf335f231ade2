package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"go.uber.org/zap"
)

type MpegTSController struct {
	c      *entities.Config
	l      *zap.SugaredLogger
	m      *mapper.Mapper
	annexB *AnnexBController
}

func NewMpegTSController(
	c *entities.Config,
	l *zap.SugaredLogger,
	m *mapper.Mapper,
	annexB *AnnexBController,
) *MpegTSController {
	return &MpegTSController{
		c:      c,
		l:      l,
		m:      m,
		annexB: annexB,
	}
}

// ExtractH264 demuxes the MPEG-TS in r and writes the payload of the first
// H.264 elementary stream to w. It returns the PID of that stream.
func (c *MpegTSController) ExtractH264(ctx context.Context, r io.Reader, w io.Writer) (uint16, error) {
	// ref https://tsduck.io/download/docs/mpegts-introduction.pdf
	mpegTSDemuxer := astits.NewDemuxer(ctx, r)

	h264PID := uint16(0)
	found := false
	for {
		mpegTSDemuxData, err := mpegTSDemuxer.NextData()
		if err != nil {
			if errors.Is(err, astits.ErrNoMorePackets) {
				break
			}
			if errors.Is(err, context.Canceled) {
				return h264PID, err
			}
			c.l.Errorw("failed to demux mpeg-ts",
				"error", err,
			)
			return h264PID, fmt.Errorf("%w: %v", entities.ErrMpegTSDemux, err)
		}

		if mpegTSDemuxData.PMT != nil && !found {
			for _, es := range mpegTSDemuxData.PMT.ElementaryStreams {
				stream := c.m.FromElementaryStreamToEntityStream(es)
				c.l.Debugw("elementary stream found",
					"pid", stream.Id,
					"codec", stream.Codec,
					"type", stream.Type,
				)
				if stream.Codec == entities.H264 && !found {
					h264PID = es.ElementaryPID
					found = true
				}
			}
		}

		if found && mpegTSDemuxData.PID == h264PID && mpegTSDemuxData.PES != nil {
			if _, err := w.Write(mpegTSDemuxData.PES.Data); err != nil {
				return h264PID, err
			}
		}
	}

	if !found {
		return 0, entities.ErrMissingH264Stream
	}
	return h264PID, nil
}

// Scan demuxes the H.264 stream carried by the MPEG-TS in r and splits it
// into NAL units.
func (c *MpegTSController) Scan(ctx context.Context, r io.Reader, onUnit UnitHandler) (entities.ScanStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pr, pw := io.Pipe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		pid, err := c.ExtractH264(ctx, r, pw)
		if err == nil {
			c.l.Debugw("mpeg-ts demuxing has finished",
				"pid", pid,
			)
		}
		pw.CloseWithError(err)
	}()

	stats, err := c.annexB.Split(ctx, pr, onUnit)
	pr.Close()
	cancel()
	<-done
	return stats, err
}
