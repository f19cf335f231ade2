package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/controllers"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"go.uber.org/zap"
)

type scanFunc func(ctx context.Context, r io.Reader, onUnit controllers.UnitHandler) (entities.ScanStats, error)

type scanHandler struct {
	c      *entities.Config
	l      *zap.SugaredLogger
	m      *mapper.Mapper
	eia608 *controllers.EIA608Controller
	webRTC *controllers.WebRTCController
	format string
	scan   scanFunc
}

func (h *scanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		h.l.Errorw("unexpected method",
			"method", r.Method,
		)
		return entities.ErrHTTPPostOnly
	}

	body := http.MaxBytesReader(w, r.Body, h.c.MaxBodySizeBytes)
	defer body.Close()

	track, err := h.webRTC.CreateTrack(entities.Stream{Codec: entities.H264, Type: entities.VideoType}, "video", "nalscan")
	if err != nil {
		h.l.Errorw("error while creating the video track",
			"error", err,
		)
		return err
	}

	captionsReader := h.eia608.NewReader()
	units := []entities.UnitInfo{}
	var captions []entities.Cue
	samples := 0

	stats, err := h.scan(r.Context(), body, func(u h264.Unit) error {
		units = append(units, h.m.FromUnitToEntityUnitInfo(u))

		written, err := h.webRTC.WriteUnit(track, u)
		if err != nil {
			return err
		}
		if written {
			samples++
		}

		text, err := captionsReader.ParseUnit(u)
		if err != nil {
			h.l.Debugw("skipping captions of malformed sei",
				"offset", u.Offset,
				"error", err,
			)
			return nil
		}
		if text != "" {
			// the stream offset of the SEI stands in for a presentation time
			captions = append(captions, h.eia608.BuildCue(int64(u.Offset), text))
		}
		return nil
	})
	if err != nil {
		h.l.Errorw("error while scanning request body",
			"format", h.format,
			"error", err,
		)
		return err
	}

	report := h.m.FromUnitInfosToScanReport(units)
	report.Samples = samples
	report.Captions = captions

	response, err := json.Marshal(report)
	if err != nil {
		h.l.Errorw("error while encoding scan report",
			"error", err,
		)
		return err
	}

	h.l.Infow("scan has finished",
		"format", h.format,
		"units", stats.Units,
		"complete_units", stats.CompleteUnits,
		"size", humanize.Bytes(uint64(stats.Bytes)),
	)

	SetSuccessJson(w)
	if _, err := w.Write(response); err != nil {
		h.l.Errorw("error responding the scan report",
			"error", err,
		)
	}
	return nil
}

// AnnexBScanHandler scans an Annex-B byte stream posted as the request body.
type AnnexBScanHandler struct {
	scanHandler
}

func NewAnnexBScanHandler(
	c *entities.Config,
	l *zap.SugaredLogger,
	m *mapper.Mapper,
	annexB *controllers.AnnexBController,
	eia608 *controllers.EIA608Controller,
	webRTC *controllers.WebRTCController,
) *AnnexBScanHandler {
	return &AnnexBScanHandler{scanHandler{
		c:      c,
		l:      l,
		m:      m,
		eia608: eia608,
		webRTC: webRTC,
		format: "annexb",
		scan:   annexB.Split,
	}}
}

// MpegTSScanHandler scans the H.264 stream of an MPEG-TS posted as the
// request body.
type MpegTSScanHandler struct {
	scanHandler
}

func NewMpegTSScanHandler(
	c *entities.Config,
	l *zap.SugaredLogger,
	m *mapper.Mapper,
	mpegTS *controllers.MpegTSController,
	eia608 *controllers.EIA608Controller,
	webRTC *controllers.WebRTCController,
) *MpegTSScanHandler {
	return &MpegTSScanHandler{scanHandler{
		c:      c,
		l:      l,
		m:      m,
		eia608: eia608,
		webRTC: webRTC,
		format: "mpegts",
		scan:   mpegTS.Scan,
	}}
}
