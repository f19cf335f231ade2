package controllers

import (
	"encoding/json"

	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/entities"
	gocaption "github.com/szatmary/gocaption"
	"go.uber.org/zap"
)

// SEI payloadType carrying itu_t_t35 registered user data
const seiUserDataRegisteredITUTT35 = 4

type EIA608Controller struct {
	l *zap.SugaredLogger
}

func NewEIA608Controller(l *zap.SugaredLogger) *EIA608Controller {
	return &EIA608Controller{l: l}
}

// NewReader returns a caption reader for a single stream.
func (c *EIA608Controller) NewReader() *EIA608Reader {
	return &EIA608Reader{l: c.l}
}

func (c *EIA608Controller) BuildCue(pts int64, captions string) entities.Cue {
	return entities.Cue{
		StartTime: pts,
		Text:      captions,
		Type:      "captions",
	}
}

func (c *EIA608Controller) BuildCaptionsMessage(pts int64, captions string) (string, error) {
	msg, err := json.Marshal(c.BuildCue(pts, captions))
	if err != nil {
		return "", err
	}
	return string(msg), nil
}

type EIA608Reader struct {
	l     *zap.SugaredLogger
	frame gocaption.EIA608Frame
}

// Parse returns the first caption completed by units, or "".
func (r *EIA608Reader) Parse(units []h264.Unit) (string, error) {
	for _, u := range units {
		captions, err := r.ParseUnit(u)
		if err != nil {
			return "", err
		}
		if captions != "" {
			return captions, nil
		}
	}
	return "", nil
}

// ParseUnit feeds the caption data of an SEI unit into the reader and returns
// the caption text once a frame is complete.
func (r *EIA608Reader) ParseUnit(u h264.Unit) (string, error) {
	if u.Type != h264.SupplementalEnhancementInformation {
		return "", nil
	}

	nal, err := h264.ParseUnit(u)
	if err != nil {
		return "", err
	}
	// ANSI/SCTE 128-1 2020
	// Note that SEI payload is a SEI payloadType of 4 which contains the itu_t_t35_payload_byte for the terminal provider
	if nal.SEI.PayloadType != seiUserDataRegisteredITUTT35 {
		return "", nil
	}

	// ANSI/SCTE 128-1 2020
	// Caption, AFD and bar data shall be carried in the SEI raw byte sequence payload (RBSP)
	// syntax of the video Elementary Stream.
	cea708, err := gocaption.CEA708ToCCData(nal.SEI.Payload)
	if err != nil {
		return "", err
	}
	for _, c := range cea708 {
		ready, err := r.frame.Decode(c)
		if err != nil {
			r.l.Errorw("failed to decode eia608 data",
				"error", err,
			)
			return "", err
		}
		if ready {
			return r.frame.String(), nil
		}
	}
	return "", nil
}
