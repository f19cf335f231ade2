package controllers_test

import (
	"testing"

	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/controllers"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/web"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type deps struct {
	c      *entities.Config
	annexB *controllers.AnnexBController
	mpegTS *controllers.MpegTSController
	eia608 *controllers.EIA608Controller
	webRTC *controllers.WebRTCController
}

func setupControllers(t *testing.T) *deps {
	d := &deps{}
	fxtest.New(t,
		web.Dependencies(),
		fx.Populate(&d.c, &d.annexB, &d.mpegTS, &d.eia608, &d.webRTC),
	)
	return d
}

// scannedUnit is a copy of an h264.Unit that outlives the scan callback.
type scannedUnit struct {
	prefix   []byte
	packet   []byte
	typ      h264.UnitType
	complete bool
	offset   int
}

func collect(units *[]scannedUnit) controllers.UnitHandler {
	return func(u h264.Unit) error {
		*units = append(*units, scannedUnit{
			prefix:   append([]byte(nil), u.Prefix...),
			packet:   append([]byte(nil), u.Packet...),
			typ:      u.Type,
			complete: u.Complete,
			offset:   u.Offset,
		})
		return nil
	}
}

func withPackets(units []scannedUnit) []scannedUnit {
	var result []scannedUnit
	for _, u := range units {
		if len(u.packet) > 0 {
			result = append(result, u)
		}
	}
	return result
}

var (
	sps = []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0xC0, 0x1E, 0xD9, 0x40, 0xA0, 0x2F, 0xF9, 0x70, 0x11}
	pps = []byte{0x00, 0x00, 0x00, 0x01, 0x68, 0xCE, 0x3C, 0x80}
	sei = []byte{0x00, 0x00, 0x01, 0x06, 0x05, 0x02, 0xAB, 0xCD, 0x80}
	idr = []byte{0x00, 0x00, 0x01, 0x65, 0x88, 0x84, 0x21, 0xA0, 0xFF, 0x12}
	p1  = []byte{0x00, 0x00, 0x00, 0x01, 0x41, 0x9A, 0x24, 0x6C, 0x41, 0xFF}
	p2  = []byte{0x00, 0x00, 0x00, 0x01, 0x41, 0x9A, 0x46, 0x3C, 0x10}
)

// itu_t_t35 SEI messages carrying ATSC A/53 cc_data for a pop-on "HI":
// resume caption loading, the characters, then end of caption.
var (
	captionSEI = []byte{
		0x00, 0x00, 0x01, 0x06, 0x04, 0x14,
		0xB5, 0x00, 0x31, 'G', 'A', '9', '4', 0x03, 0x43, 0xFF,
		0xFC, 0x94, 0x20, 0xFC, 0xC8, 0x49, 0xFC, 0x94, 0x2F,
		0xFF, 0x80,
	}
	captionLoadSEI = []byte{
		0x00, 0x00, 0x01, 0x06, 0x04, 0x11,
		0xB5, 0x00, 0x31, 'G', 'A', '9', '4', 0x03, 0x42, 0xFF,
		0xFC, 0x94, 0x20, 0xFC, 0xC8, 0x49,
		0xFF, 0x80,
	}
	captionEndSEI = []byte{
		0x00, 0x00, 0x01, 0x06, 0x04, 0x0E,
		0xB5, 0x00, 0x31, 'G', 'A', '9', '4', 0x03, 0x41, 0xFF,
		0xFC, 0x94, 0x2F,
		0xFF, 0x80,
	}
)

func join(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}
