package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"go.uber.org/zap"
)

// UnitHandler receives scanned units. The unit views are only valid until
// the handler returns. Offset is the stream offset of the unit's start code,
// so bytes found before a start code that is still open are delivered as a
// unit with only Prefix set and an Offset just past that prefix.
type UnitHandler func(u h264.Unit) error

type AnnexBController struct {
	c *entities.Config
	l *zap.SugaredLogger
}

func NewAnnexBController(c *entities.Config, l *zap.SugaredLogger) *AnnexBController {
	return &AnnexBController{
		c: c,
		l: l,
	}
}

// Split reads an Annex-B byte stream from r and hands every NAL unit to
// onUnit in stream order. Units whose end is not yet known are carried over
// to the next read, so a unit split across reads is delivered whole. The last
// unit of the stream is delivered with Complete set to false.
func (c *AnnexBController) Split(ctx context.Context, r io.Reader, onUnit UnitHandler) (entities.ScanStats, error) {
	stats := entities.ScanStats{}
	if c.c.ReadBufferSizeBytes <= 0 {
		return stats, fmt.Errorf("%d: %w", c.c.ReadBufferSizeBytes, entities.ErrInvalidReadBufferSize)
	}
	chunk := make([]byte, c.c.ReadBufferSizeBytes)
	var carry []byte
	// stream offset of carry[0]
	var base int64

	c.l.Debugw("annex-b split has started",
		"read_buffer_size", len(chunk),
	)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		n, readErr := r.Read(chunk)
		if n > 0 {
			stats.Reads++
			stats.Bytes += int64(n)
			carry = append(carry, chunk[:n]...)

			consumed, err := c.emit(carry, base, false, onUnit, &stats)
			if err != nil {
				return stats, err
			}
			carry = carry[:copy(carry, carry[consumed:])]
			base += int64(consumed)

			if len(carry) > c.c.MaxUnitSizeBytes {
				c.l.Errorw("nal unit is too large",
					"offset", base,
					"size", len(carry),
					"max", c.c.MaxUnitSizeBytes,
				)
				return stats, fmt.Errorf("unit at offset %d: %w", base, entities.ErrUnitTooLarge)
			}
		}

		if errors.Is(readErr, io.EOF) {
			if _, err := c.emit(carry, base, true, onUnit, &stats); err != nil {
				return stats, err
			}
			c.l.Debugw("annex-b split has finished",
				"units", stats.Units,
				"complete_units", stats.CompleteUnits,
				"bytes", stats.Bytes,
			)
			return stats, nil
		}
		if readErr != nil {
			return stats, fmt.Errorf("error while reading annex-b stream: %w", readErr)
		}
	}
}

// emit delivers the units of buf and returns how many bytes were consumed.
// Unless final is set, the trailing incomplete unit is left in buf.
func (c *AnnexBController) emit(buf []byte, base int64, final bool, onUnit UnitHandler, stats *entities.ScanStats) (int, error) {
	off := 0
	for off < len(buf) {
		u, next := h264.ReadUnitAt(buf, off)

		if !u.Complete && !final {
			if u.StartCodeLen == 0 {
				// no start code yet, the bytes may be the beginning of one
				return off, nil
			}
			if len(u.Prefix) > 0 {
				prefix := h264.Unit{Prefix: u.Prefix, Offset: u.Offset}
				if err := c.deliver(prefix, base, onUnit, stats); err != nil {
					return off, err
				}
			}
			return u.Offset, nil
		}

		if err := c.deliver(u, base, onUnit, stats); err != nil {
			return off, err
		}
		off = next
	}
	return off, nil
}

func (c *AnnexBController) deliver(u h264.Unit, base int64, onUnit UnitHandler, stats *entities.ScanStats) error {
	u.Offset += int(base)
	stats.Units++
	if u.Complete {
		stats.CompleteUnits++
	}
	return onUnit(u)
}
