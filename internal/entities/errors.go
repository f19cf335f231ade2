package entities

import (
	"errors"
	"fmt"
)

var ErrHTTPPostOnly = errors.New("you must use http POST verb")

var ErrMissingInput = errors.New("input must not be empty")
var ErrUnsupportedFormat = errors.New("unsupported input format")

var ErrUnitTooLarge = errors.New("nal unit exceeds the maximum unit size")
var ErrInvalidReadBufferSize = errors.New("read buffer size must be greater than zero")
var ErrMissingH264Stream = errors.New("there is no h264 stream")

// MPEG-TS
var ErrMpegTS = errors.New("mpeg-ts error")
var ErrMpegTSDemux = fmt.Errorf("%w failed to demux", ErrMpegTS)
