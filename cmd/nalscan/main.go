package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/asticode/go-astikit"
	"github.com/dustin/go-humanize"
	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/controllers"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type options struct {
	input   string
	format  string
	output  string
	verbose bool
}

func main() {
	opts := options{}
	pflag.StringVarP(&opts.input, "input", "i", "", "path to the Annex-B or MPEG-TS file to scan")
	pflag.StringVarP(&opts.format, "format", "f", "annexb", "input format: annexb or mpegts")
	pflag.StringVarP(&opts.output, "output", "o", "", "write every complete unit to this Annex-B file")
	pflag.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pflag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, "nalscan:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func run(ctx context.Context, stdout io.Writer, opts options) error {
	if opts.input == "" {
		return entities.ErrMissingInput
	}

	var c entities.Config
	if err := envconfig.Process("nalscan", &c); err != nil {
		return err
	}

	l, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer l.Sync()

	closer := astikit.NewCloser()
	defer closer.Close()

	m := mapper.NewMapper(l)
	annexB := controllers.NewAnnexBController(&c, l)
	eia608 := controllers.NewEIA608Controller(l)
	captionsReader := eia608.NewReader()

	var scan func(ctx context.Context, r io.Reader, onUnit controllers.UnitHandler) (entities.ScanStats, error)
	switch opts.format {
	case "annexb":
		scan = annexB.Split
	case "mpegts":
		scan = controllers.NewMpegTSController(&c, l, m, annexB).Scan
	default:
		return fmt.Errorf("%s: %w", opts.format, entities.ErrUnsupportedFormat)
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return err
	}
	closer.Add(func() { in.Close() })

	var out *bufio.Writer
	var outFile *os.File
	if opts.output != "" {
		if outFile, err = os.Create(opts.output); err != nil {
			return err
		}
		closer.Add(func() { outFile.Close() })
		out = bufio.NewWriter(outFile)
	}

	written := 0
	stats, err := scan(ctx, in, func(u h264.Unit) error {
		info := m.FromUnitToEntityUnitInfo(u)
		fmt.Fprintf(stdout, "%10d %8d %-18s %t\n", info.Offset, info.Size, info.Type, info.Complete)

		if text, err := captionsReader.ParseUnit(u); err != nil {
			l.Debugw("skipping captions of malformed sei",
				"offset", u.Offset,
				"error", err,
			)
		} else if text != "" {
			msg, err := eia608.BuildCaptionsMessage(int64(u.Offset), text)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%10d captions %s\n", info.Offset, msg)
		}

		if out == nil || !u.Complete || len(u.Packet) == 0 {
			return nil
		}
		if _, err := out.Write(u.Packet); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		l.Errorw("scan has failed",
			"input", opts.input,
			"error", err,
		)
		return err
	}

	if out != nil {
		if err := out.Flush(); err != nil {
			return err
		}
		if err := outFile.Sync(); err != nil {
			return err
		}
		l.Infow("complete units written",
			"output", opts.output,
			"units", written,
		)
	}

	fmt.Fprintf(stdout, "%d units, %d complete, %s read\n", stats.Units, stats.CompleteUnits, humanize.Bytes(uint64(stats.Bytes)))
	return nil
}
