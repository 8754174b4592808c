package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	apperr "github.com/toldot/toldot/pkg/errors"
)

// RSVGConvert is the librsvg command used for raster and PDF output.
var RSVGConvert = "rsvg-convert"

// ToPNG rasterizes svg. scale multiplies the SVG's intrinsic size; values
// <= 0 mean 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// ToPDF converts svg to a single-page PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// Available reports whether RSVGConvert can be found on PATH.
func Available() bool {
	_, err := exec.LookPath(RSVGConvert)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(RSVGConvert)
	if err != nil {
		return nil, apperr.New(apperr.ErrCodeUnsupported,
			"%s output needs %s from librsvg (apt install librsvg2-bin, brew install librsvg)", format, RSVGConvert)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "%s: %s", RSVGConvert, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
