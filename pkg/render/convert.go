package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/matzehuels/trunnel/pkg/errors"
)

// Format is a raster or document format reachable from SVG.
type Format string

// Supported conversion targets.
const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// rsvgBinary is the converter executable. Tests swap it for a stub.
var rsvgBinary = "rsvg-convert"

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return Convert(ctx, svg, FormatPDF, 1)
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given zoom.
// A zoom of 2.0 produces a 2x resolution image.
func ToPNG(ctx context.Context, svg []byte, zoom float64) ([]byte, error) {
	return Convert(ctx, svg, FormatPNG, zoom)
}

// Convert shells out to rsvg-convert. The zoom is ignored for PDF. A missing
// converter yields an [errors.ErrCodeUnsupported] error.
func Convert(ctx context.Context, svg []byte, format Format, zoom float64) ([]byte, error) {
	if format != FormatPNG && format != FormatPDF {
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot convert SVG to %q", format)
	}
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := ConvertArgs(format, zoom)
	cmd := exec.CommandContext(ctx, rsvgBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}

// ConvertArgs returns the rsvg-convert arguments for a conversion. It is also
// part of the cache key, so identical requests share an entry.
func ConvertArgs(format Format, zoom float64) []string {
	args := []string{"-f", string(format)}
	if format == FormatPNG {
		if zoom <= 0 {
			zoom = 1
		}
		args = append(args, "-z", strconv.FormatFloat(zoom, 'f', 2, 64))
	}
	return args
}
