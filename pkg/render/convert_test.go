package render

import (
	"context"
	"testing"

	apperr "github.com/toldot/toldot/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestConvertWithoutRSVG(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if Available() {
		t.Fatal("Available() = true with an empty PATH")
	}
	if _, err := ToPDF(context.Background(), []byte(tinySVG)); !apperr.Is(err, apperr.ErrCodeUnsupported) {
		t.Errorf("ToPDF err = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG(context.Background(), []byte(tinySVG), 2); !apperr.Is(err, apperr.ErrCodeUnsupported) {
		t.Errorf("ToPNG err = %v, want UNSUPPORTED", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("output does not start with a PNG signature: % x", png[:min(8, len(png))])
	}
}
