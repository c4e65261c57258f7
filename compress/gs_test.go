package compress

import (
	"reflect"
	"testing"
)

func TestGhostscriptArgs(t *testing.T) {
	args := ghostscriptArgs("/in/report.pdf", "/out/report.pdf")

	expected := []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=/screen",
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile=/out/report.pdf",
		"/in/report.pdf",
	}
	if !reflect.DeepEqual(args, expected) {
		t.Errorf("ghostscriptArgs = %v, expected %v", args, expected)
	}
}
