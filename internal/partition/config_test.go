package partition

import (
	"bytes"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"pdf-splitter/internal/ranger"
)

func TestIndexWidth(t *testing.T) {
	tests := []struct {
		effective int
		want      int
	}{
		{0, 4},
		{1, 4},
		{25, 4},
		{10000, 4}, // последний индекс 9999
		{10001, 5},
		{123456, 6},
	}

	for _, tt := range tests {
		if got := IndexWidth(tt.effective); got != tt.want {
			t.Errorf("IndexWidth(%d) = %d, want %d", tt.effective, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		source string
		outDir string
		r      ranger.Range
		width  int
		want   string
	}{
		{
			name:   "next to source",
			source: "/data/report.pdf",
			r:      ranger.Range{From: 0, To: 9},
			width:  4,
			want:   "/data/report_0000_0009.pdf",
		},
		{
			name:   "custom out dir",
			source: "/data/report.pdf",
			outDir: "/tmp/parts",
			r:      ranger.Range{From: 20, To: 24},
			width:  4,
			want:   "/tmp/parts/report_0020_0024.pdf",
		},
		{
			name:   "relative source",
			source: "report.pdf",
			r:      ranger.Range{From: 0, To: 4},
			width:  4,
			want:   "report_0000_0004.pdf",
		},
		{
			name:   "keeps extension case",
			source: "/data/SCAN.PDF",
			r:      ranger.Range{From: 0, To: 0},
			width:  4,
			want:   "/data/SCAN_0000_0000.PDF",
		},
		{
			name:   "no extension",
			source: "/data/scan",
			r:      ranger.Range{From: 0, To: 0},
			width:  4,
			want:   "/data/scan_0000_0000.pdf",
		},
		{
			name:   "dotted base name",
			source: "/data/v1.2.report.pdf",
			r:      ranger.Range{From: 0, To: 9},
			width:  4,
			want:   "/data/v1.2.report_0000_0009.pdf",
		},
		{
			name:   "hidden file",
			source: "/data/.scan",
			r:      ranger.Range{From: 0, To: 9},
			width:  4,
			want:   "/data/.scan_0000_0009.pdf",
		},
		{
			name:   "wide indices",
			source: "/data/big.pdf",
			r:      ranger.Range{From: 10000, To: 10009},
			width:  5,
			want:   "/data/big_10000_10009.pdf",
		},
		{
			name:   "wide field pads small indices",
			source: "/data/big.pdf",
			r:      ranger.Range{From: 0, To: 9},
			width:  5,
			want:   "/data/big_00000_00009.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath(tt.source, tt.outDir, tt.r, tt.width)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := LogObserver{Logger: log.New(&buf, "", 0)}

	obs.SourceOpened("a.pdf", 25, 25)
	obs.SourceOpened("b.pdf", 25, 5)
	obs.PartWritten(Part{Range: ranger.Range{From: 0, To: 9}, Path: "a_0000_0009.pdf"})

	out := buf.String()
	for _, want := range []string{
		"[INFO] a.pdf: 25 pages\n",
		"[INFO] b.pdf: 25 pages, limited to 5\n",
		"[INFO] part [0..9] written: a_0000_0009.pdf\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestMultiObserver(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	m := MultiObserver{a, b}

	m.SourceOpened("x.pdf", 3, 3)
	m.PartWritten(Part{Range: ranger.Range{From: 0, To: 2}})

	for i, o := range []*recordingObserver{a, b} {
		if o.opened != 1 || len(o.parts) != 1 {
			t.Errorf("observer %d: opened=%d parts=%d", i, o.opened, len(o.parts))
		}
	}
}

func TestParseOutputPath(t *testing.T) {
	tests := []struct {
		path    string
		want    ranger.Range
		wantErr bool
	}{
		{path: "/data/report_0000_0009.pdf", want: ranger.Range{From: 0, To: 9}},
		{path: "report_2024_0020_0024.pdf", want: ranger.Range{From: 20, To: 24}},
		{path: "big_10000_10009.pdf", want: ranger.Range{From: 10000, To: 10009}},
		{path: "report.pdf", wantErr: true},
		{path: "report_1_2.pdf", wantErr: true},
		{path: "report_0009_0000.pdf", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOutputPath(tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseOutputPath(%q) expected error, got %v", tt.path, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOutputPath(%q) unexpected error: %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	// имя, построенное OutputPath, читается обратно
	r := ranger.Range{From: 130, To: 139}
	if got, err := ParseOutputPath(OutputPath("/x/y.pdf", "", r, 4)); err != nil || got != r {
		t.Errorf("round trip = %v, %v", got, err)
	}
}
