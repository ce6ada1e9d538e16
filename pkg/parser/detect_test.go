package parser

import (
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

func TestSniffChromeTraceEvents(t *testing.T) {
	data := []byte(`{"traceEvents":[{"name":"x","ph":"B","ts":0,"pid":1,"tid":1}]}`)
	if got := Sniff(data); got != model.FormatChrome {
		t.Fatalf("Sniff(chrome) = %q, want %q", got, model.FormatChrome)
	}
}

func TestSniffChromeBareArray(t *testing.T) {
	data := []byte(`[{"name":"x","ph":"B","ts":0,"pid":1,"tid":1}]`)
	if got := Sniff(data); got != model.FormatChrome {
		t.Fatalf("Sniff(bare array) = %q, want %q", got, model.FormatChrome)
	}
}

func TestSniffGecko(t *testing.T) {
	data := []byte(`{"meta":{"version":1},"threads":[]}`)
	if got := Sniff(data); got != model.FormatGecko {
		t.Fatalf("Sniff(gecko) = %q, want %q", got, model.FormatGecko)
	}
}

func TestSniffSpeedscope(t *testing.T) {
	data := []byte(`{"$schema":"https://www.speedscope.app/file-format-schema.json","profiles":[]}`)
	if got := Sniff(data); got != model.FormatSpeedscope {
		t.Fatalf("Sniff(speedscope) = %q, want %q", got, model.FormatSpeedscope)
	}
}

func TestSniffV8(t *testing.T) {
	data := []byte(`{"nodes":[],"samples":[],"timeDeltas":[]}`)
	if got := Sniff(data); got != model.FormatV8 {
		t.Fatalf("Sniff(v8) = %q, want %q", got, model.FormatV8)
	}
}

func TestSniffReactDevTools(t *testing.T) {
	data := []byte(`{"commitData":[]}`)
	if got := Sniff(data); got != model.FormatReactDevTools {
		t.Fatalf("Sniff(react) = %q, want %q", got, model.FormatReactDevTools)
	}
}

func TestSniffPprofGzipMagic(t *testing.T) {
	data := []byte{0x1f, 0x8b, 0x08, 0x00}
	if got := Sniff(data); got != model.FormatPprof {
		t.Fatalf("Sniff(gzip magic) = %q, want %q", got, model.FormatPprof)
	}
}

func TestSniffPIXAndTracyMagic(t *testing.T) {
	if got := Sniff([]byte("PIXCxxxx")); got != model.FormatPIX {
		t.Fatalf("Sniff(PIX magic) = %q, want %q", got, model.FormatPIX)
	}
	if got := Sniff([]byte("TracyPxxxx")); got != model.FormatTracy {
		t.Fatalf("Sniff(Tracy magic) = %q, want %q", got, model.FormatTracy)
	}
}

func TestSniffCollapsedStacks(t *testing.T) {
	data := []byte("main;parseHTML;layout 5\nmain;paint 3\n")
	if got := Sniff(data); got != model.FormatCollapsed {
		t.Fatalf("Sniff(collapsed) = %q, want %q", got, model.FormatCollapsed)
	}
}

func TestSniffPerfScript(t *testing.T) {
	data := []byte("swapper 0/0 [000]  1234.567890: cpu-clock:\n")
	if got := Sniff(data); got != model.FormatPerf {
		t.Fatalf("Sniff(perf) = %q, want %q", got, model.FormatPerf)
	}
}

func TestSniffUnknownReturnsEmpty(t *testing.T) {
	if got := Sniff([]byte{0x00, 0x01, 0x02, 0x03}); got != "" {
		t.Fatalf("Sniff(garbage) = %q, want empty string", got)
	}
}
