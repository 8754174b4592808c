package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestSimpleRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderDefs(&buf)
	if buf.Len() != 0 {
		t.Errorf("RenderDefs() wrote %d bytes, want 0", buf.Len())
	}
}

func TestSimpleRenderBar(t *testing.T) {
	colors := ColorsFor("rishonim")

	tests := []struct {
		name     string
		bar      Bar
		contains []string
		absent   []string
	}{
		{
			name: "basic bar",
			bar:  Bar{ID: "rashi", Title: "Rashi", X: 10, Y: 20, W: 120, H: 56, Colors: colors},
			contains: []string{
				`id="person-rashi"`,
				`x="10.00"`,
				`width="120.00"`,
				`fill="` + colors.Bar.Normal + `"`,
				`<title>Rashi</title>`,
			},
			absent: []string{"stroke-dasharray", "<a href"},
		},
		{
			name:     "estimated bar is dashed",
			bar:      Bar{ID: "anon", Estimated: true, W: 120, H: 56, Colors: colors},
			contains: []string{`stroke-dasharray="6 4"`, `fill="` + colors.Bar.Estimated + `"`},
		},
		{
			name:     "bar with URL",
			bar:      Bar{ID: "rambam", URL: "https://example.com/rambam", W: 120, H: 56, Colors: colors},
			contains: []string{`<a href="https://example.com/rambam"`, `</a>`},
		},
		{
			name:     "special chars in ID",
			bar:      Bar{ID: `a<b>"c"`, W: 120, H: 56, Colors: colors},
			contains: []string{`id="person-a&lt;b&gt;&#34;c&#34;"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Simple{}.RenderBar(&buf, tt.bar)
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("RenderBar() missing %q in %s", want, out)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(out, bad) {
					t.Errorf("RenderBar() unexpectedly contains %q", bad)
				}
			}
		})
	}
}

func TestSimpleRenderPeriodAndGroup(t *testing.T) {
	var buf bytes.Buffer
	p := Period{ID: "geonim", Label: "Гаоним", X: 100, Y: 0, W: 400, H: 300, Colors: ColorsFor("geonim")}
	Simple{}.RenderPeriod(&buf, p)
	Simple{}.RenderGroup(&buf, Group{ID: "g", Label: "600–700", X: 100, Y: 64, W: 200, H: 80, Colors: p.Colors})
	out := buf.String()

	for _, want := range []string{`id="period-geonim"`, "Гаоним", `class="group"`, "600–700", `x1="500.00"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSimpleRenderText(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderText(&buf, Bar{Label: "Rabbi Shlomo Yitzchaki", X: 0, Y: 0, W: 60, H: 56})
	out := buf.String()
	if !strings.Contains(out, "..</text>") {
		t.Errorf("long label should be truncated: %s", out)
	}
}
