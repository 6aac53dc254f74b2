package rewrite

import (
	"testing"

	"pymover/internal/modpath"
)

func TestResolveRelative(t *testing.T) {
	cases := []struct {
		name       string
		fileModule string
		level      int
		module     string
		want       string
	}{
		{"current package", "pkg.sub.consumer", 1, "", "pkg.sub"},
		{"current package with suffix", "pkg.sub.consumer", 1, "helpers", "pkg.sub.helpers"},
		{"parent package", "pkg.sub.consumer", 2, "", "pkg"},
		{"parent with dotted suffix", "pkg.sub.consumer", 2, "a.b", "pkg.a.b"},
		{"top of repository", "pkg.sub.consumer", 3, "", ""},
		{"top with suffix", "pkg.sub.consumer", 3, "other", "other"},
		{"ascent past the top", "pkg.consumer", 5, "x", "x"},
		{"top-level file", "m", 1, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveRelative(modpath.Parse(tc.fileModule), tc.level, tc.module)
			if got.Dotted() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got.Dotted())
			}
		})
	}

	if ResolveRelative(nil, 1, "x") != nil {
		t.Error("expected nil for unknown file module")
	}
}
