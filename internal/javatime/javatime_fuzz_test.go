package javatime

import (
	"testing"
	"time"
)

// FuzzLayout ensures pattern conversion never panics and that any layout it
// produces is self-consistent: formatting a fixed instant with the layout and
// parsing the result back must succeed.
func FuzzLayout(f *testing.F) {
	f.Add("yyyy-MM-dd'T'HH:mm:ss.SSSZ")
	f.Add("yyyy-MM-dd")
	f.Add("hh:mm a")
	f.Add("''")
	f.Add("'unclosed")
	f.Add("SSS")

	fixed := time.Date(2015, time.October, 6, 13, 42, 55, 837_000_000, time.FixedZone("", -3*60*60))

	f.Fuzz(func(t *testing.T, pattern string) {
		layout, err := Layout(pattern)
		if err != nil {
			return
		}
		formatted := fixed.Format(layout)
		if _, err := time.Parse(layout, formatted); err != nil {
			t.Errorf("layout %q from pattern %q does not round-trip %q: %v", layout, pattern, formatted, err)
		}
	})
}
