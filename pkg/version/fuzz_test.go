package version

import (
	"testing"
)

// FuzzParseFormat checks ParseFormat never panics and round-trips.
func FuzzParseFormat(f *testing.F) {
	f.Add("1")
	f.Add("v1")
	f.Add("1.0")
	f.Add("v1.2")
	f.Add("0")
	f.Add("999.999")
	f.Add("")
	f.Add(".")
	f.Add("1.")
	f.Add(".1")
	f.Add("v")
	f.Add("-1")
	f.Add("1.-2")
	f.Add("a.b")
	f.Add("1.2.3")
	f.Add("   1.0")

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseFormat(input)
		if err != nil {
			return
		}
		if v.Major < 0 || v.Minor < 0 {
			t.Errorf("ParseFormat(%q) returned negative component: %+v", input, v)
		}

		v2, err := ParseFormat(v.String())
		if err != nil {
			t.Errorf("re-parsing %q (from %q) failed: %v", v.String(), input, err)
		} else if v.Compare(v2) != 0 {
			t.Errorf("round-trip mismatch for %q: %+v != %+v", input, v, v2)
		}
	})
}
