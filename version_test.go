package wysiwyg

import "testing"

func TestVersion_Parses(t *testing.T) {
	if _, err := ParseSemver(Version()); err != nil {
		t.Fatalf("embedded version: %v", err)
	}
	if got, want := VersionTag(), "v"+Version(); got != want {
		t.Fatalf("version tag: got %q, want %q", got, want)
	}
}

func TestParseSemver(t *testing.T) {
	cases := []struct {
		version string
		want    Semver
		ok      bool
	}{
		{version: "0.1.0", want: Semver{Minor: 1}, ok: true},
		{version: "1.2.3-alpha.1", want: Semver{Major: 1, Minor: 2, Patch: 3, Pre: "alpha.1"}, ok: true},
		{version: "2.0.0+build.7", want: Semver{Major: 2, Build: "build.7"}, ok: true},
		{version: "v1.2.3"},
		{version: "1.2"},
		{version: "01.2.3"},
	}

	for _, tc := range cases {
		got, err := ParseSemver(tc.version)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseSemver(%q): err=%v, want ok=%v", tc.version, err, tc.ok)
		}
		if got != tc.want {
			t.Fatalf("ParseSemver(%q): got %+v, want %+v", tc.version, got, tc.want)
		}
	}
}

func TestSemver_Less(t *testing.T) {
	order := []string{"0.9.9", "1.0.0-alpha", "1.0.0-beta", "1.0.0", "1.0.1", "1.1.0"}
	for i := 1; i < len(order); i++ {
		a, _ := ParseSemver(order[i-1])
		b, _ := ParseSemver(order[i])
		if !a.Less(b) || b.Less(a) {
			t.Fatalf("%s should sort before %s", order[i-1], order[i])
		}
	}
}
