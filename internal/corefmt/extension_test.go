package corefmt

import "testing"

func TestParseExtensionScenarios(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		wantStem  string
		wantChain Chain
	}{
		{"double extension tar.gz", "archive.tar.gz", "archive", Chain{Tar, Gzip}},
		{"tgz shorthand", "pkg.tgz", "pkg", Chain{Tar, Gzip}},
		{"unrecognized middle token left in stem", "foo.bak.tar.gz", "foo.bak", Chain{Tar, Gzip}},
		{"no extension", "README", "README", nil},
		{"leading dot only", ".tar", ".tar", nil},
		{"single token", "data.zst", "data", Chain{Zstd}},
		{"zip", "site.zip", "site", Chain{Zip}},
		{"tbz3 shorthand", "pkg.tbz3", "pkg", Chain{Tar, Bzip3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseExtension(tc.input)
			if got.Stem != tc.wantStem {
				t.Errorf("stem = %q, want %q", got.Stem, tc.wantStem)
			}
			if len(got.Chain) != len(tc.wantChain) {
				t.Fatalf("chain = %v, want %v", got.Chain, tc.wantChain)
			}
			for i := range got.Chain {
				if got.Chain[i] != tc.wantChain[i] {
					t.Errorf("chain[%d] = %v, want %v", i, got.Chain[i], tc.wantChain[i])
				}
			}
		})
	}
}

func TestParseExtensionLeftInverse(t *testing.T) {
	chains := []Chain{
		{Tar},
		{Zip},
		{Tar, Gzip},
		{Tar, Zstd},
		{Tar, Xz},
		{Gzip},
		{Brotli},
	}
	for _, c := range chains {
		name := "stem." + c.String()
		got := ParseExtension(name)
		if got.Stem != "stem" {
			t.Errorf("chain %v: stem = %q, want %q", c, got.Stem, "stem")
		}
		if len(got.Chain) != len(c) {
			t.Fatalf("chain %v: got %v", c, got.Chain)
		}
		for i := range c {
			if got.Chain[i] != c[i] {
				t.Errorf("chain %v: chain[%d] = %v, want %v", c, i, got.Chain[i], c[i])
			}
		}
	}
}
