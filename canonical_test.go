package wikigraph

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in  string
		exp string
	}{
		{"apple", "Apple"},
		{"Apple", "Apple"},
		{"apple pie", "Apple pie"},
		{"aPPLE", "APPLE"},
		{"1984", "1984"},
		{" space", " space"},
		{"ärger", "Ärger"},
		{"élan vital", "Élan vital"},
		{"ünïcode", "Ünïcode"},
		{"ß-test", "SS-test"},
		{"ı", "I"},
		{"ωmega", "Ωmega"},
		{"\xffabc", "\xffabc"},
	}

	c := NewCanonicalizer()
	for _, test := range tests {
		got, ok := c.Canonicalize(test.in)
		if !ok {
			t.Errorf("Expected a canonical form of %q", test.in)
		}
		if got != test.exp {
			t.Errorf("Expected %q for %q, got %q", test.exp, test.in, got)
		}
	}
}

func TestCanonicalizeEmpty(t *testing.T) {
	if got, ok := NewCanonicalizer().Canonicalize(""); ok {
		t.Fatalf("Expected no canonical form of the empty title, got %q", got)
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	c := NewCanonicalizer()
	for _, in := range []string{"apple", "ärger", "ß", "Zrínyi Miklós", "ǆungla"} {
		once, _ := c.Canonicalize(in)
		twice, _ := c.Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalizing %q again changed %q to %q", in, once, twice)
		}
	}
}
