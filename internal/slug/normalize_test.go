package slug

import (
	"testing"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

func TestNormalizeEnglish(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Midnight", "midnight"},
		{"The Midnight Hour!", "the-midnight-hour"},
		{"  spaced   out  ", "spaced-out"},
		{"Café Crème", "cafe-creme"},
		{"100 Years of Verse", "100-years-of-verse"},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in, domain.LangEnglish); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeHindi(t *testing.T) {
	got := Normalize("मोहब्बत", domain.LangHindi)
	if got != "mohbbt" {
		t.Fatalf("Normalize hindi = %q, want %q", got, "mohbbt")
	}

	multi := Normalize("दिल की बात", domain.LangHindi)
	if multi != "dil-kee-baat" {
		t.Fatalf("Normalize hindi = %q, want %q", multi, "dil-kee-baat")
	}
}

func TestNormalizeUrdu(t *testing.T) {
	got := Normalize("محبت", domain.LangUrdu)
	if got != "mhbt" {
		t.Fatalf("Normalize urdu = %q, want %q", got, "mhbt")
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		if Normalize("Midnight Rain", domain.LangEnglish) != "midnight-rain" {
			t.Fatalf("normalization must be deterministic")
		}
	}
}
