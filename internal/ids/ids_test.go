package ids

import (
	"regexp"
	"testing"
	"time"
)

func TestClockFormat(t *testing.T) {
	t.Parallel()

	fixed := time.UnixMilli(1760000000123)
	gen := &Clock{
		Now:  func() time.Time { return fixed },
		Intn: func(n int) int { return n - 1 },
	}

	if got, want := gen.Generate(IngredientPrefix), "ING_1760000000123_999"; got != want {
		t.Fatalf("Generate = %q, want %q", got, want)
	}
}

func TestDefaultClockShape(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^RCP_\d{13}_\d{1,3}$`)
	for i := 0; i < 50; i++ {
		if id := New().Generate(RecipePrefix); !pattern.MatchString(id) {
			t.Fatalf("Generate = %q, does not match %s", id, pattern)
		}
	}

	var zero *Clock
	if id := zero.Generate(SupplierPrefix); !regexp.MustCompile(`^SUP_\d+_\d+$`).MatchString(id) {
		t.Fatalf("nil Clock Generate = %q", id)
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	var seq Sequence
	got := []string{seq.Generate("ING"), seq.Generate("ING"), seq.Generate("RCP")}
	want := []string{"ING_1", "ING_2", "RCP_1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Generate #%d = %q, want %q", i, got[i], want[i])
		}
	}
}
