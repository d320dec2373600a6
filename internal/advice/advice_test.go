package advice

import (
	"strings"
	"testing"

	"github.com/serenby/mindwell/internal/scales"
)

func contains(pool []string, msg string) bool {
	for _, p := range pool {
		if p == msg {
			return true
		}
	}
	return false
}

func TestForCategoryDrawsFromPool(t *testing.T) {
	for _, cat := range []scales.Category{scales.CategoryLow, scales.CategoryModerate} {
		for i := 0; i < 20; i++ {
			msg := ForCategory(cat)
			if !contains(pools[cat], msg) {
				t.Fatalf("%s: %q not in its pool", cat, msg)
			}
		}
	}
}

func TestForCategoryHighAppendsNotice(t *testing.T) {
	for i := 0; i < 20; i++ {
		msg := ForCategory(scales.CategoryHigh)
		if !strings.HasSuffix(msg, ProfessionalHelpNotice) {
			t.Fatal("high advice should end with the professional-help notice")
		}
		if !IsEscalated(msg) {
			t.Fatal("high advice should register as escalated")
		}
		base := strings.TrimSuffix(msg, "\n\n"+ProfessionalHelpNotice)
		if !contains(pools[scales.CategoryHigh], base) {
			t.Fatalf("base message %q not in the high pool", base)
		}
	}
}

func TestForCategoryUnknownBucket(t *testing.T) {
	msg := ForCategory(scales.Category("unheard-of"))
	if msg != neutralDefault {
		t.Errorf("unknown bucket = %q", msg)
	}
}

func TestForLevelBuckets(t *testing.T) {
	cases := []struct {
		level int
		cat   scales.Category
	}{
		{1, scales.CategoryLow},
		{3, scales.CategoryLow},
		{4, scales.CategoryModerate},
		{6, scales.CategoryModerate},
		{7, scales.CategoryHigh},
		{10, scales.CategoryHigh},
	}
	for _, c := range cases {
		msg := ForLevel(c.level)
		escalated := IsEscalated(msg)
		if (c.cat == scales.CategoryHigh) != escalated {
			t.Errorf("level %d: escalated = %v", c.level, escalated)
		}
		if msg == "" {
			t.Errorf("level %d: empty advice", c.level)
		}
	}
}

func TestIsEscalated(t *testing.T) {
	if IsEscalated("take a walk") {
		t.Error("plain advice should not register as escalated")
	}
	if !IsEscalated(ProfessionalHelpNotice) {
		t.Error("the notice itself should register as escalated")
	}
}
