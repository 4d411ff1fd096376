package capture

import (
	"testing"
	"time"
)

var fixedClock Clock = func() time.Time {
	return time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC)
}

func TestResolvePlaceholders_Builtins(t *testing.T) {
	rc := &Resolved{Data: map[string]string{}}
	set := ResolvePlaceholders(rc, fixedClock, "alice")

	tests := map[string]string{
		"name":        "alice",
		"date":        "Mar 5, 2024",
		"datetime":    "Mar 5, 2024 14:30",
		"isodate":     "2024-03-05",
		"isodatetime": "2024-03-05T14:30:45+0000",
	}
	for key, want := range tests {
		if set[key] != want {
			t.Errorf("set[%q] = %q, want %q", key, set[key], want)
		}
	}
}

func TestResolvePlaceholders_DataWinsOnCollision(t *testing.T) {
	rc := &Resolved{Data: map[string]string{
		"name":    "override",
		"project": "norgcap",
	}}
	set := ResolvePlaceholders(rc, fixedClock, "alice")

	if set["name"] != "override" {
		t.Errorf("set[name] = %q, want %q", set["name"], "override")
	}
	if set["project"] != "norgcap" {
		t.Errorf("set[project] = %q, want %q", set["project"], "norgcap")
	}
}

func TestSubstitute(t *testing.T) {
	set := PlaceholderSet{"isodate": "2024-03-05", "name": "alice"}

	got := Substitute("diary/{isodate}-{name}.norg", set)
	if got != "diary/2024-03-05-alice.norg" {
		t.Errorf("Substitute = %q", got)
	}
}

func TestSubstitute_UnknownTokensVerbatim(t *testing.T) {
	set := PlaceholderSet{"name": "alice"}

	got := Substitute("* {} {unknown} {name}", set)
	if got != "* {} {unknown} alice" {
		t.Errorf("Substitute = %q", got)
	}
}

func TestSubstitute_NoRecursiveExpansion(t *testing.T) {
	// A value containing another key's token must survive unexpanded.
	set := PlaceholderSet{"a": "{b}", "b": "deep"}

	got := Substitute("{a}", set)
	if got != "{b}" {
		t.Errorf("Substitute = %q, want %q (no re-scan of output)", got, "{b}")
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	set := PlaceholderSet{"name": "alice", "isodate": "2024-03-05"}
	text := "hello {name}, today is {isodate}"

	once := Substitute(text, set)
	twice := Substitute(once, set)
	if once != twice {
		t.Errorf("not idempotent: %q then %q", once, twice)
	}
}
