package episode

import (
	"testing"
	"time"
)

var filterNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func TestFilterAiredDates(t *testing.T) {
	cases := []struct {
		name    string
		airDate string
		want    bool
	}{
		{"past", "2024-03-01", true},
		{"today counts as aired", "2024-03-15", true},
		{"future", "2024-03-16", false},
		{"empty", "", false},
		{"garbage", "sometime soon", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eps := []Episode{{Season: intPtr(1), Number: 1, AirDate: tc.airDate}}
			got := FilterAired(eps, SpecialsSmart, filterNow)
			if (len(got) == 1) != tc.want {
				t.Fatalf("airdate %q: included=%v, want %v", tc.airDate, len(got) == 1, tc.want)
			}
		})
	}
}

func TestFilterAiredSpecialsPolicy(t *testing.T) {
	special := func(epType string) Episode {
		return Episode{Season: intPtr(0), Number: 1, AirDate: "2024-01-01", Type: epType}
	}

	cases := []struct {
		name    string
		policy  SpecialsPolicy
		episode Episode
		want    bool
	}{
		{"none rejects specials", SpecialsNone, special(TypeSignificantSpecial), false},
		{"all keeps specials", SpecialsAll, special("insignificant_special"), true},
		{"smart keeps significant", SpecialsSmart, special(TypeSignificantSpecial), true},
		{"smart drops regular-tagged", SpecialsSmart, special("regular"), false},
		{"smart keeps untagged", SpecialsSmart, special(""), true},
		{"none keeps season 1", SpecialsNone, Episode{Season: intPtr(1), Number: 1, AirDate: "2024-01-01"}, true},
		{"none keeps season-null", SpecialsNone, Episode{Number: 7, AirDate: "2024-01-01"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterAired([]Episode{tc.episode}, tc.policy, filterNow)
			if (len(got) == 1) != tc.want {
				t.Fatalf("included=%v, want %v", len(got) == 1, tc.want)
			}
		})
	}
}

func TestFilterAiredPreservesOrder(t *testing.T) {
	eps := []Episode{
		{Season: intPtr(1), Number: 3, AirDate: "2024-02-01"},
		{Season: intPtr(1), Number: 1, AirDate: "2024-01-01"},
		{Season: intPtr(1), Number: 2, AirDate: ""},
		{Season: intPtr(1), Number: 4, AirDate: "2024-02-08"},
	}
	got := FilterAired(eps, SpecialsSmart, filterNow)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Number != 3 || got[1].Number != 1 || got[2].Number != 4 {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestParseSpecialsPolicy(t *testing.T) {
	for input, want := range map[string]SpecialsPolicy{
		"smart": SpecialsSmart,
		"ALL":   SpecialsAll,
		"none":  SpecialsNone,
		"":      SpecialsSmart,
	} {
		got, err := ParseSpecialsPolicy(input)
		if err != nil {
			t.Fatalf("ParseSpecialsPolicy(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseSpecialsPolicy(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseSpecialsPolicy("sometimes"); err == nil {
		t.Fatal("expected error for unsupported policy")
	}
}
