package reveal

import (
	"testing"
	"time"

	"github.com/plwordle/plwordle/internal/domain/catalog"
)

func TestTeamLabel(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Arsenal", "A"},
		{"Aston Villa", "AV"},
		{"AFC Bournemouth", "AFCB"},
		{"Wolverhampton Wanderers", "WW"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := TeamLabel(tc.name); got != tc.want {
			t.Errorf("TeamLabel(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAge_ExactBirthday(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	dob := now.AddDate(-20, 0, 0)

	if got := Age(dob, now); got != 20 {
		t.Fatalf("Age = %d, want 20", got)
	}
}

func TestAge_DayBeforeBirthday(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	dob := now.AddDate(-20, 0, 1)

	if got := Age(dob, now); got != 19 {
		t.Fatalf("Age = %d, want 19", got)
	}
}

func TestAge_FutureDOB(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if got := Age(now.AddDate(1, 0, 0), now); got != 0 {
		t.Fatalf("Age = %d, want 0", got)
	}
}

func TestHeightLabel(t *testing.T) {
	cases := []struct {
		cm   float64
		want string
	}{
		{182.88, `6'0"`}, // 72 inches
		{180, `5'10"`},
		{190, `6'2"`},
		{0, `0'0"`},
	}

	for _, tc := range cases {
		if got := HeightLabel(tc.cm); got != tc.want {
			t.Errorf("HeightLabel(%v) = %q, want %q", tc.cm, got, tc.want)
		}
	}
}

func TestCurrentTeam_MatchAndPlaceholder(t *testing.T) {
	p := catalog.Player{
		CurrentTeam: "Arsenal",
		Teams: []catalog.Team{
			{ID: 1, Name: "Chelsea", BadgeURL: "/badges/che.png"},
			{ID: 2, Name: "Arsenal", BadgeURL: "/badges/ars.png"},
		},
	}

	got := CurrentTeam(p)
	if got.ID != 2 || got.BadgeURL != "/badges/ars.png" {
		t.Fatalf("CurrentTeam matched wrong club: %+v", got)
	}

	p.CurrentTeam = "Leeds United"
	got = CurrentTeam(p)
	if got.ID != 0 || got.BadgeURL != "" || got.Name != "Leeds United" {
		t.Fatalf("expected synthetic placeholder, got %+v", got)
	}
}

func TestPrimaryPosition(t *testing.T) {
	p := catalog.Player{Positions: []catalog.Position{{Code: "ST"}, {Code: "CF"}}}
	if got := PrimaryPosition(p); got != "ST" {
		t.Fatalf("PrimaryPosition = %q, want ST", got)
	}
	if got := PrimaryPosition(catalog.Player{}); got != "" {
		t.Fatalf("PrimaryPosition on empty = %q, want empty", got)
	}
}
