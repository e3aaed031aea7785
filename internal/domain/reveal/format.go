// Package reveal derives the display values shown for each guessed player.
// Everything here is pure; no clock, storage or network access.
package reveal

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/plwordle/plwordle/internal/domain/catalog"
)

const (
	inchesPerCM = 0.3937008
	hoursPerYear = 365.25 * 24
)

// TeamLabel abbreviates a club name by stripping lowercase letters and
// whitespace, so "Aston Villa" becomes "AV". Crude, but it matches the badge
// row the board renders.
func TeamLabel(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLower(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Age returns whole years between dob and now, using a 365.25-day year.
func Age(dob, now time.Time) int {
	if now.Before(dob) {
		return 0
	}
	return int(math.Floor(now.Sub(dob).Hours() / hoursPerYear))
}

// HeightLabel converts a height in centimetres to a feet-and-inches label,
// e.g. 182.88cm renders as `6'0"`.
func HeightLabel(heightCM float64) string {
	inches := int(math.Floor(heightCM * inchesPerCM))
	if inches < 0 {
		inches = 0
	}
	return fmt.Sprintf(`%d'%d"`, inches/12, inches%12)
}

// CurrentTeam resolves the affiliated team matching the player's recorded
// current club. When none matches, a synthetic placeholder without a badge is
// returned so the board still renders a label.
func CurrentTeam(p catalog.Player) catalog.Team {
	for _, t := range p.Teams {
		if t.Name == p.CurrentTeam {
			return t
		}
	}
	return catalog.Team{Name: p.CurrentTeam}
}

// PrimaryPosition returns the first position code, empty when the catalog
// carries none.
func PrimaryPosition(p catalog.Player) string {
	if len(p.Positions) == 0 {
		return ""
	}
	return p.Positions[0].Code
}
