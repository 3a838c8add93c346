// Package stats computes derived shooting and rebounding figures from raw
// box-score counts. Everything here is pure: no I/O, no error paths.
package stats

import (
	"math"

	"github.com/prettygood/courtside/internal/store"
)

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percentage returns made/attempted as a percentage rounded to one decimal.
// Zero attempts yields 0, never NaN — 0-for-0 is simply not a shooting night.
func Percentage(made, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	return Round1(float64(made) / float64(attempted) * 100)
}

// PairPercentage is Percentage over a ShootingPair.
func PairPercentage(p store.ShootingPair) float64 {
	return Percentage(p.Made(), p.Attempted())
}

// Derive fills in the derived fields of a stat line from its raw fields:
// the 2PT split (only when both fg and 3pt are present), the four shooting
// percentages, and total rebounds with missing oreb/dreb treated as zero.
func Derive(s *store.PlayerGameStats) {
	if s.FG != nil && s.ThreePT != nil {
		twoPT := s.FG.Sub(*s.ThreePT)
		twoPct := PairPercentage(twoPT)
		s.TwoPT = &twoPT
		s.TwoPTPct = &twoPct
	}

	s.FGPct = 0
	if s.FG != nil {
		s.FGPct = PairPercentage(*s.FG)
	}
	s.ThreePTPct = 0
	if s.ThreePT != nil {
		s.ThreePTPct = PairPercentage(*s.ThreePT)
	}
	s.FTPct = 0
	if s.FT != nil {
		s.FTPct = PairPercentage(*s.FT)
	}

	s.Rebounds = intOrZero(s.OffReb) + intOrZero(s.DefReb)
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
