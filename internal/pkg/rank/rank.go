// Package rank converts TFT rank descriptors into a single comparable integer score.
//
// The score is the only rank representation the rest of the system sorts or charts by,
// so every call site (sync worker, ingestion, live overlay) must go through this package.
package rank

import (
	"fmt"
	"strconv"
	"strings"
)

// Non-apex tiers advance in 400-point bands; each division within a tier adds 100,
// league points add on top. Master, Grandmaster and Challenger share a single base
// and are differentiated by LP alone.
var tierBase = map[string]int{
	"IRON":     0,
	"BRONZE":   400,
	"SILVER":   800,
	"GOLD":     1200,
	"PLATINUM": 1600,
	"EMERALD":  2000,
	"DIAMOND":  2400,
}

const apexBase = 2800

var divisionOffset = map[string]int{
	"IV":  0,
	"III": 100,
	"II":  200,
	"I":   300,
}

// Turbo (hyper roll) tiers carry fixed scores: no divisions, no LP.
var turboScore = map[string]int{
	"IRON":     200,
	"BRONZE":   600,
	"SILVER":   1000,
	"GOLD":     1400,
	"PLATINUM": 1800,
	"EMERALD":  2200,
	"DIAMOND":  2600,
}

func isApex(tier string) bool {
	return tier == "MASTER" || tier == "GRANDMASTER" || tier == "CHALLENGER"
}

// Score computes the score of a regular ranked descriptor. Unrecognized or unranked
// tiers score 0. Unknown divisions contribute no offset.
func Score(tier, division string, leaguePoints int) int {
	tier = strings.ToUpper(strings.TrimSpace(tier))
	if isApex(tier) {
		return apexBase + leaguePoints
	}
	base, ok := tierBase[tier]
	if !ok {
		return 0
	}
	return base + divisionOffset[strings.ToUpper(strings.TrimSpace(division))] + leaguePoints
}

// TurboScore computes the score of a turbo-queue rated tier. Unranked or unrecognized
// tiers score 0.
func TurboScore(tier string) int {
	return turboScore[strings.ToUpper(strings.TrimSpace(tier))]
}

// Format renders a regular descriptor into the denormalized form stored on accounts,
// e.g. "GOLD II 40LP".
func Format(tier, division string, leaguePoints int) string {
	return fmt.Sprintf("%s %s %dLP", strings.ToUpper(tier), strings.ToUpper(division), leaguePoints)
}

// FormatTurbo renders a turbo descriptor, e.g. "TURBO DIAMOND".
func FormatTurbo(tier string) string {
	return "TURBO " + strings.ToUpper(tier)
}

// FromString scores a denormalized rank string as produced by Format/FormatTurbo.
// Empty, "UNRANKED" and unrecognized strings score 0; an unparseable LP substring is
// treated as 0 LP rather than an error.
func FromString(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "UNRANKED" {
		return 0
	}

	if strings.HasPrefix(s, "TURBO ") {
		return TurboScore(strings.TrimPrefix(s, "TURBO "))
	}

	fields := strings.Fields(s)
	tier := fields[0]

	division := ""
	if len(fields) > 1 {
		if _, ok := divisionOffset[fields[1]]; ok {
			division = fields[1]
		}
	}

	return Score(tier, division, parseLP(fields))
}

func parseLP(fields []string) int {
	for _, f := range fields {
		if !strings.HasSuffix(f, "LP") {
			continue
		}
		lp, err := strconv.Atoi(strings.TrimSuffix(f, "LP"))
		if err != nil {
			return 0
		}
		return lp
	}
	return 0
}
