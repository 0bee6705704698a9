package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	type testCase struct {
		tier     string
		division string
		lp       int
		expect   int
	}

	testCases := []testCase{
		{"IRON", "IV", 0, 0},
		{"IRON", "I", 55, 355},
		{"BRONZE", "III", 20, 520},
		{"SILVER", "II", 0, 1000},
		{"GOLD", "II", 40, 1440},
		{"PLATINUM", "IV", 1, 1601},
		{"EMERALD", "I", 99, 2399},
		{"DIAMOND", "IV", 0, 2400},
		{"MASTER", "", 120, 2920},
		{"GRANDMASTER", "", 450, 3250},
		{"CHALLENGER", "", 1103, 3903},
		// apex tiers carry no division offset even if one is supplied
		{"MASTER", "I", 0, 2800},
		{"gold", "ii", 40, 1440},
		{"UNRANKED", "", 0, 0},
		{"WOOD", "IV", 30, 0},
		{"", "", 0, 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expect, Score(tc.tier, tc.division, tc.lp), "Score(%q, %q, %d)", tc.tier, tc.division, tc.lp)
	}
}

func TestTurboScore(t *testing.T) {
	assert.Equal(t, 200, TurboScore("IRON"))
	assert.Equal(t, 1400, TurboScore("GOLD"))
	assert.Equal(t, 2600, TurboScore("DIAMOND"))
	assert.Equal(t, 0, TurboScore("UNRANKED"))
	assert.Equal(t, 0, TurboScore("MASTER"))
	assert.Equal(t, 0, TurboScore(""))
}

func TestFromString(t *testing.T) {
	type testCase struct {
		in     string
		expect int
	}

	testCases := []testCase{
		{"GOLD II 40LP", 1440},
		{"IRON IV 0LP", 0},
		{"CHALLENGER 1103LP", 3903},
		{"MASTER 0LP", 2800},
		{"TURBO DIAMOND", 2600},
		{"TURBO UNRANKED", 0},
		{"UNRANKED", 0},
		{"", 0},
		{"  ", 0},
		// malformed LP substrings degrade to 0 LP, never an error
		{"GOLD II xxLP", 1400},
		{"SILVER I", 1100},
		{"NONSENSE STRING", 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expect, FromString(tc.in), "FromString(%q)", tc.in)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	assert.Equal(t, "GOLD II 40LP", Format("Gold", "II", 40))
	assert.Equal(t, 1440, FromString(Format("GOLD", "II", 40)))
	assert.Equal(t, "TURBO DIAMOND", FormatTurbo("Diamond"))
	assert.Equal(t, 2600, FromString(FormatTurbo("DIAMOND")))
}
