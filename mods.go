package osu

import "strings"

// Mods is the bit-set of gameplay modifiers a replay was played with
type Mods uint32

// Gameplay modifiers
const (
	ModNoFail Mods = 1 << iota
	ModEasy
	ModTouchDevice
	ModHidden
	ModHardRock
	ModSuddenDeath
	ModDoubleTime
	ModRelax
	ModHalfTime
	ModNightcore
	ModFlashlight
	ModAutoplay
	ModSpunOut
	ModAutopilot
	ModPerfect
	ModKey4
	ModKey5
	ModKey6
	ModKey7
	ModKey8
	ModFadeIn
	ModRandom
	ModCinema
	ModTargetPractice
	ModKey9
	ModCoop
	ModKey1
	ModKey3
	ModKey2
	ModScoreV2
	ModMirror

	// ModNone is the empty set
	ModNone Mods = 0

	// ModKeys is the union of every mania key-count modifier
	ModKeys = ModKey1 | ModKey2 | ModKey3 | ModKey4 | ModKey5 | ModKey6 | ModKey7 | ModKey8 | ModKey9

	modsMask Mods = 1<<31 - 1
)

var modNames = [...]string{
	"NF", "EZ", "TD", "HD", "HR", "SD", "DT", "RX", "HT", "NC", "FL", "AT", "SO", "AP", "PF",
	"4K", "5K", "6K", "7K", "8K", "FI", "RD", "CN", "TP", "9K", "CO", "1K", "3K", "2K", "V2", "MR",
}

// parseMods validates a mod bit-set
func parseMods(v uint32) (Mods, error) {
	if Mods(v)&^modsMask != 0 {
		return 0, invalid("mods", v)
	}
	return Mods(v), nil
}

// Has reports whether all of the given mods are enabled
func (m Mods) Has(mods Mods) bool {
	return m&mods == mods
}

// String returns the abbreviated mod names, such as "HDDT", or "NM" when no mod is set
func (m Mods) String() string {
	if m == ModNone {
		return "NM"
	}

	var sb strings.Builder
	for i, name := range modNames {
		if m&(1<<i) != 0 {
			sb.WriteString(name)
		}
	}
	return sb.String()
}
