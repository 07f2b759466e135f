package osu

import "github.com/kelindar/osu-sdk/internal/section"

// Difficulty holds the [Difficulty] section of a beatmap
type Difficulty struct {
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	SliderMultiplier  float64 // Base slider velocity in hundreds of osu! pixels per beat
	SliderTickRate    float64 // Slider ticks per beat
}

// defaultDifficulty returns the values assumed for keys that are not present.
// Files predating ApproachRate use the overall difficulty in its place.
func defaultDifficulty() Difficulty {
	return Difficulty{
		HPDrainRate:       5,
		CircleSize:        5,
		OverallDifficulty: 5,
		ApproachRate:      -1,
		SliderMultiplier:  1.4,
		SliderTickRate:    1,
	}
}

var difficultyKeys = section.Table[Difficulty]{
	"HPDrainRate":       setFloat("HPDrainRate", func(d *Difficulty) *float64 { return &d.HPDrainRate }),
	"CircleSize":        setFloat("CircleSize", func(d *Difficulty) *float64 { return &d.CircleSize }),
	"OverallDifficulty": setFloat("OverallDifficulty", func(d *Difficulty) *float64 { return &d.OverallDifficulty }),
	"ApproachRate":      setFloat("ApproachRate", func(d *Difficulty) *float64 { return &d.ApproachRate }),
	"SliderMultiplier":  setFloat("SliderMultiplier", func(d *Difficulty) *float64 { return &d.SliderMultiplier }),
	"SliderTickRate":    setFloat("SliderTickRate", func(d *Difficulty) *float64 { return &d.SliderTickRate }),
}
