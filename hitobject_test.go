package osu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHitObject_Circle(t *testing.T) {
	obj, err := ParseHitObject("256,192,1000,1,0,0:0:0:0:")
	require.NoError(t, err)

	assert.Equal(t, KindCircle, obj.Kind)
	assert.Equal(t, int16(256), obj.X)
	assert.Equal(t, int16(192), obj.Y)
	assert.Equal(t, int64(1000), obj.Time)
	assert.True(t, obj.Meta.Circle())
	assert.Equal(t, CustomHitSample{}, obj.Sample)
	assert.Nil(t, obj.Slider)

	t.Run("without sample", func(t *testing.T) {
		obj, err := ParseHitObject("10,20,30,5,2")
		require.NoError(t, err)
		assert.Equal(t, KindCircle, obj.Kind)
		assert.True(t, obj.Meta.NewCombo())
		assert.Equal(t, HitWhistle, obj.Sound)
	})

	t.Run("custom sample", func(t *testing.T) {
		obj, err := ParseHitObject("256,192,4000,1,8,1:2:3:40:clap.wav")
		require.NoError(t, err)
		assert.Equal(t, KindCircle, obj.Kind)
		assert.Equal(t, HitClap, obj.Sound)
		assert.Equal(t, CustomHitSample{
			HitSampleData: HitSampleData{Normal: SampleNormal, Addition: SampleSoft},
			Index:         3,
			Volume:        40,
			Filename:      "clap.wav",
		}, obj.Sample)
	})

	t.Run("partial sample", func(t *testing.T) {
		obj, err := ParseHitObject("256,192,4000,1,0,2:0")
		require.NoError(t, err)
		assert.Equal(t, SampleSoft, obj.Sample.Normal)
		assert.Zero(t, obj.Sample.Index)
	})
}

func TestParseHitObject_Spinner(t *testing.T) {
	obj, err := ParseHitObject("256,192,1000,8,0,120")
	require.NoError(t, err)
	assert.Equal(t, KindSpinner, obj.Kind)
	assert.Equal(t, uint64(120), obj.EndTime)

	obj, err = ParseHitObject("256,192,730,12,8,3983,0:0:0:0:")
	require.NoError(t, err)
	assert.Equal(t, KindSpinner, obj.Kind)
	assert.Equal(t, uint64(3983), obj.EndTime)
	assert.True(t, obj.Meta.Spinner())
	assert.True(t, obj.Meta.NewCombo())
}

func TestParseHitObject_Slider(t *testing.T) {
	obj, err := ParseHitObject("100,100,1500,2,2,B|200:100|200:200,1,187.5,2|0,0:0|2:0,0:0:0:0:")
	require.NoError(t, err)
	require.Equal(t, KindSlider, obj.Kind)
	require.NotNil(t, obj.Slider)

	assert.Equal(t, &SliderData{
		Curve:      CurveBezier,
		Points:     []Point{{X: 200, Y: 100}, {X: 200, Y: 200}},
		Slides:     1,
		Length:     187.5,
		EdgeSounds: []HitSound{HitWhistle, 0},
		EdgeSets: []HitSampleData{
			{Normal: SampleDefault, Addition: SampleDefault},
			{Normal: SampleSoft, Addition: SampleDefault},
		},
	}, obj.Slider)
	assert.Equal(t, CustomHitSample{}, obj.Sample)

	t.Run("without edges", func(t *testing.T) {
		obj, err := ParseHitObject("64,64,2000,6,0,L|192:64,2,128")
		require.NoError(t, err)
		assert.Equal(t, CurveLinear, obj.Slider.Curve)
		assert.Equal(t, uint32(2), obj.Slider.Slides)
		assert.Equal(t, 128.0, obj.Slider.Length)
		assert.Nil(t, obj.Slider.EdgeSounds)
		assert.Nil(t, obj.Slider.EdgeSets)
	})

	t.Run("edges shorter than slides", func(t *testing.T) {
		obj, err := ParseHitObject("0,0,0,2,0,L|10:10,3,50,2|4")
		require.NoError(t, err)
		assert.Equal(t, uint32(3), obj.Slider.Slides)
		assert.Equal(t, []HitSound{HitWhistle, HitFinish}, obj.Slider.EdgeSounds)
	})

	t.Run("edge sets are not a sample", func(t *testing.T) {
		obj, err := ParseHitObject("0,0,0,2,0,P|10:10|20:0,1,50,0|0,1:2|3:0")
		require.NoError(t, err)
		assert.Equal(t, CurvePerfect, obj.Slider.Curve)
		assert.Len(t, obj.Slider.EdgeSets, 2)
		assert.Equal(t, SampleDrum, obj.Slider.EdgeSets[1].Normal)
		assert.Equal(t, CustomHitSample{}, obj.Sample)
	})
}

func TestParseHitObject_Hold(t *testing.T) {
	obj, err := ParseHitObject("64,192,1000,128,0,1500:0:0:0:0:")
	require.NoError(t, err)
	assert.Equal(t, KindHold, obj.Kind)
	assert.True(t, obj.Meta.ManiaHold())
	assert.Equal(t, uint64(1500), obj.EndTime)

	obj, err = ParseHitObject("64,192,1000,128,0,1500:2:0:0:60:hold.wav")
	require.NoError(t, err)
	assert.Equal(t, SampleSoft, obj.Sample.Normal)
	assert.Equal(t, uint8(60), obj.Sample.Volume)
	assert.Equal(t, "hold.wav", obj.Sample.Filename)

	_, err = ParseHitObject("64,192,1000,128,0")
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseHitObject_Errors(t *testing.T) {
	tests := []struct {
		line   string
		expect error
		field  string
	}{
		{"", ErrTruncated, "y"},
		{"1,2", ErrTruncated, "time"},
		{"1,2,3,1", ErrTruncated, "hit sound"},
		{"a,2,3,1,0", ErrMalformedNumber, "x"},
		{"1,40000,3,1,0", ErrMalformedNumber, "y"},
		{"1,2,t,1,0", ErrMalformedNumber, "time"},
		{"1,2,3,256,0", ErrInvalidEncoding, "type"},
		{"1,2,3,1,16", ErrInvalidEncoding, "hit sound"},
		{"1,2,3,1,0,4:0:0:0:", ErrInvalidEncoding, "sample set"},
		{"1,2,3,1,0,0:0:x:0:", ErrMalformedNumber, "sample index"},
		{"1,2,3,2,0,X|1:1,1,100", ErrInvalidEncoding, "curve type"},
		{"1,2,3,2,0,B,1,100", ErrStructure, "no control points"},
		{"1,2,3,2,0,B|1:1", ErrStructure, "slider"},
		{"1,2,3,2,0,B|1,1,100", ErrTruncated, "slider point"},
		{"1,2,3,2,0,B|1:y,1,100", ErrMalformedNumber, "slider point y"},
		{"1,2,3,2,0,B|1:1,x,100", ErrMalformedNumber, "slides"},
		{"1,2,3,2,0,B|1:1,1,long", ErrMalformedNumber, "length"},
		{"1,2,3,2,0,B|1:1,1,100,32", ErrInvalidEncoding, "edge sound"},
		{"1,2,3,2,0,B|1:1,1,100,0|0,0:9|0:0", ErrInvalidEncoding, "sample set"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseHitObject(tt.line)
			assert.ErrorIs(t, err, tt.expect)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		expect Kind
		fails  bool
	}{
		{"empty", nil, KindCircle, false},
		{"spinner", []string{"120"}, KindSpinner, false},
		{"slider", []string{"B|1:1", "1", "100"}, KindSlider, false},
		{"negative is not a spinner", []string{"-5", "1", "100"}, KindSlider, false},
		{"short slider", []string{"L|1:1", "1"}, KindSlider, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := classify(tt.tokens)
			assert.Equal(t, tt.expect, kind)
			if tt.fails {
				assert.ErrorIs(t, err, ErrStructure)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMeta(t *testing.T) {
	m := Meta(0b1101_0110)
	assert.False(t, m.Circle())
	assert.True(t, m.Slider())
	assert.True(t, m.NewCombo())
	assert.False(t, m.Spinner())
	assert.True(t, m.ManiaHold())
	assert.Equal(t, uint8(5), m.ComboSkip())

	assert.Equal(t, uint8(7), Meta(0x70).ComboSkip())
	assert.Equal(t, uint8(0), Meta(0x8f).ComboSkip())
}

func TestCustomHitSample_File(t *testing.T) {
	s := CustomHitSample{HitSampleData: HitSampleData{Normal: SampleSoft, Addition: SampleDrum}, Index: 2}
	assert.Equal(t, "drum-hitclap2.wav", s.File(HitClap))
	assert.Equal(t, "soft-hitnormal2.wav", s.File(HitNormal))
	assert.Equal(t, "soft-hitnormal2.wav", s.File(0))

	s.Index = 1
	assert.Equal(t, "drum-hitwhistle.wav", s.File(HitWhistle))

	s.Addition = SampleDefault
	assert.Equal(t, "soft-hitfinish.wav", s.File(HitFinish))

	assert.Equal(t, "normal-hitnormal.wav", CustomHitSample{}.File(HitNormal))
	assert.Equal(t, "x.wav", CustomHitSample{Filename: "x.wav"}.File(HitClap))
}

func TestHitSound(t *testing.T) {
	assert.Equal(t, "whistle|clap", (HitWhistle | HitClap).String())
	assert.True(t, (HitWhistle | HitClap).Has(HitClap))
	assert.False(t, HitNormal.Has(HitClap))
}
