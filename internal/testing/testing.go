// Package testing builds replay and beatmap fixtures for the tests, so that no
// external test data is needed.
package testing

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/kelindar/osu-sdk/internal/bin"
	"github.com/kelindar/osu-sdk/internal/codec"
)

// TargetPractice is the mod bit that adds the trailing accuracy field
const TargetPractice = 1 << 23

// BeatmapHash returns the MD5 of the Beatmap fixture, as stored in replays
func BeatmapHash() string {
	sum := md5.Sum([]byte(Beatmap))
	return hex.EncodeToString(sum[:])
}

// Replay describes the fields of a replay to encode
type Replay struct {
	Mode       byte
	Version    uint32
	MapHash    string
	Player     string
	ReplayHash string
	Counts     [6]uint16 // 300, 100, 50, geki, katu, miss
	Score      uint32
	MaxCombo   uint16
	Perfect    byte
	Mods       uint32
	LifeBar    string
	Timestamp  uint64
	Frames     string // Uncompressed "delta|x|y|keys," records
	Payload    []byte // Compressed payload, used instead of Frames when set
	ScoreID    uint64
	Accuracy   float64 // Written only when Mods has TargetPractice
	Trailer    []byte  // Extra bytes appended at the very end
}

// SampleReplay returns a small, valid replay
func SampleReplay() *Replay {
	return &Replay{
		Mode:       0,
		Version:    20240101,
		MapHash:    BeatmapHash(),
		Player:     "peppy",
		ReplayHash: "c5f1e3d8b0a3e1e9f0a4c2d6b8e7f9a1",
		Counts:     [6]uint16{120, 8, 2, 30, 5, 1},
		Score:      1234567,
		MaxCombo:   321,
		Perfect:    0,
		Mods:       1<<3 | 1<<6, // HD DT
		LifeBar:    "0|1,1500|0.95,3000|0.8,",
		Timestamp:  638400000000000000,
		Frames:     "0|256|-500|0,-1|256|-500|0,16|100.5|200.25|1,17|101|201|5,15|102|202|0,-12345|0|0|7331,",
		ScoreID:    4242,
	}
}

// Encode serializes the replay in the .osr layout
func (r *Replay) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteByte(r.Mode)
	writeUint(&buf, r.Version)
	writeString(&buf, r.MapHash)
	writeString(&buf, r.Player)
	writeString(&buf, r.ReplayHash)
	for _, c := range r.Counts {
		writeUint(&buf, c)
	}
	writeUint(&buf, r.Score)
	writeUint(&buf, r.MaxCombo)
	buf.WriteByte(r.Perfect)
	writeUint(&buf, r.Mods)
	writeString(&buf, r.LifeBar)
	writeUint(&buf, r.Timestamp)

	payload := r.Payload
	if payload == nil {
		payload = Compress(r.Frames)
	}
	writeUint(&buf, uint32(len(payload)))
	buf.Write(payload)

	writeUint(&buf, r.ScoreID)
	if r.Mods&TargetPractice != 0 {
		writeUint(&buf, math.Float64bits(r.Accuracy))
	}

	buf.Write(r.Trailer)
	return buf.Bytes()
}

// Compress returns the text as an LZMA-alone stream, panicking on failure
func Compress(text string) []byte {
	out, err := codec.Encode([]byte(text), codec.LZMA)
	if err != nil {
		panic(err)
	}
	return out
}

func writeUint[T uint16 | uint32 | uint64](buf *bytes.Buffer, v T) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}

// writeString writes the 0x0b marker, the ULEB128 length and the bytes, or a
// single zero byte for an empty string.
func writeString(buf *bytes.Buffer, s string) {
	if s == "" {
		buf.WriteByte(0)
		return
	}

	buf.WriteByte(bin.StringPresent)
	buf.Write(ULEB128(uint64(len(s))))
	buf.WriteString(s)
}

// ULEB128 encodes an unsigned integer, 7 bits at a time, least significant first
func ULEB128(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		if v >>= 7; v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

// Beatmap is a small but complete beatmap exercising every section
const Beatmap = `osu file format v14

[General]
AudioFilename: audio.mp3
AudioLeadIn: 0
PreviewTime: 12345
Countdown: 0
SampleSet: Soft
StackLeniency: 0.5
Mode: 0
LetterboxInBreaks: 1
WidescreenStoryboard: 1
UnknownKey: whatever

[Editor]
DistanceSpacing: 1.2
BeatDivisor: 4

[Metadata]
Title:Lorem Ipsum
TitleUnicode:ロレム
Artist:Dolor
ArtistUnicode:Dolor
Creator:sit
Version:Insane
Source:
Tags:amet consectetur adipiscing
BeatmapID:123456
BeatmapSetID:-1

[Difficulty]
HPDrainRate:6
CircleSize:4
OverallDifficulty:8
ApproachRate:9
SliderMultiplier:1.8
SliderTickRate:1

[Events]
//Background and Video events
0,0,"bg.jpg",0,0

[TimingPoints]
1000,333.33,4,2,0,60,1,0
2000,-50,4,2,0,60,0,1
3000,-100,4,1,1,70,0,8

[Colours]
Combo1 : 255,128,0
Combo2 : 0,202,0
SliderBorder : 255,255,255

[HitObjects]
256,192,1000,5,0,0:0:0:0:
100,100,1500,2,2,B|200:100|200:200,1,187.5,2|0,0:0|2:0,0:0:0:0:
64,64,2000,6,0,L|192:64,2,128
300,200,2500,2,0,P|350:250|400:200,1,120
50,50,2750,2,0,C|100:150|200:150|250:50,1,300
256,192,3000,12,0,3500,0:0:0:0:
256,192,4000,1,8,1:2:3:40:clap.wav
`
