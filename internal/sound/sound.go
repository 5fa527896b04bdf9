// Package sound synthesizes the game's feedback sounds.
//
// Sounds are beep streamers. Terminal hosts play them through a Speaker;
// hosts with their own audio output encode them to PCM with Encode.
package sound

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate of every generated sound.
const SampleRate = beep.SampleRate(44100)

// Note frequencies in Hz.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
)

// tone is a sine at freq that decays exponentially over d.
func tone(freq float64, d time.Duration) beep.Streamer {
	total := SampleRate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if pos >= total {
				return i, i > 0
			}
			t := float64(pos) / float64(SampleRate)
			decay := math.Exp(-5 * float64(pos) / float64(total))
			v := math.Sin(2*math.Pi*freq*t) * decay
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
}

// volume scales s by gain in (0, 1].
func volume(s beep.Streamer, gain float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Click is the sound of a panel being picked.
func Click() beep.Streamer {
	return volume(tone(noteE5, 60*time.Millisecond), 0.4)
}

// Miss is the sound of a pick that hit no panel.
func Miss() beep.Streamer {
	return volume(tone(noteC5/2, 40*time.Millisecond), 0.25)
}

// Win is a rising arpeggio played when the board is solved.
func Win() beep.Streamer {
	const step = 120 * time.Millisecond
	return volume(beep.Seq(
		tone(noteC5, step),
		tone(noteE5, step),
		tone(noteG5, step),
		tone(noteC6, 3*step),
	), 0.5)
}

// Encode drains s into signed 16-bit little-endian stereo PCM.
func Encode(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(quantize(smp[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(quantize(smp[1])))
		}
		if !ok {
			return out
		}
	}
}

func quantize(v float64) int16 {
	v = max(-1, min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
