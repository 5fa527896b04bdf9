package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gogpu/switchgrid"
	"github.com/gogpu/switchgrid/internal/sound"
)

// sounds plays feedback through ebiten's audio context. Each sound is
// encoded once.
type sounds struct {
	ctx               *audio.Context
	clickPCM, missPCM []byte
	winPCM            []byte
}

func newSounds(mute bool) *sounds {
	if mute {
		return &sounds{}
	}
	return &sounds{
		ctx:      audio.NewContext(int(sound.SampleRate)),
		clickPCM: sound.Encode(sound.Click()),
		missPCM:  sound.Encode(sound.Miss()),
		winPCM:   sound.Encode(sound.Win()),
	}
}

func (s *sounds) play(pcm []byte) {
	if s.ctx == nil {
		return
	}
	s.ctx.NewPlayerFromBytes(pcm).Play()
}

func (s *sounds) click() { s.play(s.clickPCM) }
func (s *sounds) miss()  { s.play(s.missPCM) }

func (s *sounds) win() {
	switchgrid.Logger().Info("board solved")
	s.play(s.winPCM)
}
