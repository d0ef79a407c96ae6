// Package sound plays wav cues on the bot's speaker.
package sound

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

const SampleRate = beep.SampleRate(44100)

// InitSound starts the player goroutine.  Paths sent on the returned channel
// are played in turn; a new sound cuts off the one that is playing.  Close
// the channel to stop the player.
func InitSound(log *zap.SugaredLogger) chan string {
	soundsToPlay := make(chan string)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("Sound player panicked", "panic", r)
			}
			drain(log, soundsToPlay)
		}()
		err := speaker.Init(SampleRate, SampleRate.N(time.Second/5))
		if err != nil {
			log.Errorw("Failed to open speaker", "error", err)
			return
		}
		play(log, soundsToPlay)
	}()
	return soundsToPlay
}

func play(log *zap.SugaredLogger, soundsToPlay chan string) {
	var ctrl *beep.Ctrl
	var s beep.StreamSeekCloser
	for soundToPlay := range soundsToPlay {
		if ctrl != nil {
			speaker.Lock()
			ctrl.Paused = true
			ctrl.Streamer = nil
			speaker.Unlock()
			ctrl = nil
		}
		if s != nil {
			_ = s.Close()
			s = nil
		}

		stream, err := Open(soundToPlay)
		if err != nil {
			log.Warnw("Failed to load sound", "path", soundToPlay, "error", err)
			continue
		}
		s = stream
		ctrl = &beep.Ctrl{Streamer: s}
		speaker.Play(ctrl)
	}
}

// Open decodes a wav file.  The returned stream owns the file.
func Open(path string) (beep.StreamSeekCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, _, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func drain(log *zap.SugaredLogger, soundsToPlay chan string) {
	for s := range soundsToPlay {
		log.Infow("Unable to play", "path", s)
	}
}
