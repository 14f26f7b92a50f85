package main

import "fmt"

// consolePlayer is a Player that narrates what a real media player would
// do. It lets `watch` demonstrate reconciliation without audio output.
type consolePlayer struct {
	current int64
	playing bool
}

func (p *consolePlayer) CurrentTrack() int64 { return p.current }
func (p *consolePlayer) IsPlaying() bool     { return p.playing }

func (p *consolePlayer) LoadTrack(index int64) {
	p.current = index
	fmt.Printf("▶ loading track %d\n", index)
}

func (p *consolePlayer) Play() {
	if !p.playing {
		fmt.Println("▶ play")
	}
	p.playing = true
}

func (p *consolePlayer) Pause() {
	if p.playing {
		fmt.Println("⏸ pause")
	}
	p.playing = false
}
