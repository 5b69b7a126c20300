// Package player tracks playlist position and play state. It holds no
// audio; rendering is the caller's concern.
package player

import (
	"sync"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
)

// Player is an index cursor over a fixed playlist. Next and Prev wrap
// around the ends. Safe for concurrent use.
type Player struct {
	mu       sync.Mutex
	playlist []types.Track
	index    int
	playing  bool
}

// New builds a player over the playlist. An empty playlist is allowed;
// every operation is then a no-op.
func New(playlist []types.Track) *Player {
	return &Player{playlist: append([]types.Track(nil), playlist...)}
}

// Play selects the track by id and starts playing. When the track is
// already current, it toggles pause instead.
func (p *Player) Play(trackID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, track := range p.playlist {
		if track.ID != trackID {
			continue
		}
		if i == p.index && p.playing {
			p.playing = false
			return nil
		}
		p.index = i
		p.playing = true
		return nil
	}
	return core.NewNotFoundError("track not in playlist: " + trackID)
}

// Toggle flips the play state without moving the cursor.
func (p *Player) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.playlist) == 0 {
		return
	}
	p.playing = !p.playing
}

// Next advances the cursor, wrapping at the end, and plays.
func (p *Player) Next() {
	p.step(1)
}

// Prev moves the cursor back, wrapping at the start, and plays.
func (p *Player) Prev() {
	p.step(-1)
}

func (p *Player) step(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.playlist)
	if n == 0 {
		return
	}
	p.index = (p.index + delta + n) % n
	p.playing = true
}

// Current returns the track under the cursor and the play state.
func (p *Player) Current() (types.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.playlist) == 0 {
		return types.Track{}, false
	}
	return p.playlist[p.index], p.playing
}
