package session

import "sync"

// Player is the single audio output a session drives.
type Player interface {
	Load(url string) error
	Play() error
	Stop()
}

// NopPlayer only remembers what it was asked to do.
type NopPlayer struct {
	mu      sync.Mutex
	url     string
	playing bool
	stops   int
}

func (p *NopPlayer) Load(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
	p.playing = false
	return nil
}

func (p *NopPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	return nil
}

func (p *NopPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	p.stops++
}

func (p *NopPlayer) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *NopPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *NopPlayer) Stops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stops
}
