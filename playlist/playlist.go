// Package playlist provides a small ordered track list. It is the subject
// of the fixture lesson in playlist_test.go: shared setup, teardown, and a
// fresh fixture for every test.
package playlist

import "errors"

// ErrNoSuchTrack is returned when an index is outside the playlist.
var ErrNoSuchTrack = errors.New("no such track")

// Playlist is an ordered list of track titles.
type Playlist struct {
	tracks []string
}

// New creates an empty Playlist.
func New() *Playlist {
	return &Playlist{}
}

// Add appends titles to the end of the playlist.
func (p *Playlist) Add(titles ...string) {
	p.tracks = append(p.tracks, titles...)
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Track returns the title at position i, or ErrNoSuchTrack when i is out
// of range.
func (p *Playlist) Track(i int) (string, error) {
	if i < 0 || i >= len(p.tracks) {
		return "", ErrNoSuchTrack
	}
	return p.tracks[i], nil
}

// Remove deletes the track at position i, shifting later tracks down.
func (p *Playlist) Remove(i int) error {
	if i < 0 || i >= len(p.tracks) {
		return ErrNoSuchTrack
	}
	p.tracks = append(p.tracks[:i], p.tracks[i+1:]...)
	return nil
}

// Tracks returns a copy of the titles in order.
func (p *Playlist) Tracks() []string {
	out := make([]string, len(p.tracks))
	copy(out, p.tracks)
	return out
}

// Clear removes all tracks.
func (p *Playlist) Clear() {
	p.tracks = nil
}
