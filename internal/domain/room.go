package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrLinkNotFound = errors.New("link not found")

// Room holds the playlist, cursor, playback clock, chat log and play flag of
// one watch party. All state changes go through its methods; the server never
// advances CurrentTime on its own, it only stores what clients report.
type Room struct {
	Id          string   `json:"id"`
	Links       []Link   `json:"links"`
	CurrentLink int      `json:"current_link"`
	CurrentTime float64  `json:"current_time"`
	Messages    []string `json:"messages"`
	Playing     bool     `json:"playing"`
}

// Snapshot is the serializable view of a room sent to clients. CurrentLink
// resolves to the cursor link's url, empty string for an empty playlist.
type Snapshot struct {
	Id          string   `json:"id"`
	Links       []Link   `json:"links"`
	CurrentLink string   `json:"current_link"`
	CurrentTime float64  `json:"current_time"`
	Messages    []string `json:"messages"`
	Playing     bool     `json:"playing"`
}

func NewRoom() *Room {
	return &Room{
		Id:       uuid.NewString(),
		Links:    []Link{},
		Messages: []string{},
	}
}

// setCursor moves the selection and applies the selection-change rules:
// the clock rewinds to 0 and playback stops until an explicit play command.
func (r *Room) setCursor(index int) {
	r.CurrentLink = index
	r.CurrentTime = 0
	r.Playing = false
	r.markCurrent()
}

// markCurrent keeps the per-link playing marker on the cursor link only.
func (r *Room) markCurrent() {
	for i := range r.Links {
		r.Links[i].IsPlaying = i == r.CurrentLink
	}
}

func (r *Room) indexOfId(linkId string) (int, bool) {
	for i := range r.Links {
		if r.Links[i].Id == linkId {
			return i, true
		}
	}

	return 0, false
}

// AddLink appends a link with a fresh id. The first link added becomes the
// selected one.
func (r *Room) AddLink(url string) Link {
	r.Links = append(r.Links, Link{
		Id:  uuid.NewString(),
		Url: url,
	})

	if len(r.Links) == 1 {
		r.setCursor(0)
	} else {
		r.markCurrent()
	}

	return r.Links[len(r.Links)-1]
}

func (r *Room) SelectLink(linkId string) error {
	index, ok := r.indexOfId(linkId)
	if !ok {
		return ErrLinkNotFound
	}

	r.setCursor(index)
	return nil
}

// SelectLinkByUrl selects the first link matching url in list order.
func (r *Room) SelectLinkByUrl(url string) error {
	for i := range r.Links {
		if r.Links[i].Url == url {
			r.setCursor(i)
			return nil
		}
	}

	return ErrLinkNotFound
}

// AdvanceLink moves the cursor to the next link. Advancing past the last
// link keeps the cursor on the last link; the clock and play flag are reset
// either way.
func (r *Room) AdvanceLink() {
	if len(r.Links) == 0 {
		return
	}

	r.setCursor(min(r.CurrentLink+1, len(r.Links)-1))
}

// RemoveLink removes the link with the given id. Removing the selected link
// advances the cursor to the link that shifted into its slot, or clamps to
// the last remaining link and stops playback when none did.
func (r *Room) RemoveLink(linkId string) error {
	index, ok := r.indexOfId(linkId)
	if !ok {
		return ErrLinkNotFound
	}

	r.Links = append(r.Links[:index], r.Links[index+1:]...)

	switch {
	case len(r.Links) == 0:
		r.CurrentLink = 0
		r.CurrentTime = 0
		r.Playing = false
	case index < r.CurrentLink:
		r.CurrentLink--
		r.markCurrent()
	case index == r.CurrentLink:
		r.setCursor(min(r.CurrentLink, len(r.Links)-1))
	default:
		r.markCurrent()
	}

	return nil
}

func (r *Room) CurrentLinkUrl() string {
	if len(r.Links) == 0 {
		return ""
	}

	return r.Links[r.CurrentLink].Url
}

func (r *Room) AppendMessage(text string) {
	r.Messages = append(r.Messages, text)
}

func (r *Room) SetPlaying(playing bool) {
	r.Playing = playing
}

func (r *Room) SetCurrentTime(time float64) {
	r.CurrentTime = max(time, 0)
}

// Clone returns a deep copy detached from the receiver's slices.
func (r *Room) Clone() *Room {
	clone := *r
	clone.Links = make([]Link, len(r.Links))
	copy(clone.Links, r.Links)
	clone.Messages = make([]string, len(r.Messages))
	copy(clone.Messages, r.Messages)

	return &clone
}

func (r *Room) Snapshot() Snapshot {
	links := make([]Link, len(r.Links))
	copy(links, r.Links)

	messages := make([]string, len(r.Messages))
	copy(messages, r.Messages)

	return Snapshot{
		Id:          r.Id,
		Links:       links,
		CurrentLink: r.CurrentLinkUrl(),
		CurrentTime: r.CurrentTime,
		Messages:    messages,
		Playing:     r.Playing,
	}
}
