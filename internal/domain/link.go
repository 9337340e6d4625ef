package domain

// Link is one playlist entry. IsPlaying marks the link the room cursor
// points at; at most one link per room carries it.
type Link struct {
	Id        string `json:"id"`
	Url       string `json:"url"`
	IsPlaying bool   `json:"is_playing"`
}
