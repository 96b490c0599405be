package spotify

// SavedTracksResponse is one page of GET /me/tracks.
type SavedTracksResponse struct {
	Items  []SavedTrack `json:"items"`
	Next   *string      `json:"next"`
	Total  int          `json:"total"`
	Offset int          `json:"offset"`
	Limit  int          `json:"limit"`
}

type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

type Track struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Artists []SimpleArtist `json:"artists"`
	Album   *Album         `json:"album"`
}

type SimpleArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArtistsResponse is GET /artists?ids=... Unknown ids come back as null entries.
type ArtistsResponse struct {
	Artists []*Artist `json:"artists"`
}

type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}
