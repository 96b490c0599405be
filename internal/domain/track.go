package domain

import "time"

// Track is the local copy of one liked item, unique per (UserID, ExternalID).
type Track struct {
	UserID     string    `db:"user_id"`
	ExternalID string    `db:"external_id"`
	Title      string    `db:"title"`
	ArtistName string    `db:"artist_name"`
	AlbumName  *string   `db:"album_name"`
	ArtistIDs  []string  `db:"-"` // primary artist first
	AddedAt    time.Time `db:"added_at"`
	Genre      *string   `db:"genre"`
	LastRunID  string    `db:"last_seen_run_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// TrackGenre pairs a stored track with its current genre.
type TrackGenre struct {
	ExternalID string `db:"external_id"`
	Genre      string `db:"genre"`
}

// Page is one page of the upstream liked-tracks collection.
type Page struct {
	Items []Track
	// Size counts every upstream entry on the page, including entries that
	// could not be converted into a Track. The next page starts at Offset+Size.
	Size    int
	Offset  int
	Total   int
	HasNext bool
}
