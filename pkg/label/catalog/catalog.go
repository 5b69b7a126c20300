// Package catalog serves the label's public data: roster, releases,
// playlist, team, events, gallery, store inventory, and the
// distribution page. Two stores exist with identical semantics: an
// in-memory seed for development and a Postgres store for deployment.
package catalog

import (
	"context"

	"github.com/borex256/century-music-empire/pkg/core/types"
)

// FilterAll selects every entry where a category or artist filter is
// accepted.
const FilterAll = "all"

// Store is the read surface over the label catalog.
type Store interface {
	Artists(ctx context.Context) ([]types.Artist, error)
	Artist(ctx context.Context, id string) (*types.Artist, error)
	Team(ctx context.Context) ([]types.TeamMember, error)
	Releases(ctx context.Context) ([]types.Release, error)
	Playlist(ctx context.Context) ([]types.Track, error)
	Events(ctx context.Context) ([]types.LabelEvent, error)

	// Gallery filters by category; FilterAll returns everything.
	Gallery(ctx context.Context, category string) ([]types.GalleryItem, error)

	// Items filters store inventory by category; FilterAll returns
	// everything.
	Items(ctx context.Context, category string) ([]types.StoreItem, error)
	Item(ctx context.Context, id string) (*types.StoreItem, error)

	DistributionFeatures(ctx context.Context) ([]types.DistributionFeature, error)

	// Vault returns releases grouped with their playable tracks,
	// optionally filtered to one artist name. FilterAll keeps all.
	Vault(ctx context.Context, artistName string) ([]types.VaultEntry, error)
}

// GroupVault attaches playlist tracks to releases. A track belongs to
// a release when the artist matches and either the titles match or the
// release is an album, in which case every track of that artist rides
// along.
func GroupVault(releases []types.Release, tracks []types.Track, artistName string) []types.VaultEntry {
	entries := make([]types.VaultEntry, 0, len(releases))
	for _, release := range releases {
		if artistName != "" && artistName != FilterAll && release.ArtistName != artistName {
			continue
		}
		entry := types.VaultEntry{Release: release}
		for _, track := range tracks {
			if track.ArtistName != release.ArtistName {
				continue
			}
			if track.Title == release.Title || release.Type == types.ReleaseAlbum {
				entry.Tracks = append(entry.Tracks, track)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
