package catalog

import (
	"context"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
)

// Memory serves a fixed seed. Reads return copies of the slices so
// callers cannot mutate the seed through a result.
type Memory struct {
	seed Seed
}

var _ Store = (*Memory)(nil)

// NewMemory builds a memory store over the given seed.
func NewMemory(seed Seed) *Memory {
	return &Memory{seed: seed}
}

func (m *Memory) Artists(ctx context.Context) ([]types.Artist, error) {
	return append([]types.Artist(nil), m.seed.Artists...), nil
}

func (m *Memory) Artist(ctx context.Context, id string) (*types.Artist, error) {
	for _, artist := range m.seed.Artists {
		if artist.ID == id {
			a := artist
			return &a, nil
		}
	}
	return nil, core.NewNotFoundError("artist not found: " + id)
}

func (m *Memory) Team(ctx context.Context) ([]types.TeamMember, error) {
	return append([]types.TeamMember(nil), m.seed.Team...), nil
}

func (m *Memory) Releases(ctx context.Context) ([]types.Release, error) {
	return append([]types.Release(nil), m.seed.Releases...), nil
}

func (m *Memory) Playlist(ctx context.Context) ([]types.Track, error) {
	return append([]types.Track(nil), m.seed.Playlist...), nil
}

func (m *Memory) Events(ctx context.Context) ([]types.LabelEvent, error) {
	return append([]types.LabelEvent(nil), m.seed.Events...), nil
}

func (m *Memory) Gallery(ctx context.Context, category string) ([]types.GalleryItem, error) {
	var out []types.GalleryItem
	for _, item := range m.seed.Gallery {
		if category == "" || category == FilterAll || string(item.Category) == category {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *Memory) Items(ctx context.Context, category string) ([]types.StoreItem, error) {
	var out []types.StoreItem
	for _, item := range m.seed.Items {
		if category == "" || category == FilterAll || string(item.Category) == category {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *Memory) Item(ctx context.Context, id string) (*types.StoreItem, error) {
	for _, item := range m.seed.Items {
		if item.ID == id {
			it := item
			return &it, nil
		}
	}
	return nil, core.NewNotFoundError("store item not found: " + id)
}

func (m *Memory) DistributionFeatures(ctx context.Context) ([]types.DistributionFeature, error) {
	return append([]types.DistributionFeature(nil), m.seed.DistributionFeatures...), nil
}

func (m *Memory) Vault(ctx context.Context, artistName string) ([]types.VaultEntry, error) {
	return GroupVault(m.seed.Releases, m.seed.Playlist, artistName), nil
}
