package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
)

// DB is the database surface used by [Postgres]. Both *pgxpool.Pool and
// *pgx.Conn satisfy it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres is a [Store] backed by PostgreSQL. Structured sub-fields
// (artist socials) are stored as JSONB. The schema is managed by
// [Migrate].
type Postgres struct {
	db DB
}

var _ Store = (*Postgres)(nil)

// NewPostgres wraps an existing connection or pool. The caller runs
// [Migrate] before issuing queries.
func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Artists(ctx context.Context) ([]types.Artist, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, genre, bio, image_url, socials
		FROM artists ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: artists: %w", err)
	}
	defer rows.Close()

	var out []types.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, artist)
	}
	return out, rows.Err()
}

func (s *Postgres) Artist(ctx context.Context, id string) (*types.Artist, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, genre, bio, image_url, socials
		FROM artists WHERE id = $1`, id)
	artist, err := scanArtist(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.NewNotFoundError("artist not found: " + id)
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func scanArtist(row pgx.Row) (types.Artist, error) {
	var artist types.Artist
	var socials []byte
	if err := row.Scan(&artist.ID, &artist.Name, &artist.Genre, &artist.Bio, &artist.ImageURL, &socials); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Artist{}, err
		}
		return types.Artist{}, fmt.Errorf("catalog: scan artist: %w", err)
	}
	if len(socials) > 0 {
		if err := json.Unmarshal(socials, &artist.Socials); err != nil {
			return types.Artist{}, fmt.Errorf("catalog: decode socials for %s: %w", artist.ID, err)
		}
	}
	return artist, nil
}

func (s *Postgres) Team(ctx context.Context) ([]types.TeamMember, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, role, bio, image_url
		FROM team_members ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: team: %w", err)
	}
	defer rows.Close()

	var out []types.TeamMember
	for rows.Next() {
		var m types.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.ImageURL); err != nil {
			return nil, fmt.Errorf("catalog: scan team member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Postgres) Releases(ctx context.Context) ([]types.Release, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, artist_id, artist_name, release_date, cover_url, release_type
		FROM releases ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: releases: %w", err)
	}
	defer rows.Close()

	var out []types.Release
	for rows.Next() {
		var r types.Release
		if err := rows.Scan(&r.ID, &r.Title, &r.ArtistID, &r.ArtistName, &r.ReleaseDate, &r.CoverURL, &r.Type); err != nil {
			return nil, fmt.Errorf("catalog: scan release: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Postgres) Playlist(ctx context.Context) ([]types.Track, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, artist_name, duration, audio_url, cover_url, release_date
		FROM tracks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: playlist: %w", err)
	}
	defer rows.Close()

	var out []types.Track
	for rows.Next() {
		var t types.Track
		if err := rows.Scan(&t.ID, &t.Title, &t.ArtistName, &t.Duration, &t.AudioURL, &t.CoverURL, &t.ReleaseDate); err != nil {
			return nil, fmt.Errorf("catalog: scan track: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Postgres) Events(ctx context.Context) ([]types.LabelEvent, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, location, event_date, event_time, ticket_url
		FROM label_events ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: events: %w", err)
	}
	defer rows.Close()

	var out []types.LabelEvent
	for rows.Next() {
		var e types.LabelEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Location, &e.Date, &e.Time, &e.TicketURL); err != nil {
			return nil, fmt.Errorf("catalog: scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Postgres) Gallery(ctx context.Context, category string) ([]types.GalleryItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, image_url, title, category
		FROM gallery_items
		WHERE $1 = '' OR $1 = 'all' OR category = $1
		ORDER BY position`, category)
	if err != nil {
		return nil, fmt.Errorf("catalog: gallery: %w", err)
	}
	defer rows.Close()

	var out []types.GalleryItem
	for rows.Next() {
		var g types.GalleryItem
		if err := rows.Scan(&g.ID, &g.ImageURL, &g.Title, &g.Category); err != nil {
			return nil, fmt.Errorf("catalog: scan gallery item: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Postgres) Items(ctx context.Context, category string) ([]types.StoreItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, category, price_ugx, price_usd, image_url, description, customizable
		FROM store_items
		WHERE $1 = '' OR $1 = 'all' OR category = $1
		ORDER BY position`, category)
	if err != nil {
		return nil, fmt.Errorf("catalog: items: %w", err)
	}
	defer rows.Close()

	var out []types.StoreItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Postgres) Item(ctx context.Context, id string) (*types.StoreItem, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, category, price_ugx, price_usd, image_url, description, customizable
		FROM store_items WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.NewNotFoundError("store item not found: " + id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanItem(row pgx.Row) (types.StoreItem, error) {
	var item types.StoreItem
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.PriceUGX, &item.PriceUSD,
		&item.ImageURL, &item.Description, &item.Customizable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.StoreItem{}, err
		}
		return types.StoreItem{}, fmt.Errorf("catalog: scan store item: %w", err)
	}
	return item, nil
}

func (s *Postgres) DistributionFeatures(ctx context.Context) ([]types.DistributionFeature, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, description, icon
		FROM distribution_features ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: distribution features: %w", err)
	}
	defer rows.Close()

	var out []types.DistributionFeature
	for rows.Next() {
		var f types.DistributionFeature
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.Icon); err != nil {
			return nil, fmt.Errorf("catalog: scan distribution feature: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Vault groups in Go rather than SQL so both stores share the exact
// same grouping rule.
func (s *Postgres) Vault(ctx context.Context, artistName string) ([]types.VaultEntry, error) {
	releases, err := s.Releases(ctx)
	if err != nil {
		return nil, err
	}
	tracks, err := s.Playlist(ctx)
	if err != nil {
		return nil, err
	}
	return GroupVault(releases, tracks, artistName), nil
}
