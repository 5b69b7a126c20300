// Package types holds the flat domain records shared across the platform.
// Records are externally supplied (catalog seeds or persisted client state)
// and carry no behavior beyond serialization.
package types

// Artist is a roster entry.
type Artist struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Genre    string  `json:"genre"`
	Bio      string  `json:"bio"`
	ImageURL string  `json:"image_url"`
	Socials  Socials `json:"socials"`
}

// Socials are optional outbound profile links.
type Socials struct {
	Instagram string `json:"instagram,omitempty"`
	Spotify   string `json:"spotify,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// TeamMember is a leadership profile.
type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

// ReleaseType distinguishes vault entries.
type ReleaseType string

const (
	ReleaseAlbum  ReleaseType = "album"
	ReleaseSingle ReleaseType = "single"
	ReleaseEP     ReleaseType = "ep"
)

// Release is a vault catalog entry.
type Release struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	ArtistID    string      `json:"artist_id"`
	ArtistName  string      `json:"artist_name"`
	ReleaseDate string      `json:"release_date"`
	CoverURL    string      `json:"cover_url"`
	Type        ReleaseType `json:"type"`
}

// Track is a playable playlist entry.
type Track struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ArtistName  string `json:"artist_name"`
	Duration    string `json:"duration"`
	AudioURL    string `json:"audio_url"`
	CoverURL    string `json:"cover_url"`
	ReleaseDate string `json:"release_date"`
}

// VaultEntry is a release grouped with its playable tracks.
type VaultEntry struct {
	Release
	Tracks []Track `json:"tracks"`
}

// LabelEvent is a scheduled public event.
type LabelEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	TicketURL string `json:"ticket_url"`
}

// Currency is a display/settlement denomination. No conversion exists
// between the two; prices carry both denominations independently.
type Currency string

const (
	CurrencyUGX Currency = "UGX"
	CurrencyUSD Currency = "USD"
)

// StoreCategory classifies store items.
type StoreCategory string

const (
	CategoryBeats StoreCategory = "beats"
	CategorySongs StoreCategory = "songs"
	CategoryMerch StoreCategory = "merch"
	CategoryGear  StoreCategory = "gear"
)

// StoreItem is a purchasable catalog entry with dual-denominated pricing.
type StoreItem struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     StoreCategory `json:"category"`
	PriceUGX     int64         `json:"price_ugx"`
	PriceUSD     int64         `json:"price_usd"`
	ImageURL     string        `json:"image_url"`
	Description  string        `json:"description"`
	Customizable bool          `json:"customizable,omitempty"`
}

// CartItem is a store item plus a quantity. Quantity is always >= 1;
// removal deletes the entry rather than decrementing to zero.
type CartItem struct {
	StoreItem
	Quantity int `json:"quantity"`
}

// GalleryCategory classifies gallery items.
type GalleryCategory string

const (
	GalleryStudio    GalleryCategory = "studio"
	GalleryEvent     GalleryCategory = "event"
	GalleryLifestyle GalleryCategory = "lifestyle"
)

// GalleryItem is a visual archive entry.
type GalleryItem struct {
	ID       string          `json:"id"`
	ImageURL string          `json:"image_url"`
	Title    string          `json:"title"`
	Category GalleryCategory `json:"category"`
}

// DistributionFeature is an entry on the distribution page.
type DistributionFeature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DistributionTier names the two distribution pricing protocols.
type DistributionTier string

const (
	// TierElite is paid per release; the artist keeps all royalties.
	TierElite DistributionTier = "elite"
	// TierPartnership is free with an 85/15 artist/label royalty share.
	TierPartnership DistributionTier = "partnership"
)

// User is the authenticated client identity.
type User struct {
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// DemoFeedback is the structured result of a demo submission evaluation.
type DemoFeedback struct {
	// Potential is a percentage in [0, 100].
	Potential int    `json:"potential"`
	Feedback  string `json:"feedback"`
	Vibe      string `json:"vibe"`
}
