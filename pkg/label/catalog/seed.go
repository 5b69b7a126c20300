package catalog

import "github.com/borex256/century-music-empire/pkg/core/types"

// Seed is the label's canonical catalog. The memory store serves it
// directly and the Postgres migrations load the same rows.
type Seed struct {
	Artists              []types.Artist
	Team                 []types.TeamMember
	Releases             []types.Release
	Playlist             []types.Track
	Events               []types.LabelEvent
	Gallery              []types.GalleryItem
	Items                []types.StoreItem
	DistributionFeatures []types.DistributionFeature
}

// DefaultSeed returns the shipped label data.
func DefaultSeed() Seed {
	return Seed{
		Artists: []types.Artist{
			{
				ID:       "kimcug",
				Name:     "KIM C UG",
				Genre:    "Afro-Pop / Urban Excellence",
				Bio:      `The cornerstone of Century Music Empire. KIM C UG defines the modern sound of the continent with global appeal and uncompromising style. Known for "I Propose To You", he blends traditional rhythms with futuristic production.`,
				ImageURL: "https://images.unsplash.com/photo-1539571696357-5a69c17a67c6?q=80&w=1200&h=800&auto=format&fit=crop",
				Socials:  types.Socials{Instagram: "#", Spotify: "#", Twitter: "#"},
			},
			{
				ID:       "luna",
				Name:     "LUNA VOID",
				Genre:    "Synthwave / Dream Pop",
				Bio:      "Atmospheric soundscapes that blend 80s nostalgia with futuristic production. Luna Void is the ethereal voice of the Empire.",
				ImageURL: "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?q=80&w=1200&h=800&auto=format&fit=crop",
				Socials:  types.Socials{Instagram: "#", Spotify: "#", Twitter: "#"},
			},
			{
				ID:       "kinetic",
				Name:     "THE KINETIC PROJECT",
				Genre:    "Progressive Electronic",
				Bio:      "Heavy rhythms meet intricate melodies. The Kinetic Project represents the high-energy pulse of the Empire's underground circuit.",
				ImageURL: "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?q=80&w=1200&h=800&auto=format&fit=crop",
				Socials:  types.Socials{Instagram: "#", Spotify: "#"},
			},
		},
		Team: []types.TeamMember{
			{
				ID:       "eddy",
				Name:     "EDDY KIYOYO",
				Role:     "Co-Founder & CEO",
				Bio:      "The strategic visionary behind Century Music Empire. Eddy Kiyoyo oversees global operations and expansion into new territories.",
				ImageURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?q=80&w=400&h=400&auto=format&fit=crop",
			},
			{
				ID:       "kim",
				Name:     "KIM C UG",
				Role:     "Co-Founder & Creative Director",
				Bio:      "Balancing artistic brilliance with executive leadership, Kim ensures the Empire's sonic standard remains unmatched.",
				ImageURL: "https://images.unsplash.com/photo-1539571696357-5a69c17a67c6?q=80&w=400&h=400&auto=format&fit=crop",
			},
			{
				ID:       "rapking",
				Name:     "RAPKING256",
				Role:     "Head of Digital Strategy",
				Bio:      "The architect of the Empire's online footprint. Rapking256 manages global distribution and social resonance.",
				ImageURL: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?q=80&w=400&h=400&auto=format&fit=crop",
			},
		},
		Releases: []types.Release{
			{
				ID:          "kc-propose",
				Title:       "I PROPOSE TO YOU",
				ArtistID:    "kimcug",
				ArtistName:  "KIM C UG",
				ReleaseDate: "2024-05-20",
				CoverURL:    "https://images.unsplash.com/photo-1514525253361-bee8718a7439?q=80&w=800&h=800&auto=format&fit=crop",
				Type:        types.ReleaseSingle,
			},
			{
				ID:          "kc-dynasty",
				Title:       "DYNASTY",
				ArtistID:    "kimcug",
				ArtistName:  "KIM C UG",
				ReleaseDate: "2024-02-14",
				CoverURL:    "https://images.unsplash.com/photo-1614613535308-eb5fbd3d2c17?q=80&w=800&h=800&auto=format&fit=crop",
				Type:        types.ReleaseAlbum,
			},
			{
				ID:          "lv-neon",
				Title:       "NEON DREAMS",
				ArtistID:    "luna",
				ArtistName:  "LUNA VOID",
				ReleaseDate: "2024-03-15",
				CoverURL:    "https://images.unsplash.com/photo-1459749411177-042180ce673c?q=80&w=800&h=800&auto=format&fit=crop",
				Type:        types.ReleaseAlbum,
			},
		},
		Playlist: []types.Track{
			{
				ID:          "tkc-propose",
				Title:       "I PROPOSE TO YOU",
				ArtistName:  "KIM C UG",
				Duration:    "3:45",
				AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
				CoverURL:    "https://images.unsplash.com/photo-1514525253361-bee8718a7439?q=80&w=100&h=100&auto=format&fit=crop",
				ReleaseDate: "2025",
			},
			{
				ID:          "tkc1",
				Title:       "KANDYE EZANGE",
				ArtistName:  "KIM C UG",
				Duration:    "3:20",
				AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3",
				CoverURL:    "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?q=80&w=100&h=100&auto=format&fit=crop",
				ReleaseDate: "2024",
			},
		},
		Events: []types.LabelEvent{
			{
				ID:        "e1",
				Title:     "EMPIRE NIGHT: KIM C UG LIVE",
				Location:  "Century Arena, Kampala",
				Date:      "JUNE 28, 2025",
				Time:      "20:00",
				TicketURL: "#",
			},
		},
		Gallery: []types.GalleryItem{
			{ID: "g1", ImageURL: "https://api.typedream.com/v1/image/public/7e29b109-00f7-418b-a337-376516629737_image_png", Title: "IMPERIAL PRESS OPS", Category: types.GalleryLifestyle},
			{ID: "g2", ImageURL: "https://api.typedream.com/v1/image/public/9f38102a-360d-451f-b514-46c556f8f170_image_png", Title: "STUDIO A FREQUENCIES", Category: types.GalleryStudio},
			{ID: "g3", ImageURL: "https://api.typedream.com/v1/image/public/691d1466-419b-43d7-a5ca-069004863864_image_png", Title: "KIM C UG: TERMINAL V", Category: types.GalleryLifestyle},
			{ID: "g5", ImageURL: "https://api.typedream.com/v1/image/public/a721df34-297c-4861-ae02-140660613271_image_jpg", Title: "KIM C UG LIVE: EMPIRE NIGHT", Category: types.GalleryEvent},
			{ID: "g13", ImageURL: "https://api.typedream.com/v1/image/public/2b16e459-f831-4191-8848-03886b361a7a_image_jpg", Title: "SOUND BOX RECORDS PROMO", Category: types.GalleryStudio},
		},
		Items: []types.StoreItem{
			{
				ID:          "shirt-1",
				Name:        "EMPIRE SIGNATURE TEE",
				Category:    types.CategoryMerch,
				PriceUGX:    50000,
				PriceUSD:    15,
				ImageURL:    "https://images.unsplash.com/photo-1521572267360-ee0c2909d518?q=80&w=800&h=800&auto=format&fit=crop",
				Description: "Heavyweight cotton featuring the Century Music Empire seal. A standard for the street and the studio.",
			},
			{
				ID:          "phones-1",
				Name:        "EMPIRE PRO MONITORS",
				Category:    types.CategoryGear,
				PriceUGX:    950000,
				PriceUSD:    250,
				ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?q=80&w=800&h=800&auto=format&fit=crop",
				Description: "Reference-grade monitoring headphones designed for precision engineering.",
			},
		},
		DistributionFeatures: []types.DistributionFeature{
			{ID: "df1", Title: "150+ STREAMING SITES", Description: "Immediate deployment to Spotify, Apple, Tidal, Audiomack, and 150+ global platforms.", Icon: "🌐"},
			{ID: "df2", Title: "ELITE PROTOCOL", Description: "Pay 50,000 UGX per release and retain 100% of your royalties.", Icon: "💰"},
			{ID: "df3", Title: "PARTNERSHIP PROTOCOL", Description: "Distribute for FREE with an 85% to 15% royalty share (Artist/Label).", Icon: "🤝"},
			{ID: "df4", Title: "RIGHTS PROTECTION", Description: "Rigid IP protection and royalty tracking for every single stream.", Icon: "🛡️"},
		},
	}
}
