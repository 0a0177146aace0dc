package models

// Item is a media item as returned by searches and library listings. Only
// the fields used by the command line are decoded.
type Item struct {
	Name            string   `json:"Name"`
	ID              string   `json:"Id"`
	Type            string   `json:"Type"`
	Path            string   `json:"Path,omitempty"`
	CriticRating    *float64 `json:"CriticRating,omitempty"`
	CommunityRating *float64 `json:"CommunityRating,omitempty"`
	OfficialRating  string   `json:"OfficialRating,omitempty"`
	ProductionYear  int      `json:"ProductionYear,omitempty"`
	PremiereDate    string   `json:"PremiereDate,omitempty"`
	DateCreated     string   `json:"DateCreated,omitempty"`
	RunTimeTicks    int64    `json:"RunTimeTicks,omitempty"`
	Genres          []string `json:"Genres,omitempty"`
	HasSubtitles    bool     `json:"HasSubtitles,omitempty"`
	Width           int      `json:"Width,omitempty"`
	Height          int      `json:"Height,omitempty"`
}

type ItemQueryResult = QueryResult[Item]

// ImageTypes accepted by the image upload endpoint.
var ImageTypes = []string{
	"Primary",
	"Art",
	"Backdrop",
	"Banner",
	"Logo",
	"Thumb",
	"Disc",
	"Box",
	"Screenshot",
	"Menu",
	"BoxRear",
	"Profile",
}
