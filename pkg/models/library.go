package models

type VirtualFolder struct {
	Name            string   `json:"Name"            csv:"name"`
	Locations       []string `json:"Locations"       csv:"-"`
	CollectionType  string   `json:"CollectionType"  csv:"collection_type"`
	ItemID          string   `json:"ItemId"          csv:"id"`
	RefreshStatus   string   `json:"RefreshStatus"   csv:"refresh_status"`
	RefreshProgress float64  `json:"RefreshProgress" csv:"-"`
}

// CollectionTypes accepted when registering a library.
var CollectionTypes = []string{
	"movies",
	"tvshows",
	"music",
	"musicvideos",
	"homevideos",
	"boxsets",
	"books",
	"mixed",
}
