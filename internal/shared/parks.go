package shared

import "millcreek_parks/internal/domain"

// Parks is the static catalog the map surfaces are built around. Reviews
// associate with an entry by park name equality.
var Parks = []domain.Park{
	{
		ID:          "mcsp",
		Name:        "Mill Creek Sports Park",
		Lat:         47.8608,
		Lon:         -122.2133,
		Description: "This large sports complex features baseball fields, soccer fields, and a playground area.",
	},
	{
		ID:          "ntcp",
		Name:        "North Creek Trail Park",
		Lat:         47.8550,
		Lon:         -122.2044,
		Description: "Linear park with walking and biking trails that follows North Creek through Mill Creek.",
	},
	{
		ID:          "mcp",
		Name:        "Mill Creek Park",
		Lat:         47.8629,
		Lon:         -122.2067,
		Description: "Central community park with playground, picnic areas, and open space for events.",
	},
	{
		ID:          "hmp",
		Name:        "Heron Meadows Park",
		Lat:         47.8440,
		Lon:         -122.2189,
		Description: "Natural wetland park with boardwalks and viewing areas for wildlife observation.",
	},
	{
		ID:          "bwp",
		Name:        "Buffalo Park",
		Lat:         47.8513,
		Lon:         -122.2236,
		Description: "Small neighborhood park with playground and basketball courts.",
	},
	{
		ID:          "psp",
		Name:        "Pine Meadow Park",
		Lat:         47.8566,
		Lon:         -122.2201,
		Description: "Forested park with trails, picnic areas, and natural play elements.",
	},
}

// ParkByID returns nil when the id is not in the catalog.
func ParkByID(id string) *domain.Park {
	for i := range Parks {
		if Parks[i].ID == id {
			return &Parks[i]
		}
	}
	return nil
}

// ParkByName matches on the denormalized name reviews are stored under.
func ParkByName(name string) *domain.Park {
	for i := range Parks {
		if Parks[i].Name == name {
			return &Parks[i]
		}
	}
	return nil
}
