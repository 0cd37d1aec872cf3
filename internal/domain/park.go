package domain

// Park is the aggregation root for review display. The catalog is static
// configuration; the core never mutates it.
type Park struct {
	ID          string
	Name        string
	Lat, Lon    float64
	Description string
}
