package domain

// Station is the fixed identity of an upstream weather station. The two
// scalar feeds carry no station metadata at all, so their identities come
// from a configuration table keyed by source tag; the nested feed ships a
// station directory inline.
type Station struct {
	ID        string  `json:"station_id"`
	Name      string  `json:"station_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// Stamp denormalizes the station identity onto an observation record.
func (s Station) Stamp(rec Record) {
	rec["station_id"] = s.ID
	rec["station_name"] = s.Name
	rec["latitude"] = s.Latitude
	rec["longitude"] = s.Longitude
	rec["elevation"] = s.Elevation
}
