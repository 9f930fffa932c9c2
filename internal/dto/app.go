package dto

import "shortlink-qr/internal/geo"

type AppInfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type GeoResponse struct {
	Geo geo.Location `json:"geo"`
	IP  string       `json:"ip"`
}
