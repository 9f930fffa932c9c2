// Package geo resolves client IP addresses to coarse locations.
//
// Lookups are best effort: an unknown, private or malformed address yields an
// empty Location and never an error.
package geo

import (
	"io"
	"net"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
)

type Location struct {
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	Region    string   `json:"countryRegion,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (l Location) Empty() bool {
	return l == Location{}
}

// Locator 由 IP 得到地理位置
type Locator interface {
	Lookup(ip string) Location
}

// Noop 未配置 GeoLite2 数据库时使用
type Noop struct{}

func (Noop) Lookup(string) Location { return Location{} }

type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	io.Closer
}

// MaxMind 基于 GeoLite2-City 数据库的 Locator
type MaxMind struct {
	reader cityReader
	logger *zap.Logger
}

func OpenMaxMind(path string, logger *zap.Logger) (*MaxMind, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &MaxMind{reader: reader, logger: logger}, nil
}

// New 根据数据库路径选择实现；打不开数据库时降级为 Noop
func New(path string, logger *zap.Logger) Locator {
	if path == "" {
		return Noop{}
	}
	mm, err := OpenMaxMind(path, logger)
	if err != nil {
		logger.Warn("GeoIP database unavailable, geolocation disabled",
			zap.String("path", path),
			zap.Error(err),
		)
		return Noop{}
	}
	return mm
}

func (m *MaxMind) Lookup(ip string) Location {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Location{}
	}

	record, err := m.reader.City(parsed)
	if err != nil {
		m.logger.Debug("GeoIP lookup failed", zap.String("ip", ip), zap.Error(err))
		return Location{}
	}

	loc := Location{
		City:     record.City.Names["en"],
		Country:  record.Country.IsoCode,
		Timezone: record.Location.TimeZone,
	}
	if len(record.Subdivisions) > 0 {
		loc.Region = record.Subdivisions[0].IsoCode
	}
	if loc.Country != "" {
		lat, lon := record.Location.Latitude, record.Location.Longitude
		loc.Latitude, loc.Longitude = &lat, &lon
	}
	return loc
}

func (m *MaxMind) Close() error {
	return m.reader.Close()
}
