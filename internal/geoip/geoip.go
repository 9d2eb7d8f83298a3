// Package geoip resolves source IP addresses to a coarse location. The
// applicability check only needs the continent code.
package geoip

import "context"

// Location is the resolved geography of an IP address.
type Location struct {
	ContinentCode string
	CountryCode   string
}

// Resolver maps an IP address to its location.
//
//go:generate mockgen -source=geoip.go -destination=mocks/resolver.go -package=mocks
type Resolver interface {
	Resolve(ctx context.Context, ip string) (Location, error)
}
