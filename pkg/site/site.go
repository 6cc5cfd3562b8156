// Package site exposes the global site settings consumed by the settings
// projector (site name and slogan tokens).
package site

// Provider returns site-wide values. Implementations are expected to be
// cheap; they are called once per projection.
type Provider interface {
	Name() string
	Slogan() string
}

// Static is a fixed Provider, typically built from configuration.
type Static struct {
	SiteName   string `json:"name" yaml:"name"`
	SiteSlogan string `json:"slogan" yaml:"slogan"`
}

// Name implements Provider.
func (s Static) Name() string { return s.SiteName }

// Slogan implements Provider.
func (s Static) Slogan() string { return s.SiteSlogan }
