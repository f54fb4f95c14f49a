// Package catalog holds the static listing registry and host directory.
// Both are read-only at runtime: they are loaded once at startup from a
// YAML catalog file and never mutated afterwards, so lookups need no
// locking.
package catalog

import (
	"fmt"
	"strings"

	"stayloft/models"

	"github.com/spf13/viper"
)

// ListingRegistry resolves bookable units.
type ListingRegistry interface {
	// Listing returns the listing with the given ID, or nil.
	Listing(id string) *models.Listing
	// Listings returns every listing in the catalog.
	Listings() []models.Listing
}

// HostDirectory resolves host identities, ownership, and payment routing.
type HostDirectory interface {
	// HostByID returns the host with the given ID, or nil.
	HostByID(id string) *models.Host
	// HostByEmail returns the host with the given email, or nil.
	HostByEmail(email string) *models.Host
	// HostBySiteKey returns the host serving the given property site, or nil.
	HostBySiteKey(siteKey string) *models.Host
	// OwnerOf returns the host owning the given listing, or nil. Each
	// listing has exactly one owner; the catalog loader rejects files
	// that claim otherwise.
	OwnerOf(listingID string) *models.Host
	// Hosts returns every host in the directory.
	Hosts() []models.Host
}

// Catalog implements ListingRegistry and HostDirectory.
type Catalog struct {
	listings map[string]models.Listing
	hosts    map[string]models.Host
	byEmail  map[string]string // lowercased email -> host ID
	bySite   map[string]string // site key -> host ID
	owners   map[string]string // listing ID -> host ID
}

type catalogFile struct {
	Listings []models.Listing `mapstructure:"listings"`
	Hosts    []models.Host    `mapstructure:"hosts"`
}

// Load reads and validates the catalog file at the given path.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return build(file)
}

// New builds a catalog directly from listing and host values, applying
// the same validation as Load. Useful for tests and embedded setups.
func New(listings []models.Listing, hosts []models.Host) (*Catalog, error) {
	return build(catalogFile{Listings: listings, Hosts: hosts})
}

func build(file catalogFile) (*Catalog, error) {
	cat := &Catalog{
		listings: make(map[string]models.Listing),
		hosts:    make(map[string]models.Host),
		byEmail:  make(map[string]string),
		bySite:   make(map[string]string),
		owners:   make(map[string]string),
	}

	for _, l := range file.Listings {
		if l.ID == "" {
			return nil, fmt.Errorf("catalog listing with empty id")
		}
		if _, dup := cat.listings[l.ID]; dup {
			return nil, fmt.Errorf("duplicate listing id %q in catalog", l.ID)
		}
		if l.Currency == "" {
			l.Currency = "usd"
		}
		cat.listings[l.ID] = l
	}

	for _, h := range file.Hosts {
		if h.ID == "" {
			return nil, fmt.Errorf("catalog host with empty id")
		}
		if _, dup := cat.hosts[h.ID]; dup {
			return nil, fmt.Errorf("duplicate host id %q in catalog", h.ID)
		}
		for _, listingID := range h.ListingIDs {
			if _, ok := cat.listings[listingID]; !ok {
				return nil, fmt.Errorf("host %q claims unknown listing %q", h.ID, listingID)
			}
			if owner, claimed := cat.owners[listingID]; claimed {
				return nil, fmt.Errorf("listing %q claimed by both host %q and host %q", listingID, owner, h.ID)
			}
			cat.owners[listingID] = h.ID
		}
		if h.Email != "" {
			cat.byEmail[strings.ToLower(h.Email)] = h.ID
		}
		if h.SiteKey != "" {
			cat.bySite[h.SiteKey] = h.ID
		}
		cat.hosts[h.ID] = h
	}

	return cat, nil
}

// Listing returns the listing with the given ID, or nil.
func (c *Catalog) Listing(id string) *models.Listing {
	l, ok := c.listings[id]
	if !ok {
		return nil
	}
	return &l
}

// Listings returns every listing in the catalog.
func (c *Catalog) Listings() []models.Listing {
	out := make([]models.Listing, 0, len(c.listings))
	for _, l := range c.listings {
		out = append(out, l)
	}
	return out
}

// HostByID returns the host with the given ID, or nil.
func (c *Catalog) HostByID(id string) *models.Host {
	h, ok := c.hosts[id]
	if !ok {
		return nil
	}
	return &h
}

// HostByEmail returns the host with the given email, or nil.
func (c *Catalog) HostByEmail(email string) *models.Host {
	id, ok := c.byEmail[strings.ToLower(email)]
	if !ok {
		return nil
	}
	return c.HostByID(id)
}

// HostBySiteKey returns the host serving the given property site, or nil.
func (c *Catalog) HostBySiteKey(siteKey string) *models.Host {
	id, ok := c.bySite[siteKey]
	if !ok {
		return nil
	}
	return c.HostByID(id)
}

// OwnerOf returns the host owning the given listing, or nil.
func (c *Catalog) OwnerOf(listingID string) *models.Host {
	id, ok := c.owners[listingID]
	if !ok {
		return nil
	}
	return c.HostByID(id)
}

// Hosts returns every host in the directory.
func (c *Catalog) Hosts() []models.Host {
	out := make([]models.Host, 0, len(c.hosts))
	for _, h := range c.hosts {
		out = append(out, h)
	}
	return out
}
