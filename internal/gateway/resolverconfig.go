// internal/gateway/resolverconfig.go
// Region-based path selection for the Config Loader (spec §4.1 step 1 and
// §6 "Regional selection config"). Vendor/build config files and the
// default paths are compile-time constants in the original source; here
// they are fields on ResolverConfig so tests and deployments can override
// them without rebuilding.
package gateway

import (
	"encoding/json"
	"os"

	"github.com/rdkcentral/appgateway/internal/logging"
)

// ResolverConfig describes where the Config Loader should look for the
// resolution table and, optionally, the regional-selection document that
// expands it per effective country code.
type ResolverConfig struct {
	// BasePaths is used directly when RegionConfigPath is empty, or as the
	// last-resort fallback when a region file exists but parsing/matching
	// fails entirely.
	BasePaths []string

	// RegionConfigPath, if non-empty, points at a regions.json document
	// (spec §6 "Regional selection config").
	RegionConfigPath string

	// VendorConfigPath and BuildConfigPath point at JSON files whose
	// top-level "country" key yields the effective country code, checked
	// in that order before falling back to the region file's
	// defaultCountryCode.
	VendorConfigPath string
	BuildConfigPath  string
}

// ResolvePaths implements spec §4.1 step 1: derive the effective country
// code, then expand to the matching region's path list. When no region
// config is configured (or unreadable), BasePaths is returned unchanged.
func (c ResolverConfig) ResolvePaths() []string {
	if c.RegionConfigPath == "" {
		return c.BasePaths
	}

	data, err := os.ReadFile(c.RegionConfigPath)
	if err != nil {
		logging.Sugar().Warnw("resolverconfig: region file unreadable, using base paths", "path", c.RegionConfigPath, "err", err)
		return c.BasePaths
	}

	var region regionFile
	if err := json.Unmarshal(data, &region); err != nil {
		logging.Sugar().Warnw("resolverconfig: region file unparseable, using base paths", "path", c.RegionConfigPath, "err", err)
		return c.BasePaths
	}

	country := c.effectiveCountryCode(region.DefaultCountryCode)
	base := ""
	if len(c.BasePaths) > 0 {
		base = c.BasePaths[0]
	}
	return region.resolvePaths(country, base)
}

// effectiveCountryCode reads the vendor config, then the build config, then
// falls back to defaultCountryCode (spec §4.1 step 1).
func (c ResolverConfig) effectiveCountryCode(defaultCountryCode string) string {
	if cc, ok := readCountryCode(c.VendorConfigPath); ok {
		return cc
	}
	if cc, ok := readCountryCode(c.BuildConfigPath); ok {
		return cc
	}
	return defaultCountryCode
}

func readCountryCode(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var doc struct {
		Country string `json:"country"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.Country == "" {
		return "", false
	}
	return doc.Country, true
}
