// internal/gateway/resolution.go
// Resolution is one row of the Method Resolver's table (spec §3/§4.1/§4.2)
// and resolutionFile/regionFile mirror the on-disk JSON shapes from spec §6.
package gateway

import (
	"encoding/json"
	"strings"
)

// Resolution binds a request method to downstream routing metadata.
type Resolution struct {
	Alias             string          `json:"alias"`
	Event             string          `json:"event,omitempty"`
	PermissionGroup   string          `json:"permissionGroup,omitempty"`
	AdditionalContext json.RawMessage `json:"additionalContext,omitempty"`
	IncludeContext    bool            `json:"includeContext"`
	UseComRPC         bool            `json:"useComRpc"`
}

// UnmarshalJSON applies spec §6's documented defaults: when includeContext
// or useComRpc are absent from the document, each defaults to whether
// additionalContext is present, rather than to the JSON-standard false.
func (r *Resolution) UnmarshalJSON(data []byte) error {
	type alias struct {
		Alias             string          `json:"alias"`
		Event             string          `json:"event,omitempty"`
		PermissionGroup   string          `json:"permissionGroup,omitempty"`
		AdditionalContext json.RawMessage `json:"additionalContext,omitempty"`
		IncludeContext    *bool           `json:"includeContext"`
		UseComRPC         *bool           `json:"useComRpc"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	hasAdditionalContext := len(a.AdditionalContext) > 0
	r.Alias = a.Alias
	r.Event = a.Event
	r.PermissionGroup = a.PermissionGroup
	r.AdditionalContext = a.AdditionalContext
	if a.IncludeContext != nil {
		r.IncludeContext = *a.IncludeContext
	} else {
		r.IncludeContext = hasAdditionalContext
	}
	if a.UseComRPC != nil {
		r.UseComRPC = *a.UseComRPC
	} else {
		r.UseComRPC = hasAdditionalContext
	}
	return nil
}

// resolutionFile is the top-level shape of one resolution JSON document.
type resolutionFile struct {
	Resolutions map[string]Resolution `json:"resolutions"`
}

// regionFile is the top-level shape of the optional regional-selection
// document: it expands to a list of resolution file paths based on the
// effective country code.
type regionFile struct {
	DefaultCountryCode string      `json:"defaultCountryCode"`
	Regions            []regionRow `json:"regions"`
}

type regionRow struct {
	CountryCodes []string `json:"countryCodes"`
	Paths        []string `json:"paths"`
}

// resolvePaths expands a regionFile to the paths list for countryCode,
// falling back to the file's default country, and finally to basePath if
// neither matches any region.
func (rf *regionFile) resolvePaths(countryCode, basePath string) []string {
	if paths, ok := rf.pathsForCountry(countryCode); ok {
		return paths
	}
	if countryCode != rf.DefaultCountryCode {
		if paths, ok := rf.pathsForCountry(rf.DefaultCountryCode); ok {
			return paths
		}
	}
	return []string{basePath}
}

func (rf *regionFile) pathsForCountry(countryCode string) ([]string, bool) {
	cc := strings.ToUpper(countryCode)
	for _, region := range rf.Regions {
		for _, candidate := range region.CountryCodes {
			if strings.ToUpper(candidate) == cc {
				return region.Paths, true
			}
		}
	}
	return nil, false
}

// parseAlias splits "<callsign>.<method>" on the LAST dot. An alias with no
// dot yields callsign=alias, method="" (spec §4.3, §8 boundary behavior).
func parseAlias(alias string) (callsign, method string) {
	idx := strings.LastIndexByte(alias, '.')
	if idx == -1 {
		return alias, ""
	}
	return alias[:idx], alias[idx+1:]
}
