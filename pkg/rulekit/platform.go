package rulekit

import (
	"maps"
	"slices"
)

// DefaultPlatform is used when the builder is not given a platform.
const DefaultPlatform = "go1.24"

// Platform names the Go release the test module targets.
type Platform struct {
	// Name is the lookup key, e.g. "go1.24".
	Name string

	// GoVersion is written to the go directive of the test module.
	GoVersion string
}

var platforms = map[string]Platform{
	"go1.22": {Name: "go1.22", GoVersion: "1.22"},
	"go1.23": {Name: "go1.23", GoVersion: "1.23"},
	"go1.24": {Name: "go1.24", GoVersion: "1.24"},
	"go1.25": {Name: "go1.25", GoVersion: "1.25"},
}

// LookupPlatform returns the platform registered under name. An empty name
// selects DefaultPlatform.
func LookupPlatform(name string) (Platform, bool) {
	if name == "" {
		name = DefaultPlatform
	}
	p, ok := platforms[name]
	return p, ok
}

// Platforms returns the known platform names in sorted order.
func Platforms() []string {
	return slices.Sorted(maps.Keys(platforms))
}

// BaseReferences returns the reference set of p with nothing added.
func BaseReferences(p Platform) ReferenceSet {
	return ReferenceSet{Platform: p}
}
