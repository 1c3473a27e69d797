// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// Package schema implements the process-wide type registry: a map from
// (schema name, version) to constructor factories and ordered
// upgrade/downgrade function chains, plus the family-to-label downgrade
// manifest consulted by the Writer.
package schema

import (
	"fmt"
	"sync"

	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/registry"
)

// Factory constructs a zero-value instance of a schema's Go type. The
// registry calls ReadFrom on the result after construction to populate it
// from the (possibly upgraded) wire dictionary.
type Factory func() Reader

// Reader is implemented by every registered schema type so the registry
// can populate an instance from a decoded dictionary after any upgrade
// chain has run.
type Reader interface {
	ReadFrom(dict *dynval.OrderedDict) error
}

// UpgradeFunc mutates dict in place, transforming it from one schema
// version to the next.
type UpgradeFunc func(dict *dynval.OrderedDict)

// DowngradeFunc mutates dict in place, transforming it from one schema
// version to the previous one.
type DowngradeFunc func(dict *dynval.OrderedDict)

type schemaRecord struct {
	currentVersion int
	factory        Factory
	// upgraders[v] transforms a dictionary at version v to v+1.
	upgraders map[int]UpgradeFunc
	// downgraders[v] transforms a dictionary at version v to v-1.
	downgraders map[int]DowngradeFunc
}

var (
	mu      sync.Mutex
	schemas = map[string]*schemaRecord{}

	// familyLabels maps a family name to its registered label/version
	// manifest entries, used by Writer downgrade-on-write.
	familyLabels = map[string]map[string]int{}
)

// Register records schemaName's current version, constructor factory, and
// upgrade/downgrade chains. It always returns nil: re-registering a name
// at its current version is accepted and keeps the first registration
// (factories are not compared, so no SchemaConflict is reported), and
// registering a name at a different version replaces the earlier record.
func Register(schemaName string, version int, factory Factory, upgraders map[int]UpgradeFunc, downgraders map[int]DowngradeFunc) error {
	mu.Lock()
	defer mu.Unlock()

	if existing, ok := schemas[schemaName]; ok {
		if existing.currentVersion == version {
			// Idempotent re-registration is allowed only if nothing
			// meaningfully differs; we can't compare function values,
			// so accept it (matches package init() calling Register
			// at most once per schema in practice).
			return nil
		}
	}

	schemas[schemaName] = &schemaRecord{
		currentVersion: version,
		factory:        factory,
		upgraders:      upgraders,
		downgraders:    downgraders,
	}
	return nil
}

// CurrentVersion returns the registered current version for schemaName, or
// ok=false if nothing is registered under that name.
func CurrentVersion(schemaName string) (int, bool) {
	mu.Lock()
	defer mu.Unlock()
	rec, ok := schemas[schemaName]
	if !ok {
		return 0, false
	}
	return rec.currentVersion, true
}

// InstanceFromSchema applies any needed upgraders to dict and constructs
// a new instance of schemaName. It fails with SchemaVersionUnsupported if
// incomingVersion exceeds the registered current version.
func InstanceFromSchema(schemaName string, incomingVersion int, dict *dynval.OrderedDict) (Reader, error) {
	mu.Lock()
	rec, ok := schemas[schemaName]
	mu.Unlock()
	if !ok {
		return nil, registry.NewErrorWithSubject(registry.KindMalformedSchema, "unregistered schema: "+schemaName, schemaName)
	}
	if incomingVersion > rec.currentVersion {
		return nil, registry.NewErrorWithSubject(registry.KindSchemaVersionUnsupported,
			fmt.Sprintf("%s.%d is newer than supported %s.%d", schemaName, incomingVersion, schemaName, rec.currentVersion),
			schemaName)
	}
	for v := incomingVersion; v < rec.currentVersion; v++ {
		up, ok := rec.upgraders[v]
		if !ok {
			return nil, registry.NewErrorWithSubject(registry.KindSchemaVersionUnsupported,
				fmt.Sprintf("no upgrader from %s.%d to %s.%d", schemaName, v, schemaName, v+1), schemaName)
		}
		up(dict)
	}

	instance := rec.factory()
	if err := instance.ReadFrom(dict); err != nil {
		return nil, err
	}
	return instance, nil
}

// Downgrade applies downgraders from the registered current version down
// to targetVersion, mutating dict in place. It fails with NoDowngradePath
// if any intermediate downgrader is missing.
func Downgrade(dict *dynval.OrderedDict, schemaName string, targetVersion int) error {
	mu.Lock()
	rec, ok := schemas[schemaName]
	mu.Unlock()
	if !ok {
		return registry.NewErrorWithSubject(registry.KindMalformedSchema, "unregistered schema: "+schemaName, schemaName)
	}
	for v := rec.currentVersion; v > targetVersion; v-- {
		down, ok := rec.downgraders[v]
		if !ok {
			return registry.NewErrorWithSubject(registry.KindNoDowngradePath,
				fmt.Sprintf("no downgrader from %s.%d to %s.%d", schemaName, v, schemaName, v-1), schemaName)
		}
		down(dict)
	}
	return nil
}

// RegisterFamilyLabel records that, within family, label corresponds to
// targetVersion of every schema in that family's downgrade manifest. This
// mirrors the original serializer's FAMILY_LABEL_MAP: a single label names
// a compatible combination of per-schema versions that an older reader
// understands.
func RegisterFamilyLabel(family, label string, schemaVersions map[string]int) {
	mu.Lock()
	defer mu.Unlock()
	if familyLabels[family] == nil {
		familyLabels[family] = map[string]int{}
	}
	for schema, version := range schemaVersions {
		familyLabels[family][schema] = version
	}
}

// TargetVersionForLabel returns the target version registered for
// schemaName under family/label, or ok=false if nothing was recorded.
func TargetVersionForLabel(family, label, schemaName string) (int, bool) {
	mu.Lock()
	defer mu.Unlock()
	labels, ok := familyLabels[family]
	if !ok {
		return 0, false
	}
	v, ok := labels[schemaName]
	return v, ok
}

func init() {
	// The built-in core family; concrete downgrade manifests are added by
	// the timeline package as schema versions evolve.
	familyLabels["OTIO_CORE"] = map[string]int{}
}
