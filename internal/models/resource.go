// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package models

import "strings"

// ResourceType identifies the utility a reading or target belongs to.
type ResourceType string

const (
	ResourceElectric ResourceType = "el"
	ResourceWater    ResourceType = "water"
)

// DefaultResource is used when no resource has been selected.
const DefaultResource = ResourceElectric

// AllResources lists every supported resource type.
var AllResources = []ResourceType{ResourceElectric, ResourceWater}

// ParseResourceType accepts the canonical value case-insensitively.
func ParseResourceType(s string) (ResourceType, bool) {
	r := ResourceType(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Valid reports whether r is a supported resource type.
func (r ResourceType) Valid() bool {
	return r == ResourceElectric || r == ResourceWater
}

// Unit returns the measurement unit of the resource.
func (r ResourceType) Unit() string {
	if r == ResourceWater {
		return "L"
	}
	return "kWh"
}

// Label returns the display name of the resource.
func (r ResourceType) Label() string {
	if r == ResourceWater {
		return "Water"
	}
	return "Electricity"
}

// ResourceInfo describes a resource for clients.
type ResourceInfo struct {
	ResourceType ResourceType `json:"resource_type"`
	Label        string       `json:"label"`
	Unit         string       `json:"unit"`
}

// InfoFor returns the ResourceInfo of r.
func InfoFor(r ResourceType) ResourceInfo {
	return ResourceInfo{ResourceType: r, Label: r.Label(), Unit: r.Unit()}
}
