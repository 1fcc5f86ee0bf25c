// Package normdoc retrieves regulatory documents (standards, federal laws,
// orders, resolutions) from a single document site and turns loosely
// structured listing and detail pages into typed records.
//
// This package contains domain types, the shared classification pattern
// tables and interfaces following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, http/, htmltomarkdown/).
package normdoc
