// Package models defines the core domain models for ChronoFlow.
//
// The following models are actively used:
//   - User: a registered account; owns events and settings
//   - Event: a dated reminder with display metadata and trigger state
//   - UserSettings: one-per-user display/notification preferences
//   - EventStats: per-user aggregate counts for the stats endpoint
//
// # Design Principles
//
//  1. **Flat ownership**: events and settings reference their owner by ID
//     string; no cascading relations and no circular references.
//  2. **Wire-friendly**: models carry JSON tags and are returned directly
//     by the HTTP handlers; the password hash is never serialized.
//  3. **Monotonic trigger state**: Event.Triggered only ever transitions
//     false -> true, written either by the owner or by the due-event
//     scanner through a conditional update.
package models
