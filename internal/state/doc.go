// Package state manages timetable plans and their persistence.
//
// A plan is one user's timetable for a term: the listings they added and the
// stream chosen for every component. Plans are persisted as JSON files in the
// plans directory, one file per plan named after its id.
//
// Key concepts:
//   - Plan: an immutable value; every change returns a new Plan
//   - Selections: listing name -> component name -> chosen stream index
//   - PlanStore: Interface for persisting and loading plans
//   - SessionStore: records which plan is current
//   - Migrate: upgrades plans written by older schema versions
package state
