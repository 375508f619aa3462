// Package ir provides the intermediate representation of a primitive table.
//
// This package contains type definitions and their canonical encoding only.
// All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Row order is significant for emission order only, never for identity lookups
//   - Origins are diagnostic metadata and never take part in table identity
//   - All JSON tags use snake_case
package ir
