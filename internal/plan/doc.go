// Package plan derives everything the generator needs to know about a
// schema before emitting code.
//
// Two pure functions make up the package:
//
//  1. Resolve computes the GenericsPlan shared by the generated impl headers:
//     - reuse the first declared lifetime as the trait lifetime, or
//       synthesize the canonical 'info when none is declared
//     - constrain every declared lifetime to outlive the trait lifetime
//     - reduce the declared parameters to bare identifiers for naming the type
//  2. BuildCountExpression computes the slot-count formula: each leaf adds 1,
//     each composite adds the nested value's own num_accounts().
//
// Instance evaluates a formula against a live value, and CountSlots counts
// slots of an annotated Go struct by reflection.
package plan
