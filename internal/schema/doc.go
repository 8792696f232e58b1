// Package schema provides the account schema model consumed by the
// generator: a declared structure with generic parameters and an ordered,
// non-empty list of leaf and composite fields.
//
// Schemas are usually loaded from a YAML (or JSON) document:
//
//	version: "1"
//	external:
//	  - TokenAccounts       # composites declared outside this document
//	schemas:
//	  - name: Initialize
//	    generics: ["'info", "T: Clone", "const N: usize"]
//	    where: ["T: Default"]
//	    fields:
//	      - name: payer
//	        type: "Signer<'info>"
//	        mut: true
//	        signer: true
//	      - name: vault
//	        composite: Vault
//
// A Leaf field occupies exactly one resource slot. A Composite field
// delegates to the nested schema named by its type, recursively.
//
// Validation rejects schemas the generator cannot handle (no fields,
// duplicate field names, malformed lifetimes). A Catalog additionally checks
// that composite references resolve and do not form cycles, and orders
// schemas so nested ones come before the schemas embedding them.
package schema
