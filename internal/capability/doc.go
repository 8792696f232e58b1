// Package capability holds the generators for the account capabilities and
// helper mirrors emitted next to the slot-count impl.
//
// Each generator receives the raw schema and derives its own generics view;
// none of them depends on the generator's GenericsPlan. That keeps them free
// to change independently of the resolver.
//
// Capabilities:
//   - Accounts: construct from the runtime context (try_accounts)
//   - ToAccountMetas: serialize to a metadata list
//   - ToAccountInfos: flatten to a resource list
//   - AccountsExit: finalize (exit) bookkeeping
//
// Helpers:
//   - client mirror: plain keys, for off-chain callers
//   - CPI mirror: resource handles, for cross-program invocation
package capability
