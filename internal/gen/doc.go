// Package gen orchestrates code generation for account schemas.
//
// For every schema it emits, in order:
//   - the slot-count impl (num_accounts), built from the resolved generics
//     plan and the count expression
//   - the capability impls: try_accounts, to_account_infos,
//     to_account_metas, exit
//   - the client and CPI mirror modules, each behind a feature guard so a
//     consumer can compile them out
//
// Generation is pure: Generator.Generate never touches the filesystem or
// logs. Pipeline is the impure shell that loads schema files, renders the
// units and writes them out.
package gen
