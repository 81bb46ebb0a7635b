// Package core provides the business logic for user-defined typed lists.
//
// This package contains all domain logic independent of any UI, storage or
// transport layer. It can be used by web handlers, CLI tools, or tests
// without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Column: a named, typed field with a default value and a cache of the
//     values held in that column across all rows.
//   - Row and Cell: one typed cell per column, in column order.
//   - List: the aggregate owning columns and rows, with search, filter,
//     sort, paging and an access set.
//   - Service: the registry and factory of lists. It serializes access to
//     lists and hands them to a [Store] for persistence.
//
// # Coercion
//
// Every value entering a cell goes through the coercion registry, keyed by
// [ColumnType]. Built-in rules are registered at init time: text-like types
// stringify their input, Number parses currency and separators, Yes/No
// accepts the usual spellings, and Lookup passes input through unchecked.
// [Coerce] returns [ErrInvalidValue] for input a rule rejects.
//
// # Row Invariant
//
// A row always has exactly one cell per column and cell i has the type of
// column i. AddRow and EditRow reject value slices of the wrong length with
// [ErrArityMismatch] and leave the list untouched.
//
// # Value Cache
//
// Each column keeps a list of the values appended to it. Sorting a column
// reorders only the text entries of that cache; rows are left in place.
// Use [List.Rows] for the authoritative row order.
//
// # Error Handling
//
// Operations return wrapped sentinel errors ([ErrArityMismatch],
// [ErrInvalidValue], [ErrUnknownColumn], [ErrNotFound],
// [ErrUnsupportedColumnType]). [MapError] turns them into user-facing
// messages with support codes.
package core
