// Package order defines the protocol data model that fuzz scenarios are built
// from: orders, their offer and consideration items, criteria resolvers, and
// the parameter bundle a zone receives when it is asked to validate an order.
//
// The package has no internal dependencies. fuzzctx, zone and harness all
// import order; order imports nothing internal.
//
// Key constraints:
//   - Addresses and hashes use go-ethereum's fixed-size array types
//   - Identifiers and amounts are 256-bit unsigned values (uint256.Int), held
//     by value so that copying a struct copies the number
//   - Every composite type has a Clone method that shares no slice storage
//     with its receiver
package order
