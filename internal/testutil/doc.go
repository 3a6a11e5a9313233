// Package testutil provides deterministic fixtures for tests across the
// module: addresses, orders, criteria resolvers and iteration tokens.
package testutil
