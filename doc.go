// Package centime reconstructs and analyzes personal finances from a raw
// transaction log.
//
// The engine fetches accounts, transactions and market prices from a
// [Backend], then derives every analytical view in one pass: net worth time
// series, per-account valuations, spending by category, income and expense
// buckets, a cash-flow graph and a holdings treemap. Each account's history
// is reconstructed backwards from its authoritative current balance, so the
// series always lands exactly on today's numbers.
//
// Missing market data degrades instead of failing: unknown prices value as
// zero, unknown exchange rates as 1.0. Views are immutable snapshots swapped
// atomically; see [Engine.Refresh] for the concurrency rules.
package centime
