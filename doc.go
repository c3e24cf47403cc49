// Package wallet implements a local personal-finance ledger: monetary assets
// and debts in multiple currencies, operator-supplied exchange rates, derived
// totals (net worth, zakat), all persisted in a durable keyed record store
// with a backup and restore facility.
//
// The package is organized around a small set of collaborating components:
//
//   - [Store] is a keyed-collection store persisted as one JSONL file per
//     collection under the wallet directory.
//   - [RateRegistry] is the process-wide view of the exchange and gold rates,
//     with an explicit readiness gate consumers wait on before converting.
//   - [TotalsCache] computes and caches the aggregate asset value; it is
//     invalidated on every write to assets or rates, never by time.
//   - [BackupManager] snapshots the primary collections into immutable
//     backup records, restores them, and runs the scheduled backup policy.
//   - [Wallet] wires them together and owns every mutation entry point, so
//     cache invalidation has a single choke point.
package wallet
