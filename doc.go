// Package stockfolio tracks ownership lots of tradable securities across
// multiple accounts and currencies, and reconstructs time-accurate portfolio
// valuations and realized/unrealized profit for reporting.
//
// The core functionalities include:
//   - Lot Ledger: Recording buy and sell trades against per-account open
//     lots, matched oldest-first with proportional brokerage and GST
//     allocation and the capital-gains discount for lots held over a year.
//   - Valuation Reconstruction: Replaying trade history against historical
//     price and exchange-rate series to produce a daily portfolio value
//     chart, with the final day overlaid from live quotes.
//   - Account Aggregation: Rolling per-security figures up into per-account
//     market value, cost, today's change and realized/unrealized profit.
//   - Market Data Integration: Fetching and caching historical series and
//     quote snapshots through the MarketData interface, refreshed when a
//     series was not updated today.
//   - Data Persistence: A document store holding securities, accounts,
//     settings and cached market data, mirrored to JSON files.
//
// This package serves as the foundational logic for the `stk` command-line
// tool.
package stockfolio
