// Package kernel holds the shared value objects of the ordering domain:
// identifiers (UUID) and money helpers built on shopspring/decimal.
package kernel
