package ports

import "context"

// Ledger queries account balances from a remote ledger API reachable at
// endpoint. The silent flag is a hint that the query is a background one.
type Ledger interface {
	GetBalances(
		ctx context.Context, address, endpoint string, silent bool,
	) ([]Balance, error)
}
