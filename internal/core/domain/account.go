package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account is a ledger address configured in the wallet.
type Account struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
	IsPrime bool   `json:"isPrime"`
}

// AccountCandidate carries the user input of a register-account action.
type AccountCandidate struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	IsPrime bool   `json:"isPrime"`
}

func (c AccountCandidate) validate() error {
	if len(c.Address) <= 0 || len(c.Name) <= 0 {
		return ErrAccountMissingAddressOrName
	}
	return nil
}

func newAccount(c AccountCandidate) *Account {
	return &Account{
		Address: c.Address,
		Name:    c.Name,
		Balance: UnconfirmedBalance,
		IsPrime: c.IsPrime,
	}
}

// IsConfirmed returns whether at least one balance query succeeded for the
// account.
func (a *Account) IsConfirmed() bool {
	return a.Balance != UnconfirmedBalance
}

// BalanceValue returns the numeric value of the account balance. The second
// value is false if the balance is not a number, like for unconfirmed ones.
func (a *Account) BalanceValue() (decimal.Decimal, bool) {
	balance := strings.TrimSpace(a.Balance)
	if balance == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(balance)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}
