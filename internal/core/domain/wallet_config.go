package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletConfig is the ordered set of accounts configured by the user.
// The order of the accounts is the one of their registration and is used to
// pick the new prime account when the current one is deleted.
type WalletConfig struct {
	Configured      bool       `json:"configured"`
	Accounts        []*Account `json:"accounts"`
	UpdatedBalances *time.Time `json:"updatedBalances"`
}

// NewWalletConfig returns an empty, not configured, WalletConfig.
func NewWalletConfig() WalletConfig {
	return WalletConfig{
		Accounts: make([]*Account, 0),
	}
}

// RegisterAccount appends a new unconfirmed account built from the given
// candidate. If the candidate asks for prime status, every other account
// loses it.
func (c *WalletConfig) RegisterAccount(candidate AccountCandidate) error {
	if err := candidate.validate(); err != nil {
		return err
	}
	if _, ok := c.FindAccountByAddress(candidate.Address); ok {
		return ErrAccountAlreadyExists
	}

	if candidate.IsPrime {
		c.clearPrime()
	}

	c.Accounts = append(c.Accounts, newAccount(candidate))
	c.Configured = true
	return nil
}

// DeleteAccount removes the account with the given address. If it was the
// prime one, the first remaining account becomes prime. Deleting the last
// account leaves the config not configured.
func (c *WalletConfig) DeleteAccount(address string) error {
	index := c.indexOf(address)
	if index < 0 {
		return ErrAccountNotFound
	}

	wasPrime := c.Accounts[index].IsPrime
	c.Accounts = append(c.Accounts[:index], c.Accounts[index+1:]...)

	if !wasPrime {
		return nil
	}
	if len(c.Accounts) > 0 {
		c.Accounts[0].IsPrime = true
		return nil
	}
	c.Configured = false
	return nil
}

// SetPrimaryAccount marks the account with the given address as prime and
// clears the flag on every other one. If there's no match, no account is left
// prime and false is returned.
func (c *WalletConfig) SetPrimaryAccount(address string) bool {
	found := false
	for _, account := range c.Accounts {
		account.IsPrime = account.Address == address
		if account.IsPrime {
			found = true
		}
	}
	return found
}

// SetAccountBalance updates the balance of the account with the given
// address.
func (c *WalletConfig) SetAccountBalance(address, balance string) error {
	account, ok := c.FindAccountByAddress(address)
	if !ok {
		return ErrAccountNotFound
	}
	account.Balance = balance
	return nil
}

// StampBalances records t as the time of the last balance refresh.
func (c *WalletConfig) StampBalances(t time.Time) {
	c.UpdatedBalances = &t
}

// FindAccountByAddress returns the first account matching the given address.
func (c WalletConfig) FindAccountByAddress(address string) (*Account, bool) {
	index := c.indexOf(address)
	if index < 0 {
		return nil, false
	}
	return c.Accounts[index], true
}

// PrimeAccount returns the prime account, if any.
func (c WalletConfig) PrimeAccount() (*Account, bool) {
	for _, account := range c.Accounts {
		if account.IsPrime {
			return account, true
		}
	}
	return nil, false
}

// FirstAccount returns the account that balance queries are made for.
func (c WalletConfig) FirstAccount() (*Account, bool) {
	if len(c.Accounts) <= 0 {
		return nil, false
	}
	return c.Accounts[0], true
}

// AccountConfigured returns whether there's at least one account.
func (c WalletConfig) AccountConfigured() bool {
	return len(c.Accounts) > 0
}

// SumOfBalances sums the balances of all accounts. Balances that are not
// numbers, like unconfirmed ones, don't contribute to the sum.
func (c WalletConfig) SumOfBalances() decimal.Decimal {
	sum := decimal.Zero
	for _, account := range c.Accounts {
		if value, ok := account.BalanceValue(); ok {
			sum = sum.Add(value)
		}
	}
	return sum
}

// LastBalanceUpdated returns the formatted time of the last balance refresh.
func (c WalletConfig) LastBalanceUpdated() (string, bool) {
	if c.UpdatedBalances == nil {
		return "", false
	}
	return c.UpdatedBalances.Format(BalancesUpdatedLayout), true
}

func (c WalletConfig) indexOf(address string) int {
	for i, account := range c.Accounts {
		if account.Address == address {
			return i
		}
	}
	return -1
}

func (c *WalletConfig) clearPrime() {
	for _, account := range c.Accounts {
		account.IsPrime = false
	}
}
