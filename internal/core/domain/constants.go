package domain

import "time"

const (
	// UnconfirmedBalance is the balance of an account until its first
	// successful balance query.
	UnconfirmedBalance = "unconfirmed"

	// AdvancedOptionsHidden is the third state of Settings.ShowAdvancedOptions
	// next to "true" and "false".
	AdvancedOptionsHidden = "hidden"
	// DefaultCustomURL is the ledger endpoint used when no custom host has been
	// configured yet.
	DefaultCustomURL = "wss://s.altnet.rippletest.net:51233"

	// BalancesUpdatedLayout is the layout used to render the timestamp of the
	// last balance refresh.
	BalancesUpdatedLayout = "2 January 2006, 15:04:05"

	// DefaultNotificationDuration is used for notifications that don't specify
	// their own duration.
	DefaultNotificationDuration = 4 * time.Second
)

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)
