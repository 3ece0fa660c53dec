package domain

// Settings holds the display and connection preferences of the wallet.
// Flags are string encoded booleans, ShowAdvancedOptions can also be
// AdvancedOptionsHidden.
type Settings struct {
	ShowAdvancedOptions string `json:"showAdvancedOptions"`
	UseCustomHost       string `json:"useCustomHost"`
	CustomURL           string `json:"customURL"`
}

func NewSettings() Settings {
	return Settings{
		ShowAdvancedOptions: AdvancedOptionsHidden,
		UseCustomHost:       "false",
		CustomURL:           DefaultCustomURL,
	}
}

// IsCustomHostUsed returns whether balance queries must be made against
// CustomURL.
func (s Settings) IsCustomHostUsed() bool {
	return s.UseCustomHost == "true"
}
