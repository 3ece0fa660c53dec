package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oysy-network/oysy-wallet/internal/infrastructure/i18n"
)

func TestEmbeddedCatalogs(t *testing.T) {
	translator, err := i18n.NewTranslator()
	require.NoError(t, err)

	keys := []string{
		"toasts.unauthorized",
		"toasts.forbidden",
		"toasts.pageNotFound",
		"userAccounts.alerts.completeQuery",
	}
	for _, key := range keys {
		en := translator.Translate("en", key)
		de := translator.Translate("de", key)
		require.NotEqual(t, key, en)
		require.NotEqual(t, key, de)
		require.NotEqual(t, en, de)
	}
}

func TestTranslate(t *testing.T) {
	translator, err := i18n.NewTranslatorFromYAML(map[string][]byte{
		"en": []byte("toasts:\n  forbidden: Forbidden\n  pageNotFound: Not found\n"),
		"de": []byte("toasts:\n  forbidden: Verboten\n"),
	}, "en")
	require.NoError(t, err)

	tests := []struct {
		language string
		key      string
		expected string
	}{
		{"de", "toasts.forbidden", "Verboten"},
		{"de-CH", "toasts.forbidden", "Verboten"},
		{"de", "toasts.pageNotFound", "Not found"},
		{"fr", "toasts.forbidden", "Forbidden"},
		{"", "toasts.forbidden", "Forbidden"},
		{"en", "toasts.unknown", "toasts.unknown"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, translator.Translate(tt.language, tt.key))
	}
}

func TestInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		docs map[string][]byte
	}{
		{"missing fallback", map[string][]byte{"de": []byte("a: b\n")}},
		{"malformed yaml", map[string][]byte{"en": []byte("a: [b\n")}},
		{"unsupported value", map[string][]byte{"en": []byte("a:\n  - b\n")}},
	}
	for _, tt := range tests {
		translator, err := i18n.NewTranslatorFromYAML(tt.docs, "en")
		require.Error(t, err, tt.name)
		require.Nil(t, translator, tt.name)
	}
}
