package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

// DefaultLanguage is used for languages with no catalog and for keys missing
// from the catalog of the requested language.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var locales embed.FS

type translator struct {
	catalogs map[string]map[string]string
	fallback string
}

// NewTranslator returns a translator loaded with the embedded catalogs.
func NewTranslator() (ports.Translator, error) {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	catalogs := make(map[string]map[string]string)
	for _, e := range entries {
		name := e.Name()
		buf, err := locales.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, err
		}
		catalog, err := parseCatalog(buf)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog %s: %w", name, err)
		}
		catalogs[strings.TrimSuffix(name, path.Ext(name))] = catalog
	}
	return newTranslator(catalogs, DefaultLanguage)
}

// NewTranslatorFromYAML returns a translator for the given yaml catalogs,
// indexed by language.
func NewTranslatorFromYAML(
	docs map[string][]byte, fallback string,
) (ports.Translator, error) {
	catalogs := make(map[string]map[string]string)
	for lang, buf := range docs {
		catalog, err := parseCatalog(buf)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog %s: %w", lang, err)
		}
		catalogs[lang] = catalog
	}
	return newTranslator(catalogs, fallback)
}

func newTranslator(
	catalogs map[string]map[string]string, fallback string,
) (ports.Translator, error) {
	if _, ok := catalogs[fallback]; !ok {
		return nil, fmt.Errorf("missing catalog for fallback language %s", fallback)
	}
	return &translator{catalogs, fallback}, nil
}

// Translate returns the string for the given dotted key in the given
// language. It falls back to the default language and finally to the key
// itself.
func (t *translator) Translate(language, key string) string {
	if msg, ok := t.catalogs[normalize(language)][key]; ok {
		return msg
	}
	if msg, ok := t.catalogs[t.fallback][key]; ok {
		return msg
	}
	log.WithField("key", key).Debug("missing translation")
	return key
}

// normalize maps tags like de-CH or de_DE to their base language.
func normalize(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(language, "-_"); i > 0 {
		language = language[:i]
	}
	return language
}

// parseCatalog flattens a yaml document of nested maps into dotted keys.
func parseCatalog(buf []byte) (map[string]string, error) {
	doc := make(map[string]interface{})
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	catalog := make(map[string]string)
	if err := flatten("", doc, catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch value := v.(type) {
		case map[string]interface{}:
			if err := flatten(key, value, out); err != nil {
				return err
			}
		case string:
			out[key] = value
		default:
			return fmt.Errorf("unsupported value for key %s", key)
		}
	}
	return nil
}
