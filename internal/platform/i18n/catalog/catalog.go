// Package catalog loads the embedded console message catalogs.
//
// Each file lives at locales/<locale>/<namespace>.yaml:
//
//	locale: "en-US"
//	namespace: "labels"
//	messages:
//	  "topics": "Topics"
//
// Keys are unique per locale across namespaces, and "console.*" keys belong
// to the console namespace only.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the source locale; every other locale falls back to it.
	BaseLocale = "en-US"
	// ChineseLocale is the console's default display locale.
	ChineseLocale = "zh-CN"

	consoleKeyPrefix = "console."
	consoleNamespace = "console"
)

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type localeMessages struct {
	namespaces map[string]map[string]string
	all        map[string]string
}

// Bundle holds every catalog file, indexed by locale.
type Bundle struct {
	locales map[string]*localeMessages
}

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded parses the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS parses every locales/*/*.yaml file of fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	files, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no catalog files found")
	}
	slices.Sort(files)

	bundle := &Bundle{locales: map[string]*localeMessages{}}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", file, err)
		}
		parsed, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", file, err)
		}
		if err := bundle.add(file, parsed); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", file, err)
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func parseCatalogFile(data []byte) (catalogFile, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return catalogFile{}, err
	}
	file.Locale = strings.TrimSpace(file.Locale)
	file.Namespace = strings.TrimSpace(file.Namespace)
	switch {
	case file.Locale == "":
		return catalogFile{}, errors.New("missing locale")
	case file.Namespace == "":
		return catalogFile{}, errors.New("missing namespace")
	case len(file.Messages) == 0:
		return catalogFile{}, errors.New("missing messages")
	}
	return file, nil
}

func (b *Bundle) add(file string, parsed catalogFile) error {
	if dirLocale := path.Base(path.Dir(file)); parsed.Locale != dirLocale {
		return fmt.Errorf("locale %q must match path locale %q", parsed.Locale, dirLocale)
	}
	if fileNamespace := strings.TrimSuffix(path.Base(file), path.Ext(file)); parsed.Namespace != fileNamespace {
		return fmt.Errorf("namespace %q must match filename namespace %q", parsed.Namespace, fileNamespace)
	}

	locale, ok := b.locales[parsed.Locale]
	if !ok {
		locale = &localeMessages{namespaces: map[string]map[string]string{}, all: map[string]string{}}
		b.locales[parsed.Locale] = locale
	}
	if _, exists := locale.namespaces[parsed.Namespace]; exists {
		return fmt.Errorf("namespace %q already defined for locale %q", parsed.Namespace, parsed.Locale)
	}

	messages := make(map[string]string, len(parsed.Messages))
	for rawKey, value := range parsed.Messages {
		key := strings.TrimSpace(rawKey)
		switch {
		case key == "":
			return errors.New("message key cannot be blank")
		case strings.HasPrefix(key, consoleKeyPrefix) && parsed.Namespace != consoleNamespace:
			return fmt.Errorf("key %q must be defined in console namespace", key)
		}
		if _, exists := locale.all[key]; exists {
			return fmt.Errorf("duplicate key %q in locale %q", key, parsed.Locale)
		}
		locale.all[key] = value
		messages[key] = value
	}
	locale.namespaces[parsed.Namespace] = messages
	return nil
}

// Register makes every message available to x/text/message printers under
// both the full tag (zh-CN) and its base language (zh).
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, confidence := tag.Base(); confidence != language.No {
			if baseTag := language.Make(base.String()); baseTag.String() != tag.String() {
				tags = append(tags, baseTag)
			}
		}
		for key, value := range b.locales[locale].all {
			for _, registerTag := range tags {
				if err := message.SetString(registerTag, key, value); err != nil {
					return fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether any catalog file declares locale.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the declared locales, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales))
}

// Message looks key up in locale, then in BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	for _, candidate := range []string{strings.TrimSpace(locale), BaseLocale} {
		if messages, ok := b.locales[candidate]; ok {
			if value, ok := messages.all[key]; ok {
				return value, true
			}
		}
	}
	return "", false
}

// NamespaceMessages returns a copy of one namespace for locale, or an empty
// map.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	messages, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	namespaceMessages, ok := messages.namespaces[strings.TrimSpace(namespace)]
	if !ok {
		return map[string]string{}
	}
	return maps.Clone(namespaceMessages)
}

// NamespaceMessagesWithFallback returns the namespace for locale, or the
// BaseLocale copy when locale lacks it, with the locale actually used.
func (b *Bundle) NamespaceMessagesWithFallback(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	if messages := b.NamespaceMessages(locale, namespace); len(messages) > 0 {
		return locale, messages
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, namespace)
}

// Keys returns the sorted keys of namespace in BaseLocale.
func (b *Bundle) Keys(namespace string) []string {
	return slices.Sorted(maps.Keys(b.NamespaceMessages(BaseLocale, namespace)))
}

func mustLoadEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
