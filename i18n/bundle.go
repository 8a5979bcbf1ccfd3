// Package i18n provides the message bundles behind cmdflow's errors and result reasons.
//
// The default bundle is loaded from the embedded locales directory and is shared by all
// engines. Additional languages can be added at runtime with AddLanguage; a new language
// must provide exactly the keys of the default language.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrDefaultLanguageNotFound            = errors.New("default " + ErrLanguageNotFound.Error())
	ErrExtraKey                           = errors.New("extra key")
	ErrMissingKey                         = errors.New("missing key")
)

// Bundle holds translations per language and a printer per language for formatting.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
}

var (
	defaultBundle     *Bundle
	defaultBundleOnce sync.Once
)

// Default returns the bundle built from the embedded locales.
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		var err error
		defaultBundle, err = NewBundleWithFS(defaultLocales, "locales")
		if err != nil {
			panic("failed to load embedded locales: " + err.Error())
		}
	})

	return defaultBundle
}

// NewBundle returns a fresh bundle loaded from the embedded locales.
func NewBundle() (*Bundle, error) {
	return NewBundleWithFS(defaultLocales, "locales")
}

// NewEmptyBundle returns a bundle without translations whose default language is English.
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
	}
}

// NewBundleWithFS loads every <lang>.json file found in dirPrefix. The default language
// file is loaded first so that other languages can be validated against it.
func NewBundleWithFS(fsys fs.FS, dirPrefix string) (*Bundle, error) {
	b := NewEmptyBundle()

	entries, err := fs.ReadDir(fsys, dirPrefix)
	if err != nil {
		return nil, err
	}

	deferred := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}

		file := path.Join(dirPrefix, entry.Name())
		if lang != b.defaultLang {
			deferred = append(deferred, file)
			continue
		}
		if err := b.loadFile(fsys, lang, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.translations[b.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	for _, file := range deferred {
		lang := language.MustParse(strings.TrimSuffix(path.Base(file), ".json"))
		if err := b.loadFile(fsys, lang, file); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// T returns the translation for key in the default language, formatted with args.
func (b *Bundle) T(key string, args ...interface{}) string {
	return b.TL(b.GetDefaultLanguage(), key, args...)
}

// TL returns the translation for key in lang, formatted with args. Unknown languages
// fall back to the default language and unknown keys are returned as is.
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p, ok := b.printers[lang]; ok {
		return p.Sprintf(key, args...)
	}
	if p, ok := b.printers[b.defaultLang]; ok {
		return p.Sprintf(key, args...)
	}

	return key
}

// Message returns the raw (unformatted) translation of key in the default language.
func (b *Bundle) Message(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	msg, ok := b.translations[b.defaultLang][key]
	return msg, ok
}

// AddLanguage adds lang or merges translations into an existing language.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	original := b.translations[lang]
	merged := make(map[string]string, len(original)+len(translations))
	for k, v := range original {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}
	b.translations[lang] = merged

	if lang != b.defaultLang && original == nil {
		if errs := b.validateLanguage(lang); len(errs) > 0 {
			delete(b.translations, lang)
			return fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, lang, errors.Join(errs...))
		}
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			b.translations[lang] = original
			return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
		}
	}

	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))
	return nil
}

// HasLanguage reports whether lang has translations.
func (b *Bundle) HasLanguage(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.translations[lang]
	return ok
}

// HasKey reports whether key is translated in lang.
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.translations[lang][key]
	return ok
}

// Languages returns the supported languages sorted by tag.
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].String() < langs[j].String()
	})

	return langs
}

// SetDefaultLanguage sets the language used by T and Message.
func (b *Bundle) SetDefaultLanguage(lang language.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaultLang = lang
}

// GetDefaultLanguage returns the language used by T and Message.
func (b *Bundle) GetDefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.defaultLang
}

func (b *Bundle) loadFile(fsys fs.FS, lang language.Tag, file string) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return err
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return err
	}

	return b.AddLanguage(lang, translations)
}

// validateLanguage expects b.mu to be held.
func (b *Bundle) validateLanguage(lang language.Tag) []error {
	translations := b.translations[lang]
	if len(translations) == 0 {
		return []error{fmt.Errorf("%w: %s", ErrEmptyTranslations, lang)}
	}

	defaults, ok := b.translations[b.defaultLang]
	if !ok {
		return []error{fmt.Errorf("%w: %s", ErrDefaultLanguageNotFound, b.defaultLang)}
	}

	var errs []error
	for key := range defaults {
		if _, ok := translations[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, ok := defaults[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}

	return errs
}
