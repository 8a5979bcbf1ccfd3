package i18n

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// TranslatableError represents an error that can be translated
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
}

// MessageProvider defines an interface for getting default messages
type MessageProvider interface {
	GetMessage(key string) string
}

// BundleMessageProvider serves messages of a single language from a bundle
type BundleMessageProvider struct {
	bundle *Bundle
	lang   language.Tag
}

// NewBundleMessageProvider creates a provider for lang backed by bundle
func NewBundleMessageProvider(bundle *Bundle, lang language.Tag) *BundleMessageProvider {
	return &BundleMessageProvider{bundle: bundle, lang: lang}
}

// GetMessage returns the raw message for key, or key itself when untranslated
func (p *BundleMessageProvider) GetMessage(key string) string {
	if p.bundle == nil {
		return key
	}

	p.bundle.mu.RLock()
	defer p.bundle.mu.RUnlock()

	if msg, ok := p.bundle.translations[p.lang][key]; ok {
		return msg
	}
	if msg, ok := p.bundle.translations[language.English][key]; ok {
		return msg
	}

	return key
}

// TrError represents a translatable error with optional formatting arguments
// and error wrapping support. Copies made by WithArgs and Wrap share the sentinel
// of the error they were made from, so errors.Is matches them against it.
//
// Example usage:
//
//	err := NewError("cmdflow.error.nil_handler")
//	err = err.WithArgs("ping")
//	err = err.Wrap(originalError)
type TrError struct {
	sentinel error
	key      string
	args     []interface{}
	wrapped  error
}

// NewError creates a new translatable error with a key
func NewError(key string) *TrError {
	return &TrError{
		sentinel: errors.New(key),
		key:      key,
	}
}

// Error returns the message in the current default language
func (e *TrError) Error() string {
	msg := getDefaultProvider().GetMessage(e.key)
	if len(e.args) > 0 {
		msg = fmt.Sprintf(msg, e.args...)
	}

	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     args,
		wrapped:  e.wrapped,
	}
}

// Wrap returns a new error that wraps another error
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     e.args,
		wrapped:  err,
	}
}

// Is implements errors.Is for comparison with the sentinel error
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}
	return target == e.sentinel
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider replaces the provider used to render every TrError.
// Passing nil restores the English provider backed by Default().
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	defaultProvider = p
}

func getDefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	p := defaultProvider
	defaultProviderMux.RUnlock()

	if p != nil {
		return p
	}

	return NewBundleMessageProvider(Default(), language.English)
}

// T renders key with args using the provider that renders errors, so result messages and
// error messages always share a language.
func T(key string, args ...interface{}) string {
	msg := getDefaultProvider().GetMessage(key)
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
