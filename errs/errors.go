package errs

import (
	"errors"

	"github.com/napalu/cmdflow/i18n"
)

// Framework and configuration errors
var (
	ErrFrameworkFault          = i18n.NewError(ErrFrameworkFaultKey)
	ErrConfiguringEngine       = i18n.NewError(ErrConfiguringEngineKey)
	ErrEmptyInput              = i18n.NewError(ErrEmptyInputKey)
	ErrNilContext              = i18n.NewError(ErrNilContextKey)
	ErrMissingTypeParser       = i18n.NewError(ErrMissingTypeParserKey)
	ErrMissingArgumentParser   = i18n.NewError(ErrMissingArgumentParserKey)
	ErrUnsupportedHandlerShape = i18n.NewError(ErrUnsupportedHandlerShapeKey)
	ErrNilHandler              = i18n.NewError(ErrNilHandlerKey)
	ErrInvalidParameterLayout  = i18n.NewError(ErrInvalidParameterLayoutKey)
	ErrNilParameterType        = i18n.NewError(ErrNilParameterTypeKey)
	ErrInvalidDefault          = i18n.NewError(ErrInvalidDefaultKey)
	ErrEmptyName               = i18n.NewError(ErrEmptyNameKey)
	ErrEmptyAlias              = i18n.NewError(ErrEmptyAliasKey)
	ErrDuplicateAlias          = i18n.NewError(ErrDuplicateAliasKey)
	ErrNilModule               = i18n.NewError(ErrNilModuleKey)
	ErrModuleAlreadyRegistered = i18n.NewError(ErrModuleAlreadyRegisteredKey)
	ErrModuleNotRegistered     = i18n.NewError(ErrModuleNotRegisteredKey)
	ErrSubmoduleRegistration   = i18n.NewError(ErrSubmoduleRegistrationKey)
	ErrCommandAlreadyOwned     = i18n.NewError(ErrCommandAlreadyOwnedKey)
	ErrServiceNotFound         = i18n.NewError(ErrServiceNotFoundKey)
	ErrServiceTypeMismatch     = i18n.NewError(ErrServiceTypeMismatchKey)
	ErrMissingCommandMatches   = i18n.NewError(ErrMissingCommandMatchesKey)
	ErrNoResult                = i18n.NewError(ErrNoResultKey)
	ErrCanceled                = i18n.NewError(ErrCanceledKey)
	ErrHandlerPanic            = i18n.NewError(ErrHandlerPanicKey)
	ErrInvalidSeparator        = i18n.NewError(ErrInvalidSeparatorKey)
	ErrInvalidOptionValue      = i18n.NewError(ErrInvalidOptionValueKey)
	ErrConfigFile              = i18n.NewError(ErrConfigFileKey)
)

// Type parser errors
var (
	ErrParseBool            = i18n.NewError(ErrParseBoolKey)
	ErrParseInt             = i18n.NewError(ErrParseIntKey)
	ErrParseUint            = i18n.NewError(ErrParseUintKey)
	ErrParseFloat           = i18n.NewError(ErrParseFloatKey)
	ErrParseOverflow        = i18n.NewError(ErrParseOverflowKey)
	ErrParseDuration        = i18n.NewError(ErrParseDurationKey)
	ErrParseTime            = i18n.NewError(ErrParseTimeKey)
	ErrParseUUID            = i18n.NewError(ErrParseUUIDKey)
	ErrParseEnum            = i18n.NewError(ErrParseEnumKey)
	ErrParseEmptyInput      = i18n.NewError(ErrParseEmptyInputKey)
	ErrParseUnsupportedType = i18n.NewError(ErrParseUnsupportedTypeKey)
	ErrParseTokenize        = i18n.NewError(ErrParseTokenizeKey)
)

// Fault marks err as a framework fault: a programmer or configuration defect that
// aborts the pipeline instead of producing a Result. errors.Is(fault, ErrFrameworkFault)
// and errors.Is(fault, err) both hold.
func Fault(err error) error {
	if err == nil || IsFault(err) {
		return err
	}

	return ErrFrameworkFault.Wrap(err)
}

// IsFault reports whether err was marked with Fault.
func IsFault(err error) bool {
	return errors.Is(err, ErrFrameworkFault)
}

// Canceled wraps a context error so that callers can tell cancellation apart from both
// Results and framework faults.
func Canceled(cause error) error {
	if cause == nil {
		return nil
	}

	return ErrCanceled.Wrap(cause)
}
