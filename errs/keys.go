// Package errs contains the sentinel errors returned by cmdflow together with their
// translation keys.
package errs

const (
	prefixKey = "cmdflow"
)

const (
	ErrorPrefixKey    = prefixKey + ".error"
	ParseErrorPathKey = ErrorPrefixKey + ".parse"
)

// Framework and configuration errors
const (
	ErrFrameworkFaultKey          = ErrorPrefixKey + ".framework_fault"
	ErrConfiguringEngineKey       = ErrorPrefixKey + ".configuring_engine"
	ErrEmptyInputKey              = ErrorPrefixKey + ".empty_input"
	ErrNilContextKey              = ErrorPrefixKey + ".nil_context"
	ErrMissingTypeParserKey       = ErrorPrefixKey + ".missing_type_parser"
	ErrMissingArgumentParserKey   = ErrorPrefixKey + ".missing_argument_parser"
	ErrUnsupportedHandlerShapeKey = ErrorPrefixKey + ".unsupported_handler_shape"
	ErrNilHandlerKey              = ErrorPrefixKey + ".nil_handler"
	ErrInvalidParameterLayoutKey  = ErrorPrefixKey + ".invalid_parameter_layout"
	ErrNilParameterTypeKey        = ErrorPrefixKey + ".nil_parameter_type"
	ErrInvalidDefaultKey          = ErrorPrefixKey + ".invalid_default"
	ErrEmptyNameKey               = ErrorPrefixKey + ".empty_name"
	ErrEmptyAliasKey              = ErrorPrefixKey + ".empty_alias"
	ErrDuplicateAliasKey          = ErrorPrefixKey + ".duplicate_alias"
	ErrNilModuleKey               = ErrorPrefixKey + ".nil_module"
	ErrModuleAlreadyRegisteredKey = ErrorPrefixKey + ".module_already_registered"
	ErrModuleNotRegisteredKey     = ErrorPrefixKey + ".module_not_registered"
	ErrSubmoduleRegistrationKey   = ErrorPrefixKey + ".submodule_registration"
	ErrCommandAlreadyOwnedKey     = ErrorPrefixKey + ".command_already_owned"
	ErrServiceNotFoundKey         = ErrorPrefixKey + ".service_not_found"
	ErrServiceTypeMismatchKey     = ErrorPrefixKey + ".service_type_mismatch"
	ErrMissingCommandMatchesKey   = ErrorPrefixKey + ".missing_command_matches"
	ErrNoResultKey                = ErrorPrefixKey + ".no_result"
	ErrCanceledKey                = ErrorPrefixKey + ".canceled"
	ErrHandlerPanicKey            = ErrorPrefixKey + ".handler_panic"
	ErrInvalidSeparatorKey        = ErrorPrefixKey + ".invalid_separator"
	ErrInvalidOptionValueKey      = ErrorPrefixKey + ".invalid_option_value"
	ErrConfigFileKey              = ErrorPrefixKey + ".config_file"
)

// Type parser errors
const (
	ErrParseBoolKey            = ParseErrorPathKey + ".bool"
	ErrParseIntKey             = ParseErrorPathKey + ".int"
	ErrParseUintKey            = ParseErrorPathKey + ".uint"
	ErrParseFloatKey           = ParseErrorPathKey + ".float"
	ErrParseOverflowKey        = ParseErrorPathKey + ".overflow"
	ErrParseDurationKey        = ParseErrorPathKey + ".duration"
	ErrParseTimeKey            = ParseErrorPathKey + ".time"
	ErrParseUUIDKey            = ParseErrorPathKey + ".uuid"
	ErrParseEnumKey            = ParseErrorPathKey + ".enum"
	ErrParseEmptyInputKey      = ParseErrorPathKey + ".empty_input"
	ErrParseUnsupportedTypeKey = ParseErrorPathKey + ".unsupported_type"
	ErrParseTokenizeKey        = ParseErrorPathKey + ".tokenize"
)
