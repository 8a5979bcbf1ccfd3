package cmdflow

import (
	"fmt"
	"strings"

	"github.com/napalu/cmdflow/i18n"
	"github.com/napalu/cmdflow/types/orderedmap"
)

const (
	resultPrefixKey                    = "cmdflow.result"
	resultSuccessKey                   = resultPrefixKey + ".success"
	resultCommandNotFoundKey           = resultPrefixKey + ".command_not_found"
	resultCommandNotFoundSuggestionKey = resultPrefixKey + ".command_not_found_suggestions"
	resultCommandDisabledKey           = resultPrefixKey + ".command_disabled"
	resultMultiMatchKey                = resultPrefixKey + ".multi_match"
	resultBadArgCountKey               = resultPrefixKey + ".bad_arg_count"
	resultMissingTypeParserKey         = resultPrefixKey + ".missing_type_parser"
	resultTypeParserFailKey            = resultPrefixKey + ".type_parser_fail"
	resultPreconditionFailKey          = resultPrefixKey + ".precondition_fail"
	resultCommandFailuresKey           = resultPrefixKey + ".command_failures"
)

// ResultKind tags the variants of Result
type ResultKind int

const (
	KindSuccess ResultKind = iota
	KindSuccessWithPayload
	KindCommandNotFound
	KindCommandDisabled
	KindMultiMatch
	KindBadArgCount
	KindMissingTypeParser
	KindTypeParserFail
	KindPreconditionFail
	KindCommandFailures
	KindUserDefined
)

var resultKindNames = [...]string{
	KindSuccess:            "success",
	KindSuccessWithPayload: "success_with_payload",
	KindCommandNotFound:    "command_not_found",
	KindCommandDisabled:    "command_disabled",
	KindMultiMatch:         "multi_match",
	KindBadArgCount:        "bad_arg_count",
	KindMissingTypeParser:  "missing_type_parser",
	KindTypeParserFail:     "type_parser_fail",
	KindPreconditionFail:   "precondition_fail",
	KindCommandFailures:    "command_failures",
	KindUserDefined:        "user_defined",
}

// String returns the string representation of a ResultKind
func (k ResultKind) String() string {
	if k >= 0 && int(k) < len(resultKindNames) {
		return resultKindNames[k]
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// Result is the outcome of a request. Every expected condition (no match, ambiguity, bad
// input) is reported as a Result rather than an error. Handlers may return their own Result
// implementations; those should report KindUserDefined.
type Result interface {
	Kind() ResultKind
	Success() bool
	Reason() string
}

// SuccessResult is produced for handlers that return nothing
type SuccessResult struct{}

func (SuccessResult) Kind() ResultKind {
	return KindSuccess
}

func (SuccessResult) Success() bool {
	return true
}

func (SuccessResult) Reason() string {
	return i18n.T(resultSuccessKey)
}

// PayloadResult wraps the value returned by an object handler
type PayloadResult struct {
	Value any
}

func (PayloadResult) Kind() ResultKind {
	return KindSuccessWithPayload
}

func (PayloadResult) Success() bool {
	return true
}

func (PayloadResult) Reason() string {
	return i18n.T(resultSuccessKey)
}

// CommandNotFoundResult is produced when no alias matches the input
type CommandNotFoundResult struct {
	Input       string
	Suggestions []string
}

func (CommandNotFoundResult) Kind() ResultKind {
	return KindCommandNotFound
}

func (CommandNotFoundResult) Success() bool {
	return false
}

func (r CommandNotFoundResult) Reason() string {
	if len(r.Suggestions) > 0 {
		return i18n.T(resultCommandNotFoundSuggestionKey, r.Input, strings.Join(r.Suggestions, ", "))
	}
	return i18n.T(resultCommandNotFoundKey, r.Input)
}

// CommandDisabledResult is produced when a matching command or one of its modules is
// disabled
type CommandDisabledResult struct {
	Command *Command
}

func (CommandDisabledResult) Kind() ResultKind {
	return KindCommandDisabled
}

func (CommandDisabledResult) Success() bool {
	return false
}

func (r CommandDisabledResult) Reason() string {
	return i18n.T(resultCommandDisabledKey, r.Command.Path())
}

// MultiMatchResult is produced when several commands match and none of their modules
// resolves ambiguity with types.MultiMatchBest
type MultiMatchResult struct {
	Matches []CommandMatch
}

func (MultiMatchResult) Kind() ResultKind {
	return KindMultiMatch
}

func (MultiMatchResult) Success() bool {
	return false
}

func (r MultiMatchResult) Reason() string {
	paths := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		paths[i] = m.Command.Path()
	}
	return i18n.T(resultMultiMatchKey, len(r.Matches), strings.Join(paths, ", "))
}

// Commands returns the candidate commands in ranking order
func (r MultiMatchResult) Commands() []*Command {
	commands := make([]*Command, len(r.Matches))
	for i, m := range r.Matches {
		commands[i] = m.Command
	}
	return commands
}

// BadArgCountResult is produced when the input has too few or too many tokens for a command
type BadArgCountResult struct {
	Command *Command
}

func (BadArgCountResult) Kind() ResultKind {
	return KindBadArgCount
}

func (BadArgCountResult) Success() bool {
	return false
}

func (r BadArgCountResult) Reason() string {
	return i18n.T(resultBadArgCountKey, r.Command.Path())
}

// MissingTypeParserResult is produced when no type parser serves a parameter. The argument
// binder escalates it to a framework fault.
type MissingTypeParserResult struct {
	Parameter *Parameter
}

func (MissingTypeParserResult) Kind() ResultKind {
	return KindMissingTypeParser
}

func (MissingTypeParserResult) Success() bool {
	return false
}

func (r MissingTypeParserResult) Reason() string {
	return i18n.T(resultMissingTypeParserKey, r.Parameter.Name())
}

// TypeParserFailResult is produced when a token cannot be converted to a parameter's type
type TypeParserFailResult struct {
	Parameter *Parameter
	Token     string
	Err       error
}

func (TypeParserFailResult) Kind() ResultKind {
	return KindTypeParserFail
}

func (TypeParserFailResult) Success() bool {
	return false
}

func (r TypeParserFailResult) Reason() string {
	return i18n.T(resultTypeParserFailKey, r.Token, r.Parameter.Name(), errString(r.Err))
}

// Unwrap returns the type parser's error
func (r TypeParserFailResult) Unwrap() error {
	return r.Err
}

// PreconditionFailResult is produced when a command, module or parameter precondition rejects a request
type PreconditionFailResult struct {
	Precondition string
	Err          error
}

func (PreconditionFailResult) Kind() ResultKind {
	return KindPreconditionFail
}

func (PreconditionFailResult) Success() bool {
	return false
}

func (r PreconditionFailResult) Reason() string {
	return i18n.T(resultPreconditionFailKey, r.Precondition, errString(r.Err))
}

// Unwrap returns the precondition's error
func (r PreconditionFailResult) Unwrap() error {
	return r.Err
}

// CommandFailuresResult is produced when several candidates were tried and all of them
// failed. Failures are kept in candidate order.
type CommandFailuresResult struct {
	Failures *orderedmap.OrderedMap[*Command, Result]
}

func (CommandFailuresResult) Kind() ResultKind {
	return KindCommandFailures
}

func (CommandFailuresResult) Success() bool {
	return false
}

func (r CommandFailuresResult) Reason() string {
	var sb strings.Builder
	for cmd, res := range r.Failures.All() {
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(cmd.Path())
		sb.WriteString(": ")
		sb.WriteString(res.Reason())
	}
	return i18n.T(resultCommandFailuresKey, r.Failures.Len(), sb.String())
}

// UserDefinedResult is a ready-made Result for handlers that need to report an outcome
// without declaring their own type
type UserDefinedResult struct {
	Ok      bool
	Message string
	Value   any
}

func (UserDefinedResult) Kind() ResultKind {
	return KindUserDefined
}

func (r UserDefinedResult) Success() bool {
	return r.Ok
}

func (r UserDefinedResult) Reason() string {
	return r.Message
}

// failureResult collapses per-candidate failures: a single failure is reported as is,
// several are aggregated
func failureResult(failures *orderedmap.OrderedMap[*Command, Result]) Result {
	if failures.Len() == 1 {
		return failures.Values()[0]
	}
	return CommandFailuresResult{Failures: failures}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
