package util

import (
	"encoding"
	"reflect"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/napalu/cmdflow/errs"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	timeType            = reflect.TypeOf(time.Time{})
	uuidType            = reflect.TypeOf(uuid.UUID{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// CanConvert reports whether ConvertString supports target
func CanConvert(target reflect.Type) bool {
	if target == nil {
		return false
	}

	switch target {
	case durationType, timeType, uuidType:
		return true
	}
	if reflect.PointerTo(target).Implements(textUnmarshalerType) {
		return true
	}

	switch target.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// ConvertString converts value to a value of type target. Named types are supported
// through their underlying kind, so the result always has exactly type target.
func ConvertString(value string, target reflect.Type) (any, error) {
	if target == nil {
		return nil, errs.ErrParseUnsupportedType.WithArgs("<nil>")
	}

	switch target {
	case durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, errs.ErrParseDuration.WithArgs(value).Wrap(err)
		}
		return d, nil
	case timeType:
		t, err := dateparse.ParseLocal(value)
		if err != nil {
			return nil, errs.ErrParseTime.WithArgs(value).Wrap(err)
		}
		return t, nil
	case uuidType:
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, errs.ErrParseUUID.WithArgs(value).Wrap(err)
		}
		return id, nil
	}

	if reflect.PointerTo(target).Implements(textUnmarshalerType) {
		ptr := reflect.New(target)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value)); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}

	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		out.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errs.ErrParseBool.WithArgs(value).Wrap(err)
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, overflow, err := ParseInt(value, target.Bits())
		if overflow {
			return nil, errs.ErrParseOverflow.WithArgs(value, target.String())
		} else if err != nil {
			return nil, errs.ErrParseInt.WithArgs(value).Wrap(err)
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, overflow, err := ParseUint(value, target.Bits())
		if overflow {
			return nil, errs.ErrParseOverflow.WithArgs(value, target.String())
		} else if err != nil {
			return nil, errs.ErrParseUint.WithArgs(value).Wrap(err)
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, overflow, err := ParseFloat(value, target.Bits())
		if overflow {
			return nil, errs.ErrParseOverflow.WithArgs(value, target.String())
		} else if err != nil {
			return nil, errs.ErrParseFloat.WithArgs(value).Wrap(err)
		}
		out.SetFloat(f)
	default:
		return nil, errs.ErrParseUnsupportedType.WithArgs(target.String())
	}

	return out.Interface(), nil
}
