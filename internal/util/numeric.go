package util

import (
	"errors"
	"strconv"
)

// ParseInt parses s as a signed integer of the given bit size. Base prefixes (0x, 0o, 0b)
// and underscores are accepted. overflow is true when s is a valid integer that does not
// fit in bits.
func ParseInt(s string, bits int) (v int64, overflow bool, err error) {
	v, err = strconv.ParseInt(s, 0, bits)
	if err != nil {
		return 0, isRange(err), err
	}
	return v, false, nil
}

// ParseUint is the unsigned counterpart of ParseInt
func ParseUint(s string, bits int) (v uint64, overflow bool, err error) {
	v, err = strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, isRange(err), err
	}
	return v, false, nil
}

// ParseFloat parses s as a floating point number of the given bit size
func ParseFloat(s string, bits int) (v float64, overflow bool, err error) {
	v, err = strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, isRange(err), err
	}
	return v, false, nil
}

func isRange(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}
