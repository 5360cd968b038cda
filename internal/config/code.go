package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// codeFields is the number of whitespace-separated fields of a secret code.
const codeFields = 10

var fieldNames = [codeFields]string{
	"realMin", "realMax", "imagMin", "imagMax", "a", "b",
	"size", "isRandom", "isMonochrome", "isJulia",
}

var ErrInvalidCode = errors.New("config: invalid secret code")

// CodeError reports the field of a secret code that could not be decoded.
type CodeError struct {
	Field string
	Value string
	Err   error
}

func (e *CodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %v", ErrInvalidCode, e.Err)
	}
	return fmt.Sprintf("%v: field %s=%q: %v", ErrInvalidCode, e.Field, e.Value, e.Err)
}

func (e *CodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidCode}
	}
	return []error{ErrInvalidCode, e.Err}
}

// Code serializes the settings as
// "realMin realMax imagMin imagMax a b size isRandom isMonochrome isJulia".
// Floats use the shortest form that parses back to the same value.
func (s Settings) Code() string {
	fields := []string{
		formatFloat(s.Region.RealMin),
		formatFloat(s.Region.RealMax),
		formatFloat(s.Region.ImagMin),
		formatFloat(s.Region.ImagMax),
		formatFloat(s.Param.A),
		formatFloat(s.Param.B),
		strconv.Itoa(s.Size),
		formatFlag(s.Random),
		formatFlag(s.Monochrome),
		formatFlag(s.Julia),
	}
	return strings.Join(fields, " ")
}

// ParseCode decodes a secret code produced by Code or written by hand in
// fixed-point notation.
func ParseCode(code string) (Settings, error) {
	fields := strings.Fields(code)
	if len(fields) != codeFields {
		return Settings{}, &CodeError{Err: fmt.Errorf("want %d fields, got %d", codeFields, len(fields))}
	}

	var floats [6]float64
	for i := range floats {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Settings{}, &CodeError{Field: fieldNames[i], Value: fields[i], Err: err}
		}
		floats[i] = v
	}

	size, err := strconv.Atoi(fields[6])
	if err != nil {
		return Settings{}, &CodeError{Field: fieldNames[6], Value: fields[6], Err: err}
	}

	var flags [3]bool
	for i := range flags {
		idx := 7 + i
		switch fields[idx] {
		case "0":
		case "1":
			flags[i] = true
		default:
			return Settings{}, &CodeError{Field: fieldNames[idx], Value: fields[idx], Err: errors.New("flag must be 0 or 1")}
		}
	}

	s := Settings{
		Size:       size,
		Random:     flags[0],
		Monochrome: flags[1],
		Julia:      flags[2],
	}
	s.Region.RealMin, s.Region.RealMax = floats[0], floats[1]
	s.Region.ImagMin, s.Region.ImagMax = floats[2], floats[3]
	s.Param.A, s.Param.B = floats[4], floats[5]

	if err := s.Validate(); err != nil {
		return Settings{}, &CodeError{Err: err}
	}
	return s, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
