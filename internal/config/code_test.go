package config

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fracsim/internal/fractal"
)

func TestParseCode_Samples(t *testing.T) {
	tests := []struct {
		code string
		want Settings
	}{
		{
			"-2.0 2.0 -2.0 2.0 0.102732 0.618093 0 0 1 1",
			Settings{Region: fractal.FullPlane, Param: fractal.Param{A: 0.102732, B: 0.618093}, Monochrome: true, Julia: true},
		},
		{
			"-0.015 -0.01 0.01 0.015 -0.867123 0.264830 0 0 0 1",
			Settings{Region: fractal.Region{RealMin: -0.015, RealMax: -0.01, ImagMin: 0.01, ImagMax: 0.015}, Param: fractal.Param{A: -0.867123, B: 0.264830}, Julia: true},
		},
		{
			"-2 2 -2 2 0 0 8 1 0 1",
			Settings{Region: fractal.FullPlane, Size: 8, Random: true, Julia: true},
		},
		{
			"-0.801309 -0.701309 0.021923 0.121923 0 0 0 0 1 0",
			Settings{Region: fractal.Region{RealMin: -0.801309, RealMax: -0.701309, ImagMin: 0.021923, ImagMax: 0.121923}, Monochrome: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseCode(tt.code)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}

			again, err := ParseCode(got.Code())
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", got.Code(), err)
			}
			if again != got {
				t.Errorf("round trip changed settings: %+v -> %q -> %+v", got, got.Code(), again)
			}
		})
	}
}

func TestCode_BitIdentical(t *testing.T) {
	s := Settings{
		Region: fractal.Region{RealMin: -0.7435669, RealMax: -0.7435669 + 1e-13, ImagMin: 0.1314023, ImagMax: 0.1314023 + 1e-13},
		Param:  fractal.Param{A: 1.0 / 3.0, B: -math.Pi / 10},
		Size:   0,
		Julia:  true,
	}

	got, err := ParseCode(s.Code())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if math.Float64bits(got.Param.A) != math.Float64bits(s.Param.A) ||
		math.Float64bits(got.Region.RealMax) != math.Float64bits(s.Region.RealMax) {
		t.Errorf("float fields not bit-identical: %+v vs %+v", got, s)
	}
}

func TestCode_Format(t *testing.T) {
	s := Settings{Region: fractal.FullPlane, Param: fractal.Param{A: 0.25, B: -0.5}, Size: 3, Random: true, Julia: true}
	want := "-2 2 -2 2 0.25 -0.5 3 1 0 1"
	if got := s.Code(); got != want {
		t.Errorf("Code() = %q, want %q", got, want)
	}
}

func TestParseCode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		field string
	}{
		{"too few fields", "-2 2 -2 2 0 0 0 0 1", ""},
		{"too many fields", "-2 2 -2 2 0 0 0 0 1 1 1", ""},
		{"bad float", "-2 2 -2 x 0 0 0 0 1 1", "imagMax"},
		{"bad size", "-2 2 -2 2 0 0 1.5 0 1 1", "size"},
		{"bad flag", "-2 2 -2 2 0 0 0 2 1 1", "isRandom"},
		{"inverted region", "2 -2 -2 2 0 0 0 0 1 1", ""},
		{"multi size out of range", "-2 2 -2 2 0 0 9 1 0 1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCode(tt.code)
			if !errors.Is(err, ErrInvalidCode) {
				t.Fatalf("expected ErrInvalidCode, got %v", err)
			}
			var ce *CodeError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CodeError, got %T", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestParseCode_WrapsLayoutErrors(t *testing.T) {
	_, err := ParseCode("-2 2 -2 2 0 0 0 1 0 1")
	if !errors.Is(err, fractal.ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	_, err = ParseCode("1 1 -2 2 0 0 0 0 0 0")
	if !errors.Is(err, fractal.ErrInvalidRegion) {
		t.Errorf("expected ErrInvalidRegion, got %v", err)
	}
}
