// File path: internal/audit/normalize_test.go
package audit

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestNormalizeLeafValues(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string", "observed", "observed"},
		{"bool", true, true},
		{"int", 7, int64(7)},
		{"int32", int32(-9), int64(-9)},
		{"uint16", uint16(42), int64(42)},
		{"float", 2.5, 2.5},
		{"float32", float32(1.5), 1.5},
		{"nan", math.NaN(), nil},
		{"pos_inf", math.Inf(1), nil},
		{"neg_inf", math.Inf(-1), nil},
		{"json_number_int", json.Number("12"), int64(12)},
		{"json_number_float", json.Number("12.25"), 12.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Normalize(%v) = %v (%T), want %v (%T)", tc.in, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestNormalizeWalksContainers(t *testing.T) {
	in := map[string]any{
		"scores": []any{math.NaN(), 1.0, json.Number("3")},
		"nested": map[string]any{"inf": math.Inf(1)},
	}
	got := Normalize(in)
	want := map[string]any{
		"scores": []any{nil, 1.0, int64(3)},
		"nested": map[string]any{"inf": nil},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %#v, want %#v", got, want)
	}
}

func TestNormalizeRecordPreservesColumnOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("Question ID", "Q1")
	rec.Set("Score", math.NaN())
	rec.Set("Passed", true)

	out := NormalizeRecord(rec)
	if got := out.Keys(); !reflect.DeepEqual(got, []string{"Question ID", "Score", "Passed"}) {
		t.Fatalf("keys = %v", got)
	}
	if v, _ := out.Get("Score"); v != nil {
		t.Fatalf("NaN score = %v, want nil", v)
	}
	if v, _ := rec.Get("Score"); v == nil {
		t.Fatal("input record was mutated")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rec := NewRecord()
	rec.Set("Question ID", "Q1")
	rec.Set("Weight", float32(0.5))
	values := []any{
		math.Inf(-1),
		json.Number("10"),
		[]any{uint8(3), "text", map[string]any{"x": math.NaN()}},
		rec,
	}
	for _, v := range values {
		once := Normalize(v)
		twice := Normalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("Normalize not idempotent for %#v: %#v != %#v", v, once, twice)
		}
	}
}

func TestNormalizeUnknownTypePassesThrough(t *testing.T) {
	type opaque struct{ n int }
	v := opaque{n: 1}
	if got := Normalize(v); got != v {
		t.Fatalf("Normalize(%v) = %v", v, got)
	}
}
