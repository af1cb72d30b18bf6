package database

import (
	"reflect"
	"testing"
)

func TestStringArrayScan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  StringArray
	}{
		{"nil", nil, nil},
		{"json array", []byte(`["go","redis"]`), StringArray{"go", "redis"}},
		{"json string input", `["a"]`, StringArray{"a"}},
		{"postgres array", []byte(`{go,redis}`), StringArray{"go", "redis"}},
		{"postgres quoted", []byte(`{"machine learning",go}`), StringArray{"machine learning", "go"}},
		{"postgres empty", []byte(`{}`), StringArray{}},
		{"bare value", []byte(`solo`), StringArray{"solo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a StringArray
			if err := a.Scan(tt.input); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if !reflect.DeepEqual(a, tt.want) {
				t.Errorf("got %#v, want %#v", a, tt.want)
			}
		})
	}
}

func TestStringArrayScanUnsupportedType(t *testing.T) {
	var a StringArray
	if err := a.Scan(42); err == nil {
		t.Fatal("expected error for int input")
	}
}

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{"go", "redis"}.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != `["go","redis"]` {
		t.Errorf("value = %v", v)
	}

	nilVal, err := StringArray(nil).Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if nilVal != nil {
		t.Errorf("nil array value = %v, want nil", nilVal)
	}
}

func TestVectorScan(t *testing.T) {
	var v Vector
	if err := v.Scan([]byte("[0.5,-1.25,2]")); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !reflect.DeepEqual(v, Vector{0.5, -1.25, 2}) {
		t.Errorf("got %v", v)
	}

	var empty Vector
	if err := empty.Scan("[]"); err != nil {
		t.Fatalf("scan empty: %v", err)
	}
	if len(empty) != 0 || empty == nil {
		t.Errorf("empty = %#v", empty)
	}

	var nilVec Vector
	if err := nilVec.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if nilVec != nil {
		t.Errorf("nil scan = %v", nilVec)
	}
}

func TestVectorScanMalformed(t *testing.T) {
	for _, input := range []string{"0.5,1.0", "[0.5,", "[a,b]"} {
		var v Vector
		if err := v.Scan(input); err == nil {
			t.Errorf("scan %q: expected error", input)
		}
	}
}

func TestVectorValueRoundTrip(t *testing.T) {
	orig := Vector{0.5, -1.25, 2}

	raw, err := orig.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded Vector
	if err := decoded.Scan(raw.(string)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !reflect.DeepEqual(decoded, orig) {
		t.Errorf("got %v, want %v", decoded, orig)
	}

	nilVal, err := Vector(nil).Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if nilVal != nil {
		t.Errorf("nil vector value = %v, want nil", nilVal)
	}
}
