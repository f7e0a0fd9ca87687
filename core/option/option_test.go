package option

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestInt64Unset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.core")
	defer teardown()
	//
	o := Int64()
	if !o.IsNone() {
		t.Errorf("a fresh option should be unset, is %s", o)
	}
	if o.String() != "Int64.None" {
		t.Errorf("unexpected string for unset option: %s", o)
	}
}

func TestInt64Some(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.core")
	defer teardown()
	//
	o := SomeInt64(42)
	if o.IsNone() {
		t.Errorf("option with a value should not be none")
	}
	if o.Unwrap() != 42 {
		t.Errorf("expected option to unwrap to 42, is %d", o.Unwrap())
	}
	if o.String() != "42" {
		t.Errorf("unexpected string for option: %s", o)
	}
}

func TestInt64ZeroIsSome(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.core")
	defer teardown()
	//
	// the zero value is a set option holding 0, not "unset"
	if SomeInt64(0).IsNone() {
		t.Errorf("an explicit zero is a value, not none")
	}
}
