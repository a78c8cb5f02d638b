package fields

import (
	"context"
	"testing"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindPlain:  "plain",
		KindFacet:  "facet",
		KindFilter: "filter",
		KindSort:   "sort",
		Kind(42):   "kind(42)",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

func TestCoercers(t *testing.T) {
	if v, err := CoerceBool("true"); err != nil || v != true {
		t.Errorf("CoerceBool(true) = %v, %v", v, err)
	}
	if _, err := CoerceBool("banana"); err == nil {
		t.Error("CoerceBool should reject banana")
	}
	if v, err := CoerceInt("42"); err != nil || v != int64(42) {
		t.Errorf("CoerceInt(42) = %v, %v", v, err)
	}
	if _, err := CoerceInt("4.2"); err == nil {
		t.Error("CoerceInt should reject 4.2")
	}
	if v, err := CoerceFloat("4.2"); err != nil || v != 4.2 {
		t.Errorf("CoerceFloat(4.2) = %v, %v", v, err)
	}
	if v, err := CoerceString("raw"); err != nil || v != "raw" {
		t.Errorf("CoerceString(raw) = %v, %v", v, err)
	}
}

func TestTermsFieldCoercionFallsBackToRaw(t *testing.T) {
	f := NewTermsField("in_stock", "in_stock", WithCoerce(CoerceBool))

	got := f.FilterValues(context.Background(), []string{"true", "banana"})
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %d", len(got))
	}
	if got[0].Value != true || got[0].FellBack {
		t.Errorf("coerced value wrong: %+v", got[0])
	}
	if got[1].Value != "banana" || got[1].Raw != "banana" || !got[1].FellBack {
		t.Errorf("fallback value wrong: %+v", got[1])
	}
}

func TestTermsFieldFacet(t *testing.T) {
	f := NewTermsField("brand", "brand.keyword", WithSize(25))

	facet := f.Facet()
	if facet.Field != "brand.keyword" || facet.Kind != search.FacetTerms || facet.Size != 25 {
		t.Errorf("unexpected facet: %+v", facet)
	}
	if f.Kind() != KindFacet || f.Name() != "brand" || f.ESField() != "brand.keyword" {
		t.Error("field identity wrong")
	}
}

func TestTermsFieldReflectKeepsZeroCounts(t *testing.T) {
	f := NewTermsField("brand", "brand")

	f.Reflect(context.Background(), []search.Bucket{
		{Key: "acme", DocCount: 3},
		{Key: "bolt", DocCount: 0},
	}, []string{"acme"})

	choices := f.Choices()
	if len(choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(choices))
	}
	if !choices[0].Selected || choices[0].Label != "acme (3)" {
		t.Errorf("acme choice wrong: %+v", choices[0])
	}
	if choices[1].Selected || choices[1].Count != 0 {
		t.Errorf("bolt choice wrong: %+v", choices[1])
	}
}

func TestTermsFieldCustomFormatter(t *testing.T) {
	f := NewTermsField("brand", "brand", WithFormatter(func(value string, count int64) string {
		return value
	}))
	f.Reflect(context.Background(), []search.Bucket{{Key: "acme", DocCount: 3}}, nil)

	if got := f.Choices()[0].Label; got != "acme" {
		t.Errorf("label = %q, want %q", got, "acme")
	}
}

func TestNewRangeOption(t *testing.T) {
	if _, err := NewRangeOption("anything", nil, nil); err == nil {
		t.Error("both bounds open should fail")
	}

	cases := []struct {
		from, to *float64
		wantKey  string
	}{
		{nil, convert.ToPointer(10.0), "*_10"},
		{convert.ToPointer(10.0), convert.ToPointer(50.0), "10_50"},
		{convert.ToPointer(50.0), nil, "50_*"},
		{convert.ToPointer(10.5), nil, "10.5_*"},
	}
	for _, tt := range cases {
		opt, err := NewRangeOption("label", tt.from, tt.to)
		if err != nil {
			t.Fatalf("NewRangeOption: %v", err)
		}
		if opt.Key != tt.wantKey {
			t.Errorf("key = %q, want %q", opt.Key, tt.wantKey)
		}
	}
}

func TestMustRangeOptionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for open interval")
		}
	}()
	MustRangeOption("bad", nil, nil)
}

func TestNewRangeFieldValidation(t *testing.T) {
	if _, err := NewRangeField("price", "price", nil); err == nil {
		t.Error("empty ranges should fail")
	}

	opt := MustRangeOption("cheap", nil, convert.ToPointer(10.0))
	if _, err := NewRangeField("price", "price", []RangeOption{opt, opt}); err == nil {
		t.Error("duplicate range keys should fail")
	}

	if _, err := NewRangeField("price", "price", []RangeOption{{Label: "no key"}}); err == nil {
		t.Error("option without key should fail")
	}
}

func TestRangeFieldFacet(t *testing.T) {
	f := MustRangeField("price", "price", []RangeOption{
		MustRangeOption("under 10", nil, convert.ToPointer(10.0)),
		MustRangeOption("10 to 50", convert.ToPointer(10.0), convert.ToPointer(50.0)),
	})

	facet := f.Facet()
	if facet.Kind != search.FacetRange || len(facet.Ranges) != 2 {
		t.Fatalf("unexpected facet: %+v", facet)
	}
	if facet.Ranges[0].Key != "*_10" || facet.Ranges[0].To == nil || *facet.Ranges[0].To != 10 {
		t.Errorf("first range wrong: %+v", facet.Ranges[0])
	}
}

func TestRangeFieldFilterValuesAreIdentity(t *testing.T) {
	f := MustRangeField("price", "price", []RangeOption{
		MustRangeOption("cheap", nil, convert.ToPointer(10.0)),
	})

	got := f.FilterValues(context.Background(), []string{"*_10"})
	if len(got) != 1 || got[0].Value != "*_10" || got[0].FellBack {
		t.Errorf("unexpected values: %+v", got)
	}
}

func TestRangeFieldReflectDropsEmptyBuckets(t *testing.T) {
	f := MustRangeField("price", "price", []RangeOption{
		MustRangeOption("under 10", nil, convert.ToPointer(10.0)),
		MustRangeOption("10 to 50", convert.ToPointer(10.0), convert.ToPointer(50.0)),
	})

	f.Reflect(context.Background(), []search.Bucket{
		{Key: "*_10", DocCount: 4},
		{Key: "10_50", DocCount: 0},
	}, []string{"*_10"})

	choices := f.Choices()
	if len(choices) != 1 {
		t.Fatalf("expected 1 choice, got %d", len(choices))
	}
	if choices[0].Value != "*_10" || choices[0].Label != "under 10 (4)" || !choices[0].Selected {
		t.Errorf("choice wrong: %+v", choices[0])
	}
}

func TestRangeFieldReflectLabelFallsBackToKey(t *testing.T) {
	f := MustRangeField("price", "price", []RangeOption{
		MustRangeOption("cheap", nil, convert.ToPointer(10.0)),
	})

	f.Reflect(context.Background(), []search.Bucket{{Key: "unconfigured", DocCount: 2}}, nil)

	if got := f.Choices()[0].Label; got != "unconfigured (2)" {
		t.Errorf("label = %q", got)
	}
}

func TestFilterField(t *testing.T) {
	f := NewFilterField("max_price", func(ctx context.Context, values []string) (search.Clause, error) {
		return search.Clause{"range": map[string]any{"price": map[string]any{"lt": values[0]}}}, nil
	})

	if f.Kind() != KindFilter || f.Name() != "max_price" {
		t.Error("field identity wrong")
	}
	clause, err := f.Clause(context.Background(), []string{"50"})
	if err != nil {
		t.Fatalf("Clause: %v", err)
	}
	if _, ok := clause["range"]; !ok {
		t.Errorf("unexpected clause: %v", clause)
	}
}

func TestFilterFieldWithoutBuilder(t *testing.T) {
	f := NewFilterField("broken", nil)
	if _, err := f.Clause(context.Background(), []string{"x"}); err == nil {
		t.Error("nil builder should fail")
	}
}

func TestSortField(t *testing.T) {
	f := NewSortField("sort",
		SortChoice{Value: "price_asc", Label: "Price low to high", Sort: "price"},
		SortChoice{Value: "price_desc", Label: "Price high to low", Sort: "-price"},
	)

	if f.Kind() != KindSort {
		t.Error("kind wrong")
	}
	if expr, ok := f.Sort("price_desc"); !ok || expr != "-price" {
		t.Errorf("Sort(price_desc) = %q, %v", expr, ok)
	}
	if _, ok := f.Sort("unknown"); ok {
		t.Error("unknown value should not resolve")
	}
	if len(f.Choices()) != 2 {
		t.Error("choices lost")
	}
}

func TestPlainField(t *testing.T) {
	f := NewPlainField("q")
	if f.Kind() != KindPlain || f.Name() != "q" {
		t.Error("field identity wrong")
	}
}
