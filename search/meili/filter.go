package meili

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

// clauseToFilter rewrites a query-DSL clause into a Meilisearch filter
// expression. Term, terms, range and bool/should clauses are supported;
// anything else fails so a misconfigured filter surfaces instead of
// silently matching everything.
func clauseToFilter(clause search.Clause) (string, error) {
	if len(clause) != 1 {
		return "", fmt.Errorf("unsupported filter clause with %d keys", len(clause))
	}
	for kind, body := range clause {
		switch kind {
		case "term":
			return termFilter(body)
		case "terms":
			return termsFilter(body)
		case "range":
			return rangeFilter(body)
		case "bool":
			return boolFilter(body)
		default:
			return "", fmt.Errorf("unsupported filter clause %q", kind)
		}
	}
	return "", fmt.Errorf("empty filter clause")
}

func termFilter(body any) (string, error) {
	field, value, err := singleField(body, "term")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", field, filterValue(value)), nil
}

func termsFilter(body any) (string, error) {
	field, value, err := singleField(body, "terms")
	if err != nil {
		return "", err
	}
	values, ok := value.([]any)
	if !ok {
		return "", fmt.Errorf("terms clause for %q does not hold a list", field)
	}
	if len(values) == 0 {
		return "", fmt.Errorf("terms clause for %q is empty", field)
	}
	rendered := make([]string, 0, len(values))
	for _, v := range values {
		rendered = append(rendered, filterValue(v))
	}
	return fmt.Sprintf("%s IN [%s]", field, strings.Join(rendered, ", ")), nil
}

func rangeFilter(body any) (string, error) {
	field, value, err := singleField(body, "range")
	if err != nil {
		return "", err
	}
	bounds, ok := value.(map[string]any)
	if !ok {
		return "", fmt.Errorf("range clause for %q does not hold bounds", field)
	}
	ops := map[string]string{"gte": ">=", "gt": ">", "lte": "<=", "lt": "<"}
	keys := make([]string, 0, len(bounds))
	for k := range bounds {
		if _, known := ops[k]; !known {
			return "", fmt.Errorf("range clause for %q has unknown bound %q", field, k)
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "", fmt.Errorf("range clause for %q has no bounds", field)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s %s", field, ops[k], filterValue(bounds[k])))
	}
	return strings.Join(parts, " AND "), nil
}

func boolFilter(body any) (string, error) {
	inner, ok := body.(map[string]any)
	if !ok {
		return "", fmt.Errorf("bool clause does not hold a body")
	}
	should, ok := inner["should"].([]any)
	if !ok || len(should) == 0 {
		return "", fmt.Errorf("bool clause without should branches")
	}
	parts := make([]string, 0, len(should))
	for _, raw := range should {
		sub, ok := raw.(search.Clause)
		if !ok {
			if m, isMap := raw.(map[string]any); isMap {
				sub = m
			} else {
				return "", fmt.Errorf("bool should branch is not a clause")
			}
		}
		part, err := clauseToFilter(sub)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", nil
}

// singleField unpacks the `{field: value}` body shared by term, terms
// and range clauses.
func singleField(body any, kind string) (string, any, error) {
	m, ok := body.(map[string]any)
	if !ok || len(m) != 1 {
		return "", nil, fmt.Errorf("%s clause does not hold a single field", kind)
	}
	for field, value := range m {
		return field, value, nil
	}
	return "", nil, fmt.Errorf("%s clause is empty", kind)
}

// filterValue renders a Go value as a Meilisearch filter literal.
// Strings are quoted with single quotes escaped, numbers and booleans
// pass through bare.
func filterValue(v any) string {
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", `\'`) + "'"
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		if f, ok := convert.ToFloat64(v); ok {
			return convert.FormatFloat(f)
		}
		return "'" + strings.ReplaceAll(fmt.Sprint(v), "'", `\'`) + "'"
	}
}
