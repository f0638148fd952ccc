package extractor

import (
	"strings"

	"github.com/user/filmdata-service/internal/entity"
)

// Separator joins the values of a multi-valued field.
const Separator = ";"

// Collapse trims the values, drops empties and duplicates (keeping first-seen
// order) and joins the rest. No surviving value means entity.Missing.
func Collapse(values []string) entity.Field {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return entity.Missing
	}
	return entity.Value(strings.Join(out, Separator))
}

// Split is the inverse of Collapse for a present field.
func Split(f entity.Field) []string {
	v, ok := f.Get()
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, Separator)
}
