package app

import (
	"strconv"
	"strings"
	"unicode"

	"tour_service/internal/domain"
)

/********** alias registry (single source of truth) **********/

// Feed records come from partner exports with inconsistent field names; the
// first non-empty alias wins.
var tourAliases = map[string][]string{
	"title":       {"title", "name", "tour_name", "package_name"},
	"description": {"description", "summary", "short_description", "details.description"},
	"price":       {"price", "price_usd", "pricing.amount", "pricing.price", "cost"},
	"duration":    {"duration_days", "days", "duration.days", "duration"},
	"location":    {"location", "destination", "location.name", "region", "city"},
	"image":       {"image_url", "image", "cover_image", "thumbnail", "cover.url"},
	"images":      {"images", "photos", "gallery"},
	"highlights":  {"highlights", "features", "itinerary"},
	"rating":      {"rating", "score", "rating.value", "reviews.average", "average_rating"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the trimmed string at path or "".
func lookupStr(m map[string]any, path string) string {
	if s, ok := lookupAny(m, path).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) *string {
	for _, p := range tourAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return &s
		}
	}
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0" or "$299").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case int64:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			s = strings.TrimLeft(s, "$€£ ")
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstIntFlexible: int from several paths. Strings like "4D3N" or "4 days"
// yield their leading number.
func firstIntFlexible(m map[string]any, paths ...string) *int {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int(v)
			return &x
		case int:
			x := v
			return &x
		case int64:
			x := int(v)
			return &x
		case string:
			if n, ok := leadingInt(v); ok {
				return &n
			}
		}
	}
	return nil
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// firstSliceStrings: accept []any with either strings or {url/src/name/title}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if s := strings.TrimSpace(t); s != "" {
					out = append(out, s)
				}
			case map[string]any:
				for _, f := range []string{"url", "src", "name", "title"} {
					if s, ok := t[f].(string); ok && s != "" {
						out = append(out, s)
						break
					}
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

/********** tour mapper **********/

func mapTour(rec map[string]any) domain.Tour {
	t := domain.Tour{
		Title:       deref(firstNonEmptyAlias(rec, "title")),
		Description: deref(firstNonEmptyAlias(rec, "description")),
		Location:    deref(firstNonEmptyAlias(rec, "location")),
		ImageURL:    firstNonEmptyAlias(rec, "image"),
		Highlights:  firstSliceStrings(rec, tourAliases["highlights"]...),
		Rating:      getFloatFlexible(rec, tourAliases["rating"]...),
	}
	if p := getFloatFlexible(rec, tourAliases["price"]...); p != nil {
		t.Price = *p
	} else {
		t.Price = -1 // rejected by validation
	}
	if d := firstIntFlexible(rec, tourAliases["duration"]...); d != nil {
		t.DurationDays = *d
	}
	if t.ImageURL == nil {
		if imgs := firstSliceStrings(rec, tourAliases["images"]...); len(imgs) > 0 {
			t.ImageURL = &imgs[0]
		}
	}
	t.Normalize()
	return t
}
