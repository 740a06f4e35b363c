// Package normalize converts raw, heterogeneous input rows into canonical
// domain.Venue records.
//
// Normalization never fails: a malformed field degrades to absent, and a row
// without a usable name is dropped and counted. Only the data source can
// produce an error, and that happens before rows reach this package.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkordes/dining-scout/internal/domain"
)

// Canonical column names. ToRow writes these; Row accepts them and their aliases.
const (
	ColName      = "name"
	ColLocation  = "loc"
	ColCategory  = "type"
	ColSlug      = "slug"
	ColID        = "id"
	ColExternal  = "ot"
	ColDiscounts = "disc"
	ColHappyHour = "hh"
	ColTips      = "tips"
	ColLat       = "lat"
	ColLon       = "lon"
)

// Columns lists the canonical columns in the order data sources store them.
var Columns = []string{
	ColName, ColLocation, ColCategory, ColSlug, ColID, ColExternal,
	ColDiscounts, ColHappyHour, ColTips, ColLat, ColLon,
}

// aliases maps every accepted (lower-case) column name to its canonical name.
var aliases = map[string]string{
	"name": ColName, "restaurant": ColName, "venue": ColName,
	"loc": ColLocation, "location": ColLocation, "park": ColLocation, "area": ColLocation,
	"type": ColCategory, "category": ColCategory, "service": ColCategory,
	"slug": ColSlug,
	"id": ColID, "disney_id": ColID, "reservation_id": ColID, "restaurant_id": ColID,
	"ot": ColExternal, "opentable": ColExternal, "external_url": ColExternal, "booking_url": ColExternal,
	"disc": ColDiscounts, "discount": ColDiscounts, "discounts": ColDiscounts,
	"hh": ColHappyHour, "happy_hour": ColHappyHour,
	"tips": ColTips, "notes": ColTips,
	"lat": ColLat, "latitude": ColLat,
	"lon": ColLon, "lng": ColLon, "long": ColLon, "longitude": ColLon,
}

// Result is the output of Rows.
type Result struct {
	Venues []domain.Venue
	// Dropped counts rows discarded because their normalized name was empty.
	Dropped int
}

// Rows normalizes rows in order. Rows without a name are dropped and counted.
// Venues is never nil.
func Rows(rows []domain.RawRow) Result {
	res := Result{Venues: make([]domain.Venue, 0, len(rows))}
	for _, raw := range rows {
		v, ok := Row(raw)
		if !ok {
			res.Dropped++
			continue
		}
		res.Venues = append(res.Venues, v)
	}
	return res
}

// Row normalizes a single row. The boolean is false when the row has no
// usable name and must be dropped.
func Row(raw domain.RawRow) (domain.Venue, bool) {
	cols := canonicalize(raw)

	v := domain.Venue{
		Name:               text(cols[ColName]),
		Location:           text(cols[ColLocation]),
		Category:           text(cols[ColCategory]),
		Slug:               text(cols[ColSlug]),
		ReservationID:      reservationID(cols[ColID]),
		ExternalBookingURL: text(cols[ColExternal]),
		Discounts:          discounts(cols[ColDiscounts]),
		HappyHour:          text(cols[ColHappyHour]),
		Tips:               text(cols[ColTips]),
		Coordinates:        coordinates(cols[ColLat], cols[ColLon]),
	}
	if v.Name == "" {
		return domain.Venue{}, false
	}
	return v, true
}

// canonicalize re-keys raw by canonical column name. When several keys map
// to the same column, the canonical spelling wins, then the lexically
// smallest key, so the result never depends on map iteration order.
func canonicalize(raw domain.RawRow) map[string]any {
	out := make(map[string]any, len(Columns))
	winner := make(map[string]string, len(Columns))
	for key, val := range raw {
		canon, ok := aliases[strings.ToLower(strings.TrimSpace(key))]
		if !ok || blank(val) {
			continue
		}
		if prev, seen := winner[canon]; seen && !preferKey(key, prev, canon) {
			continue
		}
		winner[canon] = key
		out[canon] = val
	}
	return out
}

func preferKey(candidate, current, canon string) bool {
	c := strings.ToLower(strings.TrimSpace(candidate))
	p := strings.ToLower(strings.TrimSpace(current))
	if (c == canon) != (p == canon) {
		return c == canon
	}
	if c != p {
		return c < p
	}
	return candidate < current
}

// blank reports whether val carries no information.
func blank(val any) bool {
	switch x := val.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	return false
}

// text renders a scalar as trimmed text. Lists are joined so a stray list
// in a text column is still readable.
func text(val any) string {
	switch x := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []string:
		return strings.Join(listItems(x), ", ")
	case []any:
		return strings.Join(listItems(stringsOf(x)), ", ")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	}
	return strings.TrimSpace(fmt.Sprint(val))
}

// number parses val as a float. Text is trimmed first; anything else that
// is not a Go number fails.
func number(val any) (float64, bool) {
	switch x := val.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// reservationID truncates a numeric id toward zero. Integers are handled
// without a float round-trip so large ids keep full precision.
// Non-numeric, non-finite, non-positive or overflowing values are absent.
func reservationID(val any) *int64 {
	var id int64
	switch x := val.(type) {
	case int:
		id = int64(x)
	case int64:
		id = x
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			id = n
			break
		}
		f, ok := number(s)
		if !ok || !fitsInt64(f) {
			return nil
		}
		id = int64(f)
	default:
		f, ok := number(val)
		if !ok || !fitsInt64(f) {
			return nil
		}
		id = int64(f)
	}
	if id <= 0 {
		return nil
	}
	return &id
}

// fitsInt64 reports whether f is finite and its truncation fits in an int64.
func fitsInt64(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	t := math.Trunc(f)
	return t >= math.MinInt64 && t < math.MaxInt64
}

// coordinates returns a pair only when both components parse, are finite
// and lie within the valid degree ranges.
func coordinates(latVal, lonVal any) *domain.Coordinates {
	lat, ok := number(latVal)
	if !ok || !finite(lat) || math.Abs(lat) > 90 {
		return nil
	}
	lon, ok := number(lonVal)
	if !ok || !finite(lon) || math.Abs(lon) > 180 {
		return nil
	}
	return &domain.Coordinates{Lat: lat, Lon: lon}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// discounts accepts either a delimited blob or a pre-split list and always
// returns a non-nil slice of trimmed, non-blank items.
func discounts(val any) []string {
	switch x := val.(type) {
	case nil:
		return []string{}
	case []string:
		return listItems(x)
	case []any:
		return listItems(stringsOf(x))
	}
	return listItems(SplitList(text(val)))
}

func stringsOf(items []any) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, text(it))
	}
	return out
}

func listItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitList splits a discount blob on ',', ';' or '|'. Delimiters inside
// parentheses are kept, so "Disney Visa (10%, in-park)" stays one item.
// Items are trimmed and blank items dropped.
func SplitList(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',', ';', '|':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return listItems(out)
}
