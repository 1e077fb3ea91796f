package postgrest

import (
	"strings"
)

// Count is the row counting algorithm requested with the Prefer header.
type Count int

const (
	CountNone Count = iota
	CountExact
	CountPlanned
	CountEstimated
)

// String returns the Prefer count value, or "" for CountNone and unknown values.
func (c Count) String() string {
	switch c {
	case CountExact:
		return "exact"
	case CountPlanned:
		return "planned"
	case CountEstimated:
		return "estimated"
	}
	return ""
}

// Returning controls whether mutations return the affected rows.
type Returning int

const (
	// ReturnRepresentation is the default for insert, update and delete.
	ReturnRepresentation Returning = iota
	ReturnMinimal
)

// String returns the Prefer return value. Unknown values fall back to
// representation.
func (r Returning) String() string {
	if r == ReturnMinimal {
		return "minimal"
	}
	return "representation"
}

// Prefer holds the directives sent in the Prefer header (RFC 7240).
type Prefer struct {
	Return     string // "minimal", "representation"
	Resolution string // "merge-duplicates"
	Count      string // "exact", "planned", "estimated"
}

// String renders the directives in PostgREST order:
// return=...,resolution=...,count=...
func (p Prefer) String() string {
	directives := make([]string, 0, 3)
	if p.Return != "" {
		directives = append(directives, "return="+p.Return)
	}
	if p.Resolution != "" {
		directives = append(directives, "resolution="+p.Resolution)
	}
	if p.Count != "" {
		directives = append(directives, "count="+p.Count)
	}
	return strings.Join(directives, ",")
}

// parsePrefer reads back the directives of a Prefer header value. Unknown
// directives and invalid return or count values are dropped. It returns nil
// for an empty value.
func parsePrefer(header string) *Prefer {
	if header == "" {
		return nil
	}

	p := &Prefer{}
	for _, directive := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(directive, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.Trim(strings.TrimSpace(value), `"`))

		switch key {
		case "return":
			if value == ReturnMinimal.String() || value == ReturnRepresentation.String() {
				p.Return = value
			}
		case "resolution":
			p.Resolution = value
		case "count":
			if _, ok := ParseCount(value); ok {
				p.Count = value
			}
		}
	}
	return p
}

// WantsCount reports whether a count directive was requested.
func (p *Prefer) WantsCount() bool {
	return p != nil && p.Count != ""
}

// preferFor composes the Prefer header of a mutating verb.
func preferFor(o *queryOptions) Prefer {
	p := Prefer{Return: o.returning.String()}
	if o.upsert {
		p.Resolution = "merge-duplicates"
	}
	if o.count != CountNone {
		p.Count = o.count.String()
	}
	return p
}
