package postgrest

// FilterOperator is a PostgREST filter operator.
type FilterOperator int

const (
	OpEq FilterOperator = iota
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpLike
	OpILike
	OpIs
	OpIn
	OpCs
	OpCd
	OpSl
	OpSr
	OpNxl
	OpNxr
	OpAdj
	OpOv
	OpFts
	OpPlfts
	OpPhfts
	OpWfts
)

var operatorIdentifiers = [...]string{
	OpEq:    "eq",
	OpNeq:   "neq",
	OpGt:    "gt",
	OpGte:   "gte",
	OpLt:    "lt",
	OpLte:   "lte",
	OpLike:  "like",
	OpILike: "ilike",
	OpIs:    "is",
	OpIn:    "in",
	OpCs:    "cs",
	OpCd:    "cd",
	OpSl:    "sl",
	OpSr:    "sr",
	OpNxl:   "nxl",
	OpNxr:   "nxr",
	OpAdj:   "adj",
	OpOv:    "ov",
	OpFts:   "fts",
	OpPlfts: "plfts",
	OpPhfts: "phfts",
	OpWfts:  "wfts",
}

// String returns the operator's wire identifier, or "" for an unknown operator.
func (op FilterOperator) String() string {
	if op < 0 || int(op) >= len(operatorIdentifiers) {
		return ""
	}
	return operatorIdentifiers[op]
}

// TextSearchType selects the to_tsquery variant used by a full-text filter.
type TextSearchType int

const (
	TSVector  TextSearchType = iota // to_tsquery
	PlainTo                         // plainto_tsquery
	PhraseTo                        // phraseto_tsquery
	WebSearch                       // websearch_to_tsquery
)

// Operator returns the filter operator PostgREST maps to the search type.
// Unknown types use to_tsquery.
func (t TextSearchType) Operator() FilterOperator {
	switch t {
	case PlainTo:
		return OpPlfts
	case PhraseTo:
		return OpPhfts
	case WebSearch:
		return OpWfts
	}
	return OpFts
}

func (t TextSearchType) String() string {
	return t.Operator().String()
}

// ParseFilterOperator returns the operator with wire identifier s.
func ParseFilterOperator(s string) (FilterOperator, bool) {
	for op, id := range operatorIdentifiers {
		if id == s {
			return FilterOperator(op), true
		}
	}
	return 0, false
}

// ParseCount returns the Count named s ("exact", "planned", "estimated").
func ParseCount(s string) (Count, bool) {
	switch s {
	case "exact":
		return CountExact, true
	case "planned":
		return CountPlanned, true
	case "estimated":
		return CountEstimated, true
	}
	return CountNone, false
}
