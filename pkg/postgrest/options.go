package postgrest

// QueryOption configures a select, insert, update, delete or rpc call.
// Options that do not apply to a verb are ignored.
type QueryOption func(*queryOptions)

type queryOptions struct {
	head       bool
	count      Count
	returning  Returning
	upsert     bool
	onConflict string
}

func applyQueryOptions(opts []QueryOption) *queryOptions {
	o := &queryOptions{returning: ReturnRepresentation}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHead issues a HEAD request instead of GET, so no rows are returned.
// Combine with WithCount to fetch only the row count.
func WithHead() QueryOption {
	return func(o *queryOptions) { o.head = true }
}

// WithCount asks PostgREST to report the total row count in Content-Range.
func WithCount(c Count) QueryOption {
	return func(o *queryOptions) { o.count = c }
}

// WithReturning overrides the default return=representation preference.
func WithReturning(r Returning) QueryOption {
	return func(o *queryOptions) { o.returning = r }
}

// WithUpsert turns an insert into an upsert (resolution=merge-duplicates).
func WithUpsert() QueryOption {
	return func(o *queryOptions) { o.upsert = true }
}

// WithOnConflict names the unique column(s) an upsert resolves on.
// It has no effect unless WithUpsert is also given.
func WithOnConflict(columns string) QueryOption {
	return func(o *queryOptions) { o.onConflict = columns }
}
