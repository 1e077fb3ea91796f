// Package postgrest is a query builder and client for PostgREST.
//
// A Client produces a QueryBuilder for a table. Its verb methods (Select,
// Insert, Upsert, Update, Delete) fix the HTTP method and return a
// FilterBuilder; filters and transforms accumulate query parameters and
// headers until the request is run with Execute, ExecuteSingle or
// ExecuteText, which issue exactly one HTTP request:
//
//	client, err := postgrest.NewClient("http://localhost:3000", postgrest.WithSchema("api"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	q := client.From("messages").
//		Select("id, username, message", postgrest.WithCount(postgrest.CountExact)).
//		Eq("channel_id", 1).
//		Order("inserted_at", &postgrest.OrderOptions{Descending: true}).
//		Range(0, 24)
//
//	resp, err := postgrest.Execute[Message](ctx, q)
//
// Query parameters follow the PostgREST grammar:
//
//	Builder call                    | Query string / header
//	--------------------------------|------------------------------------------
//	Select("a, b")                  | ?select=a,b
//	Eq("col", 1)                    | ?col=eq.1
//	Not("col", OpIs, nil)           | ?col=not.is.null
//	In("col", "a", "b")             | ?col=in.("a","b")
//	Or("a.eq.1,b.gt.2")             | ?or=(a.eq.1,b.gt.2)
//	Order("col", nil)               | ?order=col.asc.nullslast
//	Range(5, 10)                    | ?offset=5&limit=6
//	Single()                        | Accept: application/vnd.pgrst.object+json
//	Insert(v, WithUpsert())         | Prefer: return=representation,resolution=merge-duplicates
//	WithCount(CountExact)           | Prefer: count=exact
//
// Builders are immutable and safe to share between goroutines. Non-2xx
// responses are returned as *HTTPError; failures to obtain or decode a
// response as *TransportError. Context cancellation is returned unchanged.
//
// See https://docs.postgrest.org/en/stable/references/api/tables_views.html
package postgrest
