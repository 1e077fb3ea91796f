package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edgeflare/pgrest/pkg/jsonconv"
	"github.com/edgeflare/pgrest/pkg/postgrest"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var queryCmd = &cobra.Command{
	Use:   "query <table>",
	Short: "Select rows from a table or view",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

var insertCmd = &cobra.Command{
	Use:   "insert <table>",
	Short: "Insert (or upsert) rows given as a JSON object or array",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsert,
}

var updateCmd = &cobra.Command{
	Use:   "update <table>",
	Short: "Update the rows matched by --filter with a JSON object",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <table>",
	Short: "Delete the rows matched by --filter",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	for _, cmd := range []*cobra.Command{queryCmd, insertCmd, updateCmd, deleteCmd} {
		f := cmd.Flags()
		f.StringArrayP("filter", "f", nil, "filter as column=op.value, e.g. age=gte.18 or name=not.is.null (repeatable)")
		f.String("or", "", "or filter expression, e.g. 'age.lt.18,age.gt.65'")
		f.String("count", "", "count algorithm (exact, planned, estimated)")
		f.String("order", "", "order as column[.asc|.desc][.nullsfirst|.nullslast]")
		f.Int64("limit", 0, "maximum number of rows")
		f.Int64("offset", 0, "number of rows to skip (requires --limit)")
		f.Bool("single", false, "expect exactly one row and print it as an object")
		f.StringP("extract", "x", "", "print only the values at a jq-like path, e.g. '[*].name'")
	}

	queryCmd.Flags().StringP("select", "s", "*", "columns to select")
	queryCmd.Flags().Bool("head", false, "issue a HEAD request (use with --count)")

	for _, cmd := range []*cobra.Command{insertCmd, updateCmd} {
		cmd.Flags().StringP("data", "d", "", "JSON payload ('-' reads stdin)")
		cmd.MarkFlagRequired("data")
	}
	insertCmd.Flags().Bool("upsert", false, "merge duplicates instead of failing")
	insertCmd.Flags().String("on-conflict", "", "unique column(s) the upsert resolves on")

	for _, cmd := range []*cobra.Command{insertCmd, updateCmd, deleteCmd} {
		cmd.Flags().Bool("minimal", false, "do not return the affected rows")
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	f := cmd.Flags()

	opts, err := verbOptions(f)
	if err != nil {
		return err
	}
	if head, _ := f.GetBool("head"); head {
		opts = append(opts, postgrest.WithHead())
	}
	columns, _ := f.GetString("select")

	return run(cmd, client.From(args[0]).Select(columns, opts...))
}

func runInsert(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	f := cmd.Flags()

	data, err := readData(f)
	if err != nil {
		return err
	}
	opts, err := verbOptions(f)
	if err != nil {
		return err
	}
	if upsert, _ := f.GetBool("upsert"); upsert {
		opts = append(opts, postgrest.WithUpsert())
	}
	if onConflict, _ := f.GetString("on-conflict"); onConflict != "" {
		opts = append(opts, postgrest.WithOnConflict(onConflict))
	}

	return run(cmd, client.From(args[0]).Insert(data, opts...))
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	f := cmd.Flags()

	data, err := readData(f)
	if err != nil {
		return err
	}
	opts, err := verbOptions(f)
	if err != nil {
		return err
	}

	return run(cmd, client.From(args[0]).Update(data, opts...))
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	opts, err := verbOptions(cmd.Flags())
	if err != nil {
		return err
	}

	return run(cmd, client.From(args[0]).Delete(opts...))
}

// run applies the shared filter and transform flags, executes q and prints the result.
func run(cmd *cobra.Command, q *postgrest.FilterBuilder) error {
	f := cmd.Flags()

	filters, _ := f.GetStringArray("filter")
	for _, filter := range filters {
		var err error
		if q, err = applyFilter(q, filter); err != nil {
			return err
		}
	}
	if or, _ := f.GetString("or"); or != "" {
		q = q.Or(or)
	}

	t := &q.TransformBuilder
	if order, _ := f.GetString("order"); order != "" {
		column, opts := parseOrder(order)
		t = t.Order(column, opts)
	}
	limit, _ := f.GetInt64("limit")
	offset, _ := f.GetInt64("offset")
	t, err := paginate(t, limit, offset)
	if err != nil {
		return err
	}

	path, _ := f.GetString("extract")
	if single, _ := f.GetBool("single"); single {
		resp, err := postgrest.ExecuteSingle[any](cmd.Context(), t.Single())
		if err != nil {
			return describe(err)
		}
		return printResult(resp.Body, path, resp.Count)
	}

	resp, err := postgrest.Execute[any](cmd.Context(), t)
	if err != nil {
		return describe(err)
	}
	return printResult(resp.Body, path, resp.Count)
}

// paginate applies --limit and --offset. An offset needs a limit because
// Range is the only transform that sets one.
func paginate(t *postgrest.TransformBuilder, limit, offset int64) (*postgrest.TransformBuilder, error) {
	switch {
	case limit < 0 || offset < 0:
		return nil, fmt.Errorf("--limit and --offset must not be negative")
	case offset > 0 && limit == 0:
		return nil, fmt.Errorf("--offset requires --limit")
	case offset > 0:
		return t.Range(offset, offset+limit-1), nil
	case limit > 0:
		return t.Limit(limit), nil
	}
	return t, nil
}

func verbOptions(f *pflag.FlagSet) ([]postgrest.QueryOption, error) {
	var opts []postgrest.QueryOption
	if c, _ := f.GetString("count"); c != "" {
		count, ok := postgrest.ParseCount(c)
		if !ok {
			return nil, fmt.Errorf("invalid count %q", c)
		}
		opts = append(opts, postgrest.WithCount(count))
	}
	if minimal, _ := f.GetBool("minimal"); minimal {
		opts = append(opts, postgrest.WithReturning(postgrest.ReturnMinimal))
	}
	return opts, nil
}

// applyFilter parses column=[not.]op.value.
func applyFilter(q *postgrest.FilterBuilder, filter string) (*postgrest.FilterBuilder, error) {
	column, expr, ok := strings.Cut(filter, "=")
	if !ok || column == "" {
		return nil, fmt.Errorf("invalid filter %q: want column=op.value", filter)
	}

	negate := false
	if rest, found := strings.CutPrefix(expr, "not."); found {
		negate, expr = true, rest
	}

	opName, value, ok := strings.Cut(expr, ".")
	if !ok {
		return nil, fmt.Errorf("invalid filter %q: want column=op.value", filter)
	}
	op, ok := postgrest.ParseFilterOperator(opName)
	if !ok {
		return nil, fmt.Errorf("invalid filter %q: unknown operator %q", filter, opName)
	}

	if negate {
		return q.Not(column, op, value), nil
	}
	return q.Filter(column, op, value), nil
}

func parseOrder(order string) (string, *postgrest.OrderOptions) {
	opts := &postgrest.OrderOptions{}
	column := order
	for {
		switch {
		case strings.HasSuffix(column, ".nullsfirst"):
			column, opts.NullsFirst = strings.TrimSuffix(column, ".nullsfirst"), true
		case strings.HasSuffix(column, ".nullslast"):
			column, opts.NullsFirst = strings.TrimSuffix(column, ".nullslast"), false
		case strings.HasSuffix(column, ".desc"):
			column, opts.Descending = strings.TrimSuffix(column, ".desc"), true
		case strings.HasSuffix(column, ".asc"):
			column, opts.Descending = strings.TrimSuffix(column, ".asc"), false
		default:
			return column, opts
		}
	}
}

func readData(f *pflag.FlagSet) (any, error) {
	raw, _ := f.GetString("data")
	data := []byte(raw)
	if raw == "-" {
		var err error
		if data, err = readStdin(); err != nil {
			return nil, err
		}
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid --data JSON: %w", err)
	}
	return v, nil
}

// printResult writes body, or the values at path within it, to stdout and
// the row count to stderr.
func printResult(body any, path string, count *int64) error {
	if path != "" {
		var err error
		if body, err = jsonconv.Extract(body, path); err != nil {
			return fmt.Errorf("--extract %s: %w", path, err)
		}
	}

	out, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	if count != nil {
		fmt.Fprintln(os.Stderr, "count: "+strconv.FormatInt(*count, 10))
	}
	return nil
}
