package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edgeflare/pgrest/pkg/postgrest"
	"github.com/spf13/cobra"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc <function>",
	Short: "Call a stored procedure",
	Args:  cobra.ExactArgs(1),
	RunE:  runRPC,
}

func init() {
	f := rpcCmd.Flags()
	f.StringP("data", "d", "{}", "JSON object of named arguments ('-' reads stdin)")
	f.String("count", "", "count algorithm (exact, planned, estimated)")
	f.Bool("text", false, "request text/plain and print the raw body")
	f.StringP("extract", "x", "", "print only the values at a jq-like path")
}

func runRPC(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	f := cmd.Flags()

	params, err := readData(f)
	if err != nil {
		return err
	}
	opts, err := verbOptions(f)
	if err != nil {
		return err
	}
	q := client.RPC(args[0], params, opts...)

	if text, _ := f.GetBool("text"); text {
		resp, err := postgrest.ExecuteText(cmd.Context(), q)
		if err != nil {
			return describe(err)
		}
		fmt.Println(resp.Body)
		return nil
	}

	resp, err := postgrest.ExecuteSingle[any](cmd.Context(), q)
	if err != nil {
		return describe(err)
	}
	path, _ := f.GetString("extract")
	return printResult(resp.Body, path, resp.Count)
}

// describe adds the PostgREST error object to err's message.
func describe(err error) error {
	var httpErr *postgrest.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	if d, ok := httpErr.Details(); ok {
		return fmt.Errorf("%w: %s (%s) %s", err, d.Message, d.Code, d.Hint)
	}
	if httpErr.Body != "" {
		return fmt.Errorf("%w: %s", err, httpErr.Body)
	}
	return err
}

func readStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
