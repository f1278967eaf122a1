// Package cli implements the payline command line: one subcommand per
// gateway operation, printing the interpreted response as JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DanielPopoola/payline-gateway/internal/gateway"
	"github.com/DanielPopoola/payline-gateway/internal/message"
)

// GatewayFactory builds the gateway a command runs against. The returned
// func releases whatever the gateway holds open.
type GatewayFactory func(ctx context.Context, variant gateway.Variant, dryRun bool) (*gateway.Gateway, func(), error)

type app struct {
	out        io.Writer
	newGateway GatewayFactory
	dryRun     bool
}

// Execute runs the root command
func Execute(version string) error {
	root := NewRootCommand(version, os.Stdout, NewGateway)
	if err := root.Execute(); err != nil {
		if category := gateway.CategorizeError(err); category != gateway.CategoryUnknown {
			fmt.Fprintf(os.Stderr, "Error (%s): %v\n", category, err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

func NewRootCommand(version string, out io.Writer, factory GatewayFactory) *cobra.Command {
	a := &app{out: out, newGateway: factory}

	root := &cobra.Command{
		Use:   "payline",
		Short: "Send payment requests to the Payline web services",
		Long: `payline builds Payline DirectPayment and WebPayment requests from flags,
sends them and prints the response as JSON.

Merchant settings are read from PAYLINE_* environment variables (or a .env file).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "Print the request payload instead of sending it")

	root.AddCommand(
		a.cardCommand("authorize", "Authorize an amount on a card", gateway.Direct, message.KindAuthorize),
		a.cardCommand("purchase", "Authorize and capture an amount on a card", gateway.Direct, message.KindPurchase),
		a.cardCommand("credit", "Credit an amount to a card", gateway.Direct, message.KindCredit),
		a.transactionCommand("capture", "Capture a previous authorization", message.KindCapture),
		a.transactionCommand("refund", "Refund a captured transaction", message.KindRefund),
		a.webCommand(),
		a.completeCommand(),
	)

	return root
}

// run creates the request for kind and either prints its payload or sends
// it and prints the response.
func (a *app) run(ctx context.Context, variant gateway.Variant, kind message.Kind, params gateway.Params) error {
	g, release, err := a.newGateway(ctx, variant, a.dryRun)
	if err != nil {
		return err
	}
	defer release()

	req, err := g.CreateRequest(kind, params)
	if err != nil {
		return err
	}

	if a.dryRun {
		payload, err := req.Data()
		if err != nil {
			return err
		}
		return a.print(map[string]any{
			"endpoint": g.Endpoint(),
			"method":   req.Method(),
			"payload":  payload,
		})
	}

	resp, err := req.Send(ctx)
	if err != nil {
		return err
	}

	code, _ := resp.Code()
	out := map[string]any{
		"successful": resp.IsSuccessful(),
		"code":       code,
		"response":   resp.Data(),
	}
	if web, ok := resp.(*message.WebResponse); ok && web.IsRedirect() {
		out["redirectURL"], _ = web.RedirectURL()
	}
	return a.print(out)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
