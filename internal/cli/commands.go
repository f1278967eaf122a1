package cli

import (
	"github.com/spf13/cobra"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/gateway"
	"github.com/DanielPopoola/payline-gateway/internal/message"
)

// cardCommand covers the DirectPayment calls that charge or credit a card.
func (a *app) cardCommand(name, short string, variant gateway.Variant, kind message.Kind) *cobra.Command {
	var (
		amount   amountFlags
		order    orderFlags
		customer customerFlags
		card     cardFlags
	)

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := amount.params()
			if err := order.apply(&params.PaymentIntent); err != nil {
				return err
			}
			params.Customer = customer.customer()
			params.Card = card.card(params.Customer)
			return a.run(cmd.Context(), variant, kind, params)
		},
	}

	amount.bind(cmd.Flags())
	order.bind(cmd.Flags())
	customer.bind(cmd.Flags())
	card.bind(cmd.Flags())

	return cmd
}

// transactionCommand covers the calls that act on an existing remote
// transaction.
func (a *app) transactionCommand(name, short string, kind message.Kind) *cobra.Command {
	var (
		amount    amountFlags
		order     orderFlags
		reference string
	)

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := amount.params()
			if err := order.apply(&params.PaymentIntent); err != nil {
				return err
			}
			params.TransactionReference = reference
			return a.run(cmd.Context(), gateway.Direct, kind, params)
		},
	}

	amount.bind(cmd.Flags())
	order.bind(cmd.Flags())
	cmd.Flags().StringVar(&reference, "transaction-ref", "", "Remote transaction id")

	return cmd
}

func (a *app) webCommand() *cobra.Command {
	var (
		amount   amountFlags
		order    orderFlags
		customer customerFlags
		card     cardFlags
		capture  bool
		urls     struct{ ret, cancel, notify string }
	)

	cmd := &cobra.Command{
		Use:   "web-authorize",
		Short: "Open a hosted payment session and print the redirect URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := amount.params()
			if err := order.apply(&params.PaymentIntent); err != nil {
				return err
			}
			params.Customer = customer.customer()
			params.Card = card.card(params.Customer)
			params.ReturnURL = urls.ret
			params.CancelURL = urls.cancel
			params.NotifyURL = urls.notify

			kind := message.KindWebAuthorize
			if capture {
				kind = message.KindWebPurchase
			}
			return a.run(cmd.Context(), gateway.Web, kind, params)
		},
	}

	amount.bind(cmd.Flags())
	order.bind(cmd.Flags())
	customer.bind(cmd.Flags())
	card.bind(cmd.Flags())
	cmd.Flags().BoolVar(&capture, "capture", false, "Capture immediately instead of authorizing only")
	cmd.Flags().StringVar(&urls.ret, "return-url", "", "Where the buyer lands after paying")
	cmd.Flags().StringVar(&urls.cancel, "cancel-url", "", "Where the buyer lands after cancelling")
	cmd.Flags().StringVar(&urls.notify, "notify-url", "", "Server notification URL")

	return cmd
}

func (a *app) completeCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Fetch the outcome of a hosted payment session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := gateway.Params{PaymentIntent: domain.PaymentIntent{Token: token}}
			return a.run(cmd.Context(), gateway.Web, message.KindCompleteAuthorize, params)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Web payment session token")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}
