package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenlyst/greenmoney/internal/worker"
	"github.com/greenlyst/greenmoney/pkg/echeck"
	"github.com/greenlyst/greenmoney/pkg/model"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Create and manage check drafts",
	}

	cmd.AddCommand(
		newCheckDraftCommand(opts, false),
		newCheckDraftCommand(opts, true),
		newCheckLookupCommand(opts, "status", "Show the processing status of a check", echeck.CheckStatusSchema,
			func(ctx context.Context, c *echeck.Client, id string) (transport.Result, error) {
				return c.CheckStatus(ctx, id)
			}),
		newCheckLookupCommand(opts, "cancel", "Cancel a check that has not been processed", echeck.StatusSchema,
			func(ctx context.Context, c *echeck.Client, id string) (transport.Result, error) {
				return c.CancelCheck(ctx, id)
			}),
		newCheckLookupCommand(opts, "verify", "Show the verification result of a check", echeck.DraftSchema,
			func(ctx context.Context, c *echeck.Client, id string) (transport.Result, error) {
				return c.VerificationResult(ctx, id)
			}),
		newCheckLookupCommand(opts, "override", "Override a failed verification", echeck.DraftSchema,
			func(ctx context.Context, c *echeck.Client, id string) (transport.Result, error) {
				return c.OverrideVerification(ctx, id)
			}),
		newRefundCommand(opts),
		newNoteCommand(opts),
		newSignatureCommand(opts),
		newWatchCommand(opts),
	)

	return cmd
}

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <check-id>...",
		Short: "Poll checks until they are processed, rejected or deleted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			a, err := newApp(ctx, nil)
			if err != nil {
				return err
			}
			defer a.close(context.WithoutCancel(ctx))

			out := cmd.OutOrStdout()
			var printErr error
			w := worker.NewStatusWatcher(a.checks, interval, a.logger)
			err = w.Watch(ctx, args, func(s worker.Status) {
				if opts.format == formatDelimited {
					printErr = errors.Join(printErr, printResult(out, opts.format, a.client.Delimiter(), echeck.CheckStatusSchema, s.Result))
					return
				}
				_, werr := fmt.Fprintf(out, "%s\t%s\n", s.CheckID, s.State)
				printErr = errors.Join(printErr, werr)
			})
			return errors.Join(err, printErr)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Time between status lookups")

	return cmd
}

func newCheckLookupCommand(
	opts *rootOptions,
	use, short string,
	schema transport.Schema,
	call func(context.Context, *echeck.Client, string) (transport.Result, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <check-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, schema, func(ctx context.Context, a *app) (transport.Result, error) {
				return call(ctx, a.checks, args[0])
			})
		},
	}
}

// newCheckDraftCommand builds "single" or "recurring". A --signature image
// sends the draft with the customer's signature attached.
func newCheckDraftCommand(opts *rootOptions, recurring bool) *cobra.Command {
	var (
		customer  model.Party
		bank      model.BankAccount
		check     model.Check
		schedule  recurringFlags
		realtime  bool
		signature string
	)

	use, short := "single", "Enter a one-time check draft"
	if recurring {
		use, short = "recurring", "Enter a recurring check draft"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var image []byte
			if signature != "" {
				var err error
				if image, err = readImage(signature); err != nil {
					return err
				}
			}

			return withApp(cmd, opts, echeck.DraftSchema, func(ctx context.Context, a *app) (transport.Result, error) {
				if !recurring {
					if image != nil {
						return a.checks.SingleCheckWithSignature(ctx, customer, bank, check, image)
					}
					return a.checks.SingleCheck(ctx, customer, bank, check, realtime)
				}

				r := schedule.recurring(cmd)
				if r == nil {
					return nil, errors.New("--every is required for a recurring draft")
				}
				if image != nil {
					return a.checks.RecurringCheckWithSignature(ctx, customer, bank, check, *r, image)
				}
				return a.checks.RecurringCheck(ctx, customer, bank, check, *r, realtime)
			})
		},
	}

	addPartyFlags(cmd, &customer)
	addBankFlags(cmd, &bank)
	_ = cmd.MarkFlagRequired("routing")
	addCheckFlags(cmd, &check)
	if recurring {
		addRecurringFlags(cmd, &schedule)
	}
	cmd.Flags().BoolVar(&realtime, "realtime", true, "Verify the account in real time instead of in batch")
	cmd.Flags().StringVar(&signature, "signature", "", "Path to a JPEG of the customer's signature")

	return cmd
}

func newRefundCommand(opts *rootOptions) *cobra.Command {
	var memo, amount string

	cmd := &cobra.Command{
		Use:   "refund <check-id>",
		Short: "Refund a processed check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, echeck.RefundSchema, func(ctx context.Context, a *app) (transport.Result, error) {
				return a.checks.RefundCheck(ctx, args[0], memo, amount)
			})
		},
	}

	cmd.Flags().StringVar(&memo, "memo", "", "Refund memo")
	cmd.Flags().StringVar(&amount, "amount", "", "Refund amount")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newNoteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "note <check-id> <text>",
		Short: "Attach a note to a check",
		Long:  "Attach a note to a check. Notes longer than 2000 characters are truncated.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, echeck.StatusSchema, func(ctx context.Context, a *app) (transport.Result, error) {
				return a.checks.CheckNote(ctx, args[0], args[1])
			})
		},
	}
}

func newSignatureCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signature <check-id> <image.jpg>",
		Short: "Upload a signature image for an existing check",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := readImage(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, echeck.StatusSchema, func(ctx context.Context, a *app) (transport.Result, error) {
				return a.checks.UploadCheckSignature(ctx, args[0], image)
			})
		},
	}
}
