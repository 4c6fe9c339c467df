package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gobank/internal/adapter/http/dto"
)

func (c *cli) loginCmd() *cobra.Command {
	var req dto.AuthRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.TokenResponse
			if err := c.client().do(cmd.Context(), http.MethodPost, "/api/v1/auth", &req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.AccountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&req.PIN, "pin", "", "Account PIN")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}

func (c *cli) accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	cmd.AddCommand(
		c.createAccountCmd(),
		c.getAccountCmd(),
		c.listAccountsCmd(),
		c.historyCmd(),
	)

	return cmd
}

func (c *cli) createAccountCmd() *cobra.Command {
	var (
		req     dto.CreateAccountRequest
		balance string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(balance)
			if err != nil {
				return err
			}
			req.InitialBalance = amount

			var resp dto.AccountResponse
			if err := c.client().do(cmd.Context(), http.MethodPost, "/api/v1/accounts", &req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.AccountID, "id", "", "Account ID")
	cmd.Flags().StringVar(&req.PIN, "pin", "", "4-digit PIN")
	cmd.Flags().StringVar(&balance, "balance", "0", "Initial balance")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}

func (c *cli) getAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			if err := c.client().do(cmd.Context(), http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0]), nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func (c *cli) listAccountsCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListAccountsResponse
			if err := c.client().do(cmd.Context(), http.MethodGet, "/api/v1/accounts"+pageQuery(limit, offset, ""), nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of accounts")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of accounts to skip")

	return cmd
}

func (c *cli) historyCmd() *cobra.Command {
	var (
		limit, offset int
		order         string
	)

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show an account's transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/accounts/" + url.PathEscape(args[0]) + "/transactions" + pageQuery(limit, offset, order)

			var resp dto.ListTransactionsResponse
			if err := c.client().do(cmd.Context(), http.MethodGet, path, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of transactions")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().StringVar(&order, "order", "", "Sort order: asc or desc")

	return cmd
}

func (c *cli) depositCmd() *cobra.Command {
	var (
		req             dto.DepositRequest
		amount, idemKey string
	)

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit funds into an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			req.Amount = value

			var resp dto.BalanceChangeResponse
			if err := c.client().do(cmd.Context(), http.MethodPost, "/api/v1/transactions/deposit", &req, &resp, withIdempotencyKey(idemKey)); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.AccountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	cmd.Flags().StringVar(&idemKey, "idempotency-key", "", "Idempotency key")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (c *cli) withdrawCmd() *cobra.Command {
	var (
		req             dto.WithdrawRequest
		amount, idemKey string
	)

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw funds from an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			req.Amount = value

			var resp dto.BalanceChangeResponse
			if err := c.client().do(cmd.Context(), http.MethodPost, "/api/v1/transactions/withdraw", &req, &resp, withIdempotencyKey(idemKey)); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.AccountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to withdraw")
	cmd.Flags().StringVar(&idemKey, "idempotency-key", "", "Idempotency key")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (c *cli) transferCmd() *cobra.Command {
	var (
		req             dto.TransferRequest
		amount, idemKey string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds between accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			req.Amount = value

			var resp dto.TransferResponse
			if err := c.client().do(cmd.Context(), http.MethodPost, "/api/v1/transactions/transfer", &req, &resp, withIdempotencyKey(idemKey)); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.FromAccountID, "from", "", "Sending account ID")
	cmd.Flags().StringVar(&req.ToAccountID, "to", "", "Receiving account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&req.SenderPIN, "pin", "", "Sender PIN (optional)")
	cmd.Flags().StringVar(&idemKey, "idempotency-key", "", "Idempotency key")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (c *cli) ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ConsistencyResponse
			err := c.client().do(cmd.Context(), http.MethodGet, "/api/v1/ledger/consistency", nil, &report)

			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
				fmt.Fprintln(cmd.OutOrStdout(), "Consistency check FAILED")
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				return errInconsistent
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Consistency check PASSED")
			return printJSON(cmd.OutOrStdout(), report)
		},
	})

	return cmd
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

func pageQuery(limit, offset int, order string) string {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if order != "" {
		q.Set("order", order)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
