package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the resolved settings shared by every command.
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	var configFile string

	rootCmd := &cobra.Command{
		Use:           "gobank-cli",
		Short:         "GoBank CLI tool",
		Long:          `A command line interface for interacting with the GoBank API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(configFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a YAML config file (url, timeout, token)")
	flags.String("url", "http://localhost:8080", "Base URL of the GoBank API")
	flags.Duration("timeout", 10*time.Second, "Request timeout")
	flags.String("token", "", "Bearer token for authenticated requests")

	for _, name := range []string{"url", "timeout", "token"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}
	c.v.SetEnvPrefix("GOBANK")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	rootCmd.AddCommand(
		c.loginCmd(),
		c.accountsCmd(),
		c.depositCmd(),
		c.withdrawCmd(),
		c.transferCmd(),
		c.ledgerCmd(),
	)

	return rootCmd
}

func (c *cli) loadConfig(path string) error {
	if path == "" {
		return nil
	}

	c.v.SetConfigFile(path)
	c.v.SetConfigType("yaml")
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func (c *cli) client() *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(c.v.GetString("url"), "/"),
		token:   c.v.GetString("token"),
		http:    &http.Client{Timeout: c.v.GetDuration("timeout")},
	}
}

var errInconsistent = errors.New("ledger is inconsistent")
