/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ohmyphone/daemon/pkg/client"
	"github.com/ohmyphone/daemon/pkg/version"
)

const (
	envURL         = "OMP_URL"
	envSecret      = "OMP_SECRET"
	defaultURL     = "http://127.0.0.1:8080"
	outputJSON     = "json"
	outputYAML     = "yaml"
	defaultTimeout = 45 * time.Second
)

var (
	errSecretMissing = errors.New("shared secret not set (use --secret or " + envSecret + ")")
	errBadToggle     = errors.New("expected on or off")
	errBadOutput     = errors.New("output must be json or yaml")
)

type globalOpts struct {
	url      string
	secret   string
	insecure bool
	output   string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:           "omp",
		Short:         "Control a handset running ohmyphoned",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.GetFullVersion(),
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// a missing .env is fine; flags and the real environment still apply
			_ = godotenv.Load()

			if opts.url == "" {
				opts.url = envOr(envURL, defaultURL)
			}

			if opts.secret == "" {
				opts.secret = os.Getenv(envSecret)
			}

			if opts.output != outputJSON && opts.output != outputYAML {
				return errBadOutput
			}

			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.url, "url", "", "Daemon base URL (default $"+envURL+" or "+defaultURL+")")
	flags.StringVar(&opts.secret, "secret", "", "Shared secret (default $"+envSecret+")")
	flags.BoolVar(&opts.insecure, "insecure", false, "Skip TLS certificate verification")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "Output format: json or yaml")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Overall request timeout")

	root.AddCommand(
		&cobra.Command{
			Use:   "health",
			Short: "Check the daemon is up (no secret needed)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.call(cmd, false, func(ctx context.Context, c *client.Client) (interface{}, error) {
					return c.Health(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show battery, signal, radio and call state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.call(cmd, true, func(ctx context.Context, c *client.Client) (interface{}, error) {
					return c.Status(ctx)
				})
			},
		},
		&cobra.Command{
			Use:       "data on|off",
			Short:     "Turn mobile data on or off",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"on", "off"},
			RunE: func(cmd *cobra.Command, args []string) error {
				enable, err := parseToggle(args[0])
				if err != nil {
					return err
				}

				return opts.call(cmd, true, func(ctx context.Context, c *client.Client) (interface{}, error) {
					return c.SetMobileData(ctx, enable)
				})
			},
		},
		&cobra.Command{
			Use:       "airplane on|off",
			Short:     "Turn airplane mode on or off",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"on", "off"},
			RunE: func(cmd *cobra.Command, args []string) error {
				enable, err := parseToggle(args[0])
				if err != nil {
					return err
				}

				return opts.call(cmd, true, func(ctx context.Context, c *client.Client) (interface{}, error) {
					return c.SetAirplaneMode(ctx, enable)
				})
			},
		},
		&cobra.Command{
			Use:   "forward on <number> | off",
			Short: "Set or clear unconditional call forwarding",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				enable, err := parseToggle(args[0])
				if err != nil {
					return err
				}

				var number string
				if len(args) == 2 {
					number = args[1]
				}

				return opts.call(cmd, true, func(ctx context.Context, c *client.Client) (interface{}, error) {
					return c.SetCallForwarding(ctx, enable, number)
				})
			},
		},
		&cobra.Command{
			Use:   "dial <number>",
			Short: "Place an outgoing call",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.call(cmd, true, func(ctx context.Context, c *client.Client) (interface{}, error) {
					return c.Dial(ctx, args[0])
				})
			},
		},
	)

	return root
}

type callFunc func(ctx context.Context, c *client.Client) (interface{}, error)

func (o *globalOpts) call(cmd *cobra.Command, signed bool, fn callFunc) error {
	secret := []byte(o.secret)

	if len(secret) == 0 {
		if signed {
			return errSecretMissing
		}

		// health is unsigned but New still wants a key
		secret = []byte("unused")
	}

	var clientOpts []client.Option
	if o.insecure {
		clientOpts = append(clientOpts, client.WithInsecureSkipVerify())
	}

	c, err := client.New(o.url, secret, clientOpts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	result, err := fn(ctx, c)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), o.output, result)
}

func render(w io.Writer, format string, v interface{}) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(toPlain(v)); err != nil {
			return err
		}

		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// toPlain round-trips v through JSON so YAML output uses the same snake_case keys.
func toPlain(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}

	return out
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "enable", "true", "1":
		return true, nil
	case "off", "disable", "false", "0":
		return false, nil
	}

	return false, fmt.Errorf("%w, got %q", errBadToggle, s)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}
