// Command matchday runs the conversational sports dispatcher: an HTTP server
// for the turn protocol, plus one-shot chat and session-clear commands for
// local use.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hupe1980/matchday"
	"github.com/hupe1980/matchday/config"
	"github.com/hupe1980/matchday/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "matchday",
		Short:         "Intent-driven conversational sports dispatcher",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newChatCmd(&configPath))
	root.AddCommand(newClearCmd(&configPath))
	return root
}

func build(configPath string) (*matchday.Matchday, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	md, err := matchday.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return md, cfg, nil
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP turn protocol (/chat, /clear)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			md, cfg, err := build(*configPath)
			if err != nil {
				return err
			}
			srv := server.New(md, md.Store(), func(o *server.Options) { o.Logger = md.Logger() })
			return srv.ListenAndServe(cfg.ListenAddr)
		},
	}
}

func newChatCmd(configPath *string) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Run a single conversational turn",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, _, err := build(*configPath)
			if err != nil {
				return err
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			turn := md.Dispatch(cmd.Context(), sessionID, strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), turn.Result.Summary)
			return nil
		},
	}
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id (random when omitted)")
	return cmd
}

func newClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <session-id>",
		Short: "Clear a session's stored context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, _, err := build(*configPath)
			if err != nil {
				return err
			}
			if err := md.Store().Clear(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", args[0])
			return nil
		},
	}
}
