package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"loadorder-manager/core/config"
	"loadorder-manager/core/locks"
	"loadorder-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// lockCmd is the parent command for persisted lock edits.
var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Manage persisted plugin locks",
	Long: `Edit the plugin locks stored in the database. A running server picks up
changes made here on the next forced reconcile of the profile
(POST /loadorder/{profile}/reconcile) or after a restart.`,
}

var lockSetCmd = &cobra.Command{
	Use:   "set <profile> <identifier> <index>",
	Short: "Lock a plugin to an absolute load index",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: %q", locks.ErrInvalidIndex, args[2])
		}
		return withRegistry(cmd, func(ctx context.Context, reg *locks.Registry) error {
			if err := reg.Set(ctx, args[0], args[1], index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s locked to %d\n", args[1], index)
			return nil
		})
	},
}

var lockClearCmd = &cobra.Command{
	Use:   "clear <profile> <identifier>",
	Short: "Remove the lock of a plugin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(cmd, func(ctx context.Context, reg *locks.Registry) error {
			return reg.Clear(ctx, args[0], args[1])
		})
	},
}

var lockListCmd = &cobra.Command{
	Use:   "list <profile>",
	Short: "List the locks of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(cmd, func(ctx context.Context, reg *locks.Registry) error {
			lockMap, err := reg.Load(ctx, args[0])
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(lockMap))
			for id := range lockMap {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				if lockMap[ids[i]] != lockMap[ids[j]] {
					return lockMap[ids[i]] < lockMap[ids[j]]
				}
				return ids[i] < ids[j]
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tPLUGIN")
			for _, id := range ids {
				fmt.Fprintf(w, "%d\t%s\n", lockMap[id], id)
			}
			return w.Flush()
		})
	},
}

func init() {
	lockCmd.AddCommand(lockSetCmd, lockClearCmd, lockListCmd)
	RootCmd.AddCommand(lockCmd)
}

// withRegistry opens the persisted lock store and runs fn against a registry on top of it.
func withRegistry(cmd *cobra.Command, fn func(ctx context.Context, reg *locks.Registry) error) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openLockStore(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	if err := fn(ctx, locks.NewRegistry(store, l)); err != nil {
		l.Debug("Lock command failed", zap.Error(err))
		return err
	}
	return nil
}
