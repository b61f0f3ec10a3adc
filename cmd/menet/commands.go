package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"mecore/internal/blob"
	"mecore/internal/core"
	"mecore/internal/export"
	"mecore/internal/modelio"
)

type rootOptions struct {
	modelPath string
	logLevel  string
	trace     bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "menet",
		Short:         "Assemble and inspect growth-coupled process networks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&opts.modelPath, "file", "f", "model.yaml", "YAML model definition")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&opts.trace, "trace", false, "write operation spans as JSON lines to stderr")

	root.AddCommand(
		&cobra.Command{
			Use:   "build",
			Short: "Build the network, recompute every reaction and print its stoichiometry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := opts.service(cmd, nil)
				if err != nil {
					return err
				}
				return export.WriteStoichiometry(cmd.OutOrStdout(), svc.Snapshot())
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Run the network rules and print every violation",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := opts.service(cmd, nil)
				if err != nil {
					return err
				}
				res, err := svc.Validate(cmd.Context())
				var rve core.RuleViolationError
				if err != nil && !errors.As(err, &rve) {
					return err
				}
				out := cmd.OutOrStdout()
				for _, v := range res.Violations {
					fmt.Fprintf(out, "%s\t%s\t%s/%s\t%s\n", v.Severity, v.Rule, v.Entity, v.EntityID, v.Message)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "ok: %d violations, none blocking\n", len(res.Violations))
				return nil
			},
		},
		&cobra.Command{
			Use:   "export",
			Short: "Write a snapshot and stoichiometry table to the configured blob store",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := opts.service(cmd, nil)
				if err != nil {
					return err
				}
				store, err := blob.Open(cmd.Context())
				if err != nil {
					return fmt.Errorf("open blob store: %w", err)
				}
				m, err := export.New(store).Export(cmd.Context(), svc.Snapshot())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			},
		},
		&cobra.Command{
			Use:   "save",
			Short: "Persist the network snapshot to the configured storage driver",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := core.OpenSnapshotStore(cmd.Context())
				if err != nil {
					return fmt.Errorf("open snapshot store: %w", err)
				}
				if c, ok := store.(io.Closer); ok {
					defer c.Close()
				}
				svc, err := opts.service(cmd, store)
				if err != nil {
					return err
				}
				if err := svc.Save(cmd.Context()); err != nil {
					return err
				}
				snap := svc.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "saved %d species and %d reactions\n", len(snap.Species), len(snap.Reactions))
				return nil
			},
		},
	)
	return root
}

func (o *rootOptions) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(o.logLevel))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", o.logLevel)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// service loads the model and wraps the built network in a service using the
// default rules. A nil snapshot store disables persistence.
func (o *rootOptions) service(cmd *cobra.Command, snapshots core.SnapshotStore) (*core.Service, error) {
	logger, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	model, err := modelio.LoadFile(o.modelPath)
	if err != nil {
		return nil, err
	}
	network, err := model.NewNetwork(core.WithNetworkLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}
	if n := len(network.DrainWarnings()); n > 0 {
		logger.Info("network built with warnings", "count", n)
	}
	svcOpts := []core.ServiceOption{core.WithLogger(logger)}
	if o.trace {
		svcOpts = append(svcOpts, core.WithTracer(core.NewJSONTracer(cmd.ErrOrStderr())))
	}
	if snapshots != nil {
		svcOpts = append(svcOpts, core.WithSnapshotStore(snapshots))
	}
	return core.NewService(core.NewStore(network, core.NewDefaultRulesEngine()), svcOpts...), nil
}
