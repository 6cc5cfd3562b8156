package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-seoform/internal/prompt"
	"github.com/goliatone/go-seoform/pkg/fields"
	"github.com/goliatone/go-seoform/pkg/fields/sqlitestore"
)

const defaultEntityType = "node"

func newFieldsCmd(a *app) *cobra.Command {
	var (
		fieldName   string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Attach, detach or inspect the SEO field on bundles",
	}
	cmd.PersistentFlags().StringVar(&fieldName, "field", fields.DefaultFieldName, "field machine name")
	cmd.PersistentFlags().BoolVarP(&interactive, "interactive", "i", false, "prompt for missing arguments")

	attach := &cobra.Command{
		Use:   "attach [entity_type bundle]",
		Short: "Attach the SEO field to a bundle",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(manager *fields.Manager) error {
				ctx := cmd.Context()
				entityType, bundle, err := a.target(ctx, manager, args, interactive)
				if err != nil {
					return err
				}
				if interactive {
					ok, err := a.driver.Confirm(ctx, prompt.ConfirmConfig{
						Message: fmt.Sprintf("Attach %s to %s/%s?", fieldName, entityType, bundle),
						Default: true,
					})
					if err != nil || !ok {
						return err
					}
				}
				def := fields.DefaultDefinition()
				def.FieldName = fieldName
				result, err := manager.Attach(ctx, entityType, bundle, def)
				if err != nil {
					return err
				}
				if result.FieldCreated {
					fmt.Fprintf(cmd.OutOrStdout(), "Attached %s to %s/%s\n", fieldName, entityType, bundle)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already attached to %s/%s\n", fieldName, entityType, bundle)
				}
				return nil
			})
		},
	}

	detach := &cobra.Command{
		Use:   "detach [entity_type bundle]",
		Short: "Remove the SEO field from a bundle",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(manager *fields.Manager) error {
				ctx := cmd.Context()
				entityType, bundle, err := a.target(ctx, manager, args, interactive)
				if err != nil {
					return err
				}
				if interactive {
					ok, err := a.driver.Confirm(ctx, prompt.ConfirmConfig{
						Message: fmt.Sprintf("Detach %s from %s/%s?", fieldName, entityType, bundle),
					})
					if err != nil || !ok {
						return err
					}
				}
				removed, err := manager.Detach(ctx, entityType, bundle, fieldName)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Detached %s from %s/%s\n", fieldName, entityType, bundle)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not attached to %s/%s\n", fieldName, entityType, bundle)
				}
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status [entity_type]",
		Short: "List the bundles carrying the SEO field",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType := defaultEntityType
			if len(args) == 1 {
				entityType = args[0]
			}
			return a.withManager(func(manager *fields.Manager) error {
				bundles, err := manager.Store().Bundles(cmd.Context(), entityType, fieldName)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"entity_type": entityType,
					"field_name":  fieldName,
					"bundles":     bundles,
				})
			})
		},
	}

	cmd.AddCommand(attach, detach, status)
	return cmd
}

func newProvisionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "provision <plan-file>",
		Short: "Create content types, fields and displays from a YAML plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := fields.LoadPlanFile(args[0])
			if err != nil {
				return err
			}
			return a.withManager(func(manager *fields.Manager) error {
				report, err := manager.Provision(cmd.Context(), plan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Provisioned %d content types, %d storages, %d fields\n",
					report.ContentTypesCreated, report.StoragesCreated, report.FieldsCreated)
				return nil
			})
		},
	}
}

func (a *app) withManager(fn func(*fields.Manager) error) error {
	store, err := sqlitestore.Open(a.cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	manager, err := fields.NewManager(store, fields.WithLogger(a.logger))
	if err != nil {
		return err
	}
	return fn(manager)
}

// target resolves entity type and bundle from args, prompting for whatever is
// missing when interactive is set.
func (a *app) target(ctx context.Context, manager *fields.Manager, args []string, interactive bool) (string, string, error) {
	switch len(args) {
	case 2:
		return args[0], args[1], nil
	case 1:
		if !interactive {
			return "", "", errors.New("bundle is required")
		}
		bundle, err := a.askBundle(ctx, manager)
		return args[0], bundle, err
	}
	if !interactive {
		return "", "", errors.New("entity_type and bundle are required (or use --interactive)")
	}
	entityType, err := a.driver.Input(ctx, prompt.InputConfig{
		Message:  "Entity type",
		Default:  defaultEntityType,
		Required: true,
	})
	if err != nil {
		return "", "", err
	}
	bundle, err := a.askBundle(ctx, manager)
	return strings.TrimSpace(entityType), bundle, err
}

func (a *app) askBundle(ctx context.Context, manager *fields.Manager) (string, error) {
	types, err := manager.Store().ContentTypes(ctx)
	if err != nil {
		return "", err
	}
	if len(types) == 0 {
		bundle, err := a.driver.Input(ctx, prompt.InputConfig{Message: "Bundle", Required: true})
		return strings.TrimSpace(bundle), err
	}
	options := make([]string, len(types))
	for i, ct := range types {
		options[i] = ct.Type
	}
	idx, err := a.driver.Select(ctx, prompt.SelectConfig{Message: "Bundle", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("bundle selection %d out of range", idx)
	}
	return options[idx], nil
}
