package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"venueadmin/internal/application/pages"
	settingsDomain "venueadmin/internal/domain/tablesettings"
)

func newSettingsCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or reset persisted table settings",
	}
	cmd.AddCommand(newSettingsShowCmd(st), newSettingsSetCmd(st), newSettingsResetCmd(st))
	return cmd
}

// checkEntity rejects names that are not registered list pages.
func checkEntity(rt *runtime, entity string) error {
	registry, err := pages.New(rt.deps)
	if err != nil {
		return err
	}
	if _, ok := registry.Get(entity); !ok {
		return fmt.Errorf("unknown entity %q", entity)
	}
	return nil
}

func newSettingsShowCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show <entity>",
		Short: "Print the saved and effective settings of a list as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), st.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			entity := args[0]
			if err := checkEntity(rt, entity); err != nil {
				return err
			}

			saved := rt.settings.Load(cmd.Context(), entity)
			doc := struct {
				Key       string                       `yaml:"key"`
				Saved     settingsDomain.TableSettings `yaml:"saved"`
				Effective settingsDomain.TableSettings `yaml:"effective"`
			}{
				Key:       rt.settings.Key(entity),
				Saved:     saved,
				Effective: rt.defaults.For(entity).Merge(saved),
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newSettingsSetCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:     "set <entity> <json>",
		Short:   "Merge a partial settings document into the saved settings",
		Example: `  venueadmin settings set bookings '{"sortingState":[{"id":"price","desc":true}]}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dec := json.NewDecoder(bytes.NewReader([]byte(args[1])))
			dec.DisallowUnknownFields()
			var patch settingsDomain.TableSettings
			if err := dec.Decode(&patch); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}
			if err := patch.Validate(); err != nil {
				return err
			}

			rt, err := openRuntime(cmd.Context(), st.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := checkEntity(rt, args[0]); err != nil {
				return err
			}
			rt.settings.Save(cmd.Context(), args[0], patch, true)
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", rt.settings.Key(args[0]))
			return nil
		},
	}
}

func newSettingsResetCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <entity>",
		Short: "Delete the saved settings of a list so the defaults apply again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), st.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := checkEntity(rt, args[0]); err != nil {
				return err
			}
			if err := rt.settings.Reset(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", rt.settings.Key(args[0]))
			return nil
		},
	}
}
