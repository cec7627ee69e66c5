package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/scribblepad/internal/config"
	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/site"
)

var force bool

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list attractor presets and viewport profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp := cfg.View()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "PRESET\tDESCRIPTION\tDT\tUNIT VEL\tSTEPS @ %gx%g\n", vp.Width, vp.Height)
			for _, p := range preset.List() {
				fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\n", p.Name(), p.Label, p.Dt, p.UnitVel, p.StepBudget(vp))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Println("\nprofiles:")
			for _, name := range config.ListProfiles() {
				pr, _ := config.GetProfile(name)
				fmt.Printf("  %-8s %gx%g stride %d\n", name, pr.Width, pr.Height, pr.ColorStride)
			}
			return nil
		},
	}
}

func newSiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "generate category index pages for a Jekyll-style site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger().Named("site")
			s, err := site.Load(cfg.Site.Source)
			if err != nil {
				return err
			}
			pages := site.GenerateCategories(s, log)
			if err := site.Write(s, cfg.Site.Destination); err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Println(p.URL())
			}
			log.Info("site generated",
				zap.Int("posts", len(s.Posts)),
				zap.Int("pages", len(pages)),
				zap.String("destination", cfg.Site.Destination),
			)
			return nil
		},
	}
	cmd.Flags().StringP("source", "s", config.DefaultConfig().Site.Source, "site source directory")
	cmd.Flags().StringP("destination", "d", config.DefaultConfig().Site.Destination, "output directory")
	_ = v.BindPFlag("site.source", cmd.Flags().Lookup("source"))
	_ = v.BindPFlag("site.destination", cmd.Flags().Lookup("destination"))
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "inspect or create the config file",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scribblepad.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
