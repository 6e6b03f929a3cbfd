package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kasadel/mallcore/internal/config"
)

var cfgPath string

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mallcore",
		Short:         "Backend de comercio multi-actor (admin, seller, buyer)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// .env es opcional; las vars ya seteadas tienen prioridad.
			_ = godotenv.Load()
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "ruta al YAML de configuración")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(seedCmd())
	return cmd
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}
