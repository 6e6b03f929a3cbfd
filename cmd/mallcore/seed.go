package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kasadel/mallcore/internal/observability/logger"
	"github.com/kasadel/mallcore/internal/service"
	"github.com/kasadel/mallcore/internal/store"
)

// seedFile es el formato del YAML de fixtures.
type seedFile struct {
	Channels []struct {
		Code     string `yaml:"code"`
		Name     string `yaml:"name"`
		Sections []struct {
			Code string `yaml:"code"`
			Name string `yaml:"name"`
		} `yaml:"sections"`
	} `yaml:"channels"`
	Coupons []struct {
		Name          string `yaml:"name"`
		DiscountUnit  string `yaml:"discount_unit"`
		DiscountValue int64  `yaml:"discount_value"`
		Stock         int64  `yaml:"stock"`
	} `yaml:"coupons"`
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga canales, secciones y cupones desde un YAML de fixtures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "mallcore"})
			log := logger.Named("seed")

			b, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var sf seedFile
			if err := yaml.Unmarshal(b, &sf); err != nil {
				return fmt.Errorf("seed: parsear %s: %w", file, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			repo, err := store.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			catalog := service.NewCatalogService(repo)
			coupons := service.NewCouponService(repo)

			for _, c := range sf.Channels {
				ch, err := catalog.CreateChannel(ctx, c.Code, c.Name)
				if err != nil {
					return fmt.Errorf("seed: canal %s: %w", c.Code, err)
				}
				for _, s := range c.Sections {
					if _, err := catalog.CreateSection(ctx, ch.ID, s.Code, s.Name); err != nil {
						return fmt.Errorf("seed: sección %s/%s: %w", c.Code, s.Code, err)
					}
				}
				log.Info("canal cargado", logger.String("code", c.Code), logger.Count(len(c.Sections)))
			}
			for _, c := range sf.Coupons {
				if _, err := coupons.CreateCoupon(ctx, service.CouponInput{
					Name:          c.Name,
					DiscountUnit:  c.DiscountUnit,
					DiscountValue: c.DiscountValue,
					Stock:         c.Stock,
				}); err != nil {
					return fmt.Errorf("seed: cupón %s: %w", c.Name, err)
				}
			}
			log.Info("seed completo",
				logger.Int("channels", len(sf.Channels)),
				logger.Int("coupons", len(sf.Coupons)),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "configs/seed.yaml", "YAML de fixtures")
	return cmd
}
