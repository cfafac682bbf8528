package config

import (
	"testing"

	"oliu-backend/internal/catalog"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Report.TargetSales = 200_000_000
	cfg.Products = []catalog.Product{
		{Name: "MÍT 500G", Price: 115000, Column: 16},
	}
	return cfg
}

func TestValidate(t *testing.T) {
	if err := validate(validConfig()); err != nil {
		t.Fatalf("validate error = %v, want nil", err)
	}

	t.Run("empty catalog", func(t *testing.T) {
		cfg := validConfig()
		cfg.Products = nil
		if err := validate(cfg); err == nil {
			t.Fatal("validate must reject an empty catalog")
		}
	})

	t.Run("zero sales target", func(t *testing.T) {
		cfg := validConfig()
		cfg.Report.TargetSales = 0
		if err := validate(cfg); err == nil {
			t.Fatal("validate must reject a zero sales target")
		}
	})

	t.Run("negative sales target", func(t *testing.T) {
		cfg := validConfig()
		cfg.Report.TargetSales = -1
		if err := validate(cfg); err == nil {
			t.Fatal("validate must reject a negative sales target")
		}
	})
}
