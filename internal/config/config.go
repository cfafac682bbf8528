package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"oliu-backend/internal/catalog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries one deployment variant. The two known deployments differ in
// catalog, column offsets, row width, identifier policy and leaderboard size;
// all of that is data here, not code paths.
type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Sheet struct {
		Backend        string `mapstructure:"backend"` // sheets, excel or memory
		ShareURL       string `mapstructure:"share_url"`
		CredentialsB64 string `mapstructure:"credentials_b64"`
		ExcelPath      string `mapstructure:"excel_path"`
		Worksheet      string `mapstructure:"worksheet"`
		HeaderRow      int    `mapstructure:"header_row"`    // 1-based
		AnchorColumn   int    `mapstructure:"anchor_column"` // column counted to find the first empty row
		RowWidth       int    `mapstructure:"row_width"`
		IDPolicy       string `mapstructure:"id_policy"` // "sheet": store assigns; "increment": previous id + 1
		IDHeader       string `mapstructure:"id_header"`
	} `mapstructure:"sheet"`

	Order struct {
		Warehouses      []string `mapstructure:"warehouses"`
		DeliveryMethods []string `mapstructure:"delivery_methods"`
		DeliveryWindows []string `mapstructure:"delivery_windows"`
	} `mapstructure:"order"`

	Report struct {
		TargetSales        int64  `mapstructure:"target_sales"`
		MoneyHeader        string `mapstructure:"money_header"`
		TotalDueHeader     string `mapstructure:"total_due_header"`
		SalespersonHeader  string `mapstructure:"salesperson_header"`
		UnknownSalesperson string `mapstructure:"unknown_salesperson"`
		TopN               int    `mapstructure:"top_n"`
		ProductColStart    int    `mapstructure:"product_col_start"` // 1-based, inclusive
		ProductColEnd      int    `mapstructure:"product_col_end"`   // 1-based, inclusive
	} `mapstructure:"report"`

	Payment struct {
		BaseURL         string `mapstructure:"base_url"`
		AccountNo       string `mapstructure:"account_no"`
		AccountName     string `mapstructure:"account_name"`
		BankBIN         string `mapstructure:"bank_bin"`
		Template        string `mapstructure:"template"`
		ReferencePrefix string `mapstructure:"reference_prefix"`
	} `mapstructure:"payment"`

	Products []catalog.Product `mapstructure:"products"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without a config file apart from
	// the catalog, which has no meaningful default)
	v.SetDefault("server.port", 8080)
	v.SetDefault("sheet.backend", "sheets")
	v.SetDefault("sheet.worksheet", "Sheet1")
	v.SetDefault("sheet.header_row", 5)
	v.SetDefault("sheet.anchor_column", 2)
	v.SetDefault("sheet.row_width", 40)
	v.SetDefault("sheet.id_policy", "sheet")
	v.SetDefault("sheet.id_header", "STT")
	v.SetDefault("report.target_sales", 200_000_000)
	v.SetDefault("report.unknown_salesperson", "Chưa xác định")
	v.SetDefault("report.top_n", 50)
	v.SetDefault("payment.base_url", "https://api.vietqr.io")
	v.SetDefault("payment.template", "compact2")
	v.SetDefault("payment.reference_prefix", "Oliu")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Secrets come from the environment, never from the config file
	if shareURL := os.Getenv("SHARE_URL"); shareURL != "" {
		cfg.Sheet.ShareURL = shareURL
	}
	if cred := os.Getenv("GSP_CRED"); cred != "" {
		cfg.Sheet.CredentialsB64 = cred
	}
	if backend := os.Getenv("SHEET_BACKEND"); backend != "" {
		cfg.Sheet.Backend = backend
	}
	if path := os.Getenv("EXCEL_PATH"); path != "" {
		cfg.Sheet.ExcelPath = path
	}

	// Bank details may also be supplied via environment
	if stk := os.Getenv("PAYMENT_ACCOUNT_NO"); stk != "" {
		cfg.Payment.AccountNo = stk
	}
	if name := os.Getenv("PAYMENT_ACCOUNT_NAME"); name != "" {
		cfg.Payment.AccountName = name
	}
	if bin := os.Getenv("PAYMENT_BANK_BIN"); bin != "" {
		cfg.Payment.BankBIN = bin
	}
	if target := os.Getenv("TARGET_SALES"); target != "" {
		if n, err := strconv.ParseInt(target, 10, 64); err == nil && n > 0 {
			cfg.Report.TargetSales = n
		}
	}

	if err := validate(&cfg); err != nil {
		log.Fatalf("[Config] %v", err)
	}

	return &cfg
}

// validate rejects configs the services cannot run with.
func validate(cfg *Config) error {
	if len(cfg.Products) == 0 {
		return errors.New("config has no products: the catalog must be configured per deployment")
	}
	if cfg.Report.TargetSales <= 0 {
		// The dashboard divides total sales by the target on every request.
		return fmt.Errorf("report.target_sales must be positive, got %d", cfg.Report.TargetSales)
	}
	return nil
}

// Catalog builds the product catalog for this deployment.
func (c *Config) Catalog() *catalog.Catalog {
	return catalog.New(c.Products)
}
