package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	_ "golang.org/x/crypto/x509roots/fallback"

	komfort "github.com/komfort-mfg/komfort-admin"
	"github.com/komfort-mfg/komfort-admin/internal/importer"
	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/config"
	"github.com/komfort-mfg/komfort-admin/internal/ui/server"
	"github.com/komfort-mfg/komfort-admin/internal/version"
)

var apiFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:           "komfort-admin",
		Short:         komfort.AppName + " manufacturing admin",
		Long:          `Web UI and command line tools for managing products, partners, materials, workshops and staff`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = version.Get().String()
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "", "Backend base URL (overrides API_BASE_URL)")

	rootCmd.AddCommand(serveCmd(), importCmd(), calculateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the --api flag
func loadConfig() (*config.Config, *slog.Logger, error) {
	if apiFlag != "" {
		if err := os.Setenv("API_BASE_URL", apiFlag); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	slog.SetDefault(appLogger)
	return cfg, appLogger, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, appLogger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load UI configuration: %w", err)
	}

	appLogger.Info("Starting UI server", slog.String("version", version.Get().Version), slog.String("environment", cfg.Environment))

	srv, err := server.NewServer(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create UI server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("UI server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("UI server shutdown complete")
	return nil
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import reference data from xlsx spreadsheets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "workshops FILE.xlsx",
			Short: `Create workshops from a sheet with "Название цеха", "Тип цеха", "Количество человек для производства"`,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImport(cmd.Context(), cmd.OutOrStdout(), args[0], (*importer.Importer).Workshops)
			},
		},
		&cobra.Command{
			Use:   "products FILE.xlsx",
			Short: "Create products, resolving product and material type names through the api",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImport(cmd.Context(), cmd.OutOrStdout(), args[0], (*importer.Importer).Products)
			},
		},
	)
	return cmd
}

type importFunc func(im *importer.Importer, ctx context.Context, r io.Reader) (importer.Result, error)

func runImport(ctx context.Context, out io.Writer, path string, run importFunc) error {
	cfg, appLogger, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiClient := client.NewClient(cfg.APIBaseURL, client.WithLogger(appLogger))
	res, err := run(importer.New(apiClient, appLogger), ctx, f)
	if err != nil {
		return err
	}

	for _, rowErr := range res.Errors {
		fmt.Fprintln(out, rowErr.Error())
	}
	fmt.Fprintf(out, "created %d, failed %d\n", res.Created, res.Failed)

	if res.Failed > 0 {
		return fmt.Errorf("%d rows were not imported", res.Failed)
	}
	return nil
}

func calculateCmd() *cobra.Command {
	var payload client.RawMaterialCalcPayload

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the raw material needed for a batch of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd.Context(), cmd.OutOrStdout(), payload)
		},
	}
	cmd.Flags().Int64VarP(&payload.ProductTypeID, "product-type", "p", 0, "Product type id (required)")
	cmd.Flags().Int64VarP(&payload.MaterialTypeID, "material-type", "m", 0, "Material type id (required)")
	cmd.Flags().IntVarP(&payload.ProductQuantity, "quantity", "q", 0, "Number of products (required)")
	cmd.Flags().Float64Var(&payload.ParameterOne, "param-one", 0, "First product parameter")
	cmd.Flags().Float64Var(&payload.ParameterTwo, "param-two", 0, "Second product parameter")
	_ = cmd.MarkFlagRequired("product-type")
	_ = cmd.MarkFlagRequired("material-type")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

var errCannotCalculate = errors.New("the backend could not calculate the amount: check the parameters")

func runCalculate(ctx context.Context, out io.Writer, payload client.RawMaterialCalcPayload) error {
	cfg, appLogger, err := loadConfig()
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	apiClient := client.NewClient(cfg.APIBaseURL, client.WithLogger(appLogger))
	res, err := apiClient.CalculateRawMaterial(ctx, payload)
	if err != nil {
		var ce *client.ClientError
		if errors.As(err, &ce) {
			return errors.New(ce.UserMessage)
		}
		return err
	}
	if !res.Valid() {
		return errCannotCalculate
	}

	fmt.Fprintln(out, res.RawMaterialAmount)
	return nil
}
