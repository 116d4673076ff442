package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/facilops/facilops/modules/contractors/infrastructure/persistence"
	"github.com/facilops/facilops/modules/contractors/services"
	"github.com/facilops/facilops/pkg/composables"
	"github.com/facilops/facilops/pkg/configuration"
	"github.com/facilops/facilops/pkg/eventbus"
	"github.com/facilops/facilops/pkg/importer"
	"github.com/facilops/facilops/pkg/logging"
)

type importCmdOptions struct {
	file  string
	user  uuid.UUID
	apply bool
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import records from a CSV file (dry-run unless --apply)",
	}
	cmd.AddCommand(newImportEntityCmd("contractors"))
	cmd.AddCommand(newImportEntityCmd("insurance"))
	return cmd
}

func newImportEntityCmd(entity string) *cobra.Command {
	var opts importCmdOptions
	var user string

	cmd := &cobra.Command{
		Use:   entity,
		Short: fmt.Sprintf("Import %s from a CSV file", entity),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), entity, opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "CSV file to import (required)")
	cmd.Flags().StringVar(&user, "user", "", "Acting user UUID")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Persist to the database (default is dry-run validation)")
	_ = cmd.MarkFlagRequired("file")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(user) == "" {
			if opts.apply {
				return withCode(exitUsage, fmt.Errorf("--user is required with --apply"))
			}
			return nil
		}
		id, err := uuid.Parse(strings.TrimSpace(user))
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --user: %w", err))
		}
		opts.user = id
		return nil
	}

	return cmd
}

func runImport(ctx context.Context, entity string, opts importCmdOptions) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return withCode(exitUsage, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return withCode(exitUsage, err)
	}

	if !opts.apply {
		return dryRun(entity, f, info.Size(), info.Name())
	}
	return applyImport(ctx, entity, f, info.Size(), info.Name(), opts.user)
}

type dryRunReport struct {
	Entity string   `json:"entity"`
	Rows   int      `json:"rows"`
	Valid  int      `json:"valid"`
	Errors []string `json:"errors"`
}

// dryRun parses and validates without touching the database. Duplicate
// detection needs the store, so it is skipped here.
func dryRun(entity string, f *os.File, size int64, filename string) error {
	schema, err := schemaFor(entity)
	if err != nil {
		return err
	}
	if err := importer.AcceptCSVFilename(filename); err != nil {
		return withCode(exitUsage, err)
	}
	rows, err := importer.ReadRows(f, size, importer.MaxFileSize)
	if err != nil {
		return withCode(exitValidation, err)
	}

	report := dryRunReport{Entity: entity, Errors: []string{}}
	for _, row := range rows {
		report.Rows++
		outcome := schema.Validate(schema.Normalize(row))
		if outcome.Valid() {
			report.Valid++
		} else {
			report.Errors = append(report.Errors, outcome.Errors...)
		}
	}
	return writeJSONLine(report)
}

func schemaFor(entity string) (*importer.Schema, error) {
	switch entity {
	case "contractors":
		return services.ContractorImportSchema(), nil
	case "insurance":
		return services.InsuranceImportSchema(), nil
	default:
		return nil, withCode(exitUsage, fmt.Errorf("unknown entity %q", entity))
	}
}

func applyImport(ctx context.Context, entity string, f *os.File, size int64, filename string, actingUser uuid.UUID) error {
	conf := configuration.Use()
	log := logging.ConsoleLogger(conf.LogrusLogLevel())

	connCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(connCtx, conf.Database.Opts)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("connect: %w", err))
	}
	defer pool.Close()

	ctx = composables.WithPool(ctx, pool)
	contractorRepo := persistence.NewContractorRepository()

	bus := eventbus.NewEventPublisher(log)
	services.RegisterImportListeners(bus, log)

	var res *importer.Result
	switch entity {
	case "contractors":
		svc := services.NewContractorImportService(contractorRepo, bus, log, conf.MaxUploadSize)
		res, err = svc.ImportCSV(ctx, f, size, filename, actingUser)
	case "insurance":
		svc := services.NewInsuranceImportService(persistence.NewPolicyRepository(), contractorRepo, bus, log, conf.MaxUploadSize)
		res, err = svc.ImportCSV(ctx, f, size, filename, actingUser, func(percent int) {
			fmt.Fprintf(os.Stderr, "progress: %d%%\n", percent)
		})
	default:
		return withCode(exitUsage, fmt.Errorf("unknown entity %q", entity))
	}
	if err != nil {
		return withCode(exitValidation, err)
	}

	return writeJSONLine(map[string]any{
		"entity":             entity,
		"imported":           res.Imported,
		"duplicates_skipped": res.DuplicatesSkipped,
		"errors":             res.Errors,
		"success":            res.Success(),
	})
}
