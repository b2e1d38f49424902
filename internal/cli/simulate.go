package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/warehouse/internal/logger"
	"github.com/mesh-intelligence/warehouse/internal/paths"
	"github.com/mesh-intelligence/warehouse/internal/scenario"
	"github.com/mesh-intelligence/warehouse/pkg/types"
	"github.com/mesh-intelligence/warehouse/pkg/warehouse"
)

// simulateFlags holds simulate-specific flag values.
type simulateFlags struct {
	ledger   string
	export   string
	capacity int
	seed     uint64
}

// report is the JSON output of a simulation run.
type report struct {
	Packed     []types.Item           `json:"packed"`
	Unresolved []scenario.Order       `json:"unresolved"`
	Stock      []types.Item           `json:"stock"`
	Summary    summary                `json:"summary"`
	Bonuses    map[types.ItemType]int `json:"bonuses"`
}

type summary struct {
	Capacity int `json:"capacity"`
	Stocked  int `json:"stocked"`
	Rejected int `json:"rejected"`
	Orders   int `json:"orders"`
	Resolved int `json:"resolved"`
	Packed   int `json:"packed"`
}

func newSimulateCmd() *cobra.Command {
	var sf simulateFlags
	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Stock items, process orders and drain packaging from a scenario file",
		Long: `Simulate runs a scenario through a fresh warehouse:

  1. every item in the scenario is stored in the rack (full rack and
     duplicate identifiers are logged and skipped),
  2. every order is processed in file order,
  3. the packaging buffer is drained and printed.

Example:
  warehouse simulate scenario.yaml
  warehouse simulate scenario.yaml --seed 7 --export orders.jsonl --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, args[0], sf)
		},
	}
	cmd.Flags().StringVar(&sf.ledger, "ledger", "", "order ledger DSN (default: config ledger_dsn or in-memory)")
	cmd.Flags().StringVar(&sf.export, "export", "", "write the order ledger to this JSONL file")
	cmd.Flags().IntVar(&sf.capacity, "capacity", 0, "storage rack capacity (overrides config)")
	cmd.Flags().Uint64Var(&sf.seed, "seed", 0, "bonus selection seed (overrides config)")
	return cmd
}

func runSimulate(cmd *cobra.Command, scenarioPath string, sf simulateFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return userError(err)
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Capacity = sf.capacity
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = sf.seed
	}
	if sf.ledger != "" {
		if cfg.LedgerDSN, err = paths.ResolveLedgerDSN(sf.ledger, ""); err != nil {
			return userError(fmt.Errorf("resolve ledger: %w", err))
		}
	}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("invalid config: %w", err))
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return userError(err)
	}

	log, err := logger.New(cfg.LogLevel, flags.devLog)
	if err != nil {
		return userError(err)
	}
	defer log.Sync()

	w, err := warehouse.Open(cfg, log)
	if err != nil {
		return sysError(fmt.Errorf("open warehouse: %w", err))
	}
	defer w.Close()

	rep := simulate(w, sc)
	log.Info("simulation finished",
		zap.String("scenario", scenarioPath),
		zap.Int("resolved", rep.Summary.Resolved),
		zap.Int("packed", rep.Summary.Packed))

	if rep.Bonuses, err = w.BonusesByVariant(); err != nil {
		return sysError(fmt.Errorf("bonus report: %w", err))
	}
	if sf.export != "" {
		if err := w.ExportLedger(sf.export); err != nil {
			return sysError(fmt.Errorf("export ledger: %w", err))
		}
	}

	if flags.jsonMode {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return printReport(cmd.OutOrStdout(), rep)
}

// simulate stores the scenario items, processes its orders and drains the
// packaging buffer.
func simulate(w *warehouse.Warehouse, sc *scenario.Scenario) report {
	rep := report{
		Packed:     []types.Item{},
		Unresolved: []scenario.Order{},
		Stock:      []types.Item{},
	}

	for _, item := range sc.Items {
		before := w.Occupied()
		w.StoreItem(item)
		if w.Occupied() == before {
			rep.Summary.Rejected++
		}
	}
	rep.Summary.Stocked = w.Occupied()

	for _, o := range sc.Orders {
		rep.Summary.Orders++
		if w.ProcessOrder(o.ID, o.Customer) {
			rep.Summary.Resolved++
		} else {
			rep.Unresolved = append(rep.Unresolved, o)
		}
	}

	for {
		item, ok := w.TakeItemForPackaging()
		if !ok {
			break
		}
		rep.Packed = append(rep.Packed, item)
	}
	rep.Summary.Packed = len(rep.Packed)
	rep.Summary.Capacity = w.Capacity()

	for _, slot := range w.Inventory() {
		rep.Stock = append(rep.Stock, slot.Item)
	}
	return rep
}

func printReport(out io.Writer, rep report) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tTYPE\tVARIANT\tDESCRIPTION")
	for i, item := range rep.Packed {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, item.ID(), item.Type(), item.Variant(), item.Description())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := rep.Summary
	fmt.Fprintf(out, "\nstocked %d/%d (rejected %d), orders %d (resolved %d), packed %d, left in stock %d\n",
		s.Stocked, s.Capacity, s.Rejected, s.Orders, s.Resolved, s.Packed, len(rep.Stock))
	for _, o := range rep.Unresolved {
		fmt.Fprintf(out, "unresolved: %s for %s\n", o.ID, o.Customer)
	}

	variants := make([]string, 0, len(rep.Bonuses))
	for v := range rep.Bonuses {
		variants = append(variants, string(v))
	}
	sort.Strings(variants)
	for _, v := range variants {
		fmt.Fprintf(out, "bonus %s: %d\n", v, rep.Bonuses[types.ItemType(v)])
	}
	return nil
}
