package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"piggydb/pkg/catalog"
	"piggydb/pkg/execution"
	"piggydb/pkg/logging"
	"piggydb/pkg/plan"
	"piggydb/pkg/primitives"
	"piggydb/pkg/tuple"
	"piggydb/pkg/types"
	"piggydb/pkg/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

type Configuration struct {
	LogPath     string
	LogLevel    string
	Interactive bool
	Orders      int
	ReportPath  string
}

// Catalog operator ids used by the demo plans.
const (
	opEquals  primitives.OperatorID = 96
	opGreater primitives.OperatorID = 521
)

func main() {
	config := parseArguments()

	if err := logging.Init(logging.Config{
		Level:      logging.LogLevel(config.LogLevel),
		OutputPath: config.LogPath,
	}); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	showBanner()

	cat, err := seedCatalog(config.Orders)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	results, err := runDemoQueries(cat, config)
	if err != nil {
		log.Fatalf("Demo queries failed: %v", err)
	}

	if config.Interactive {
		if err := startBrowser(results); err != nil {
			log.Fatalf("Failed to start UI: %v", err)
		}
		return
	}
	printResults(results)
}

// parseArguments processes command-line flags
func parseArguments() Configuration {
	var config Configuration

	flag.StringVar(&config.LogPath, "log", "", "Log file path (default stderr)")
	flag.StringVar(&config.LogLevel, "level", "INFO", "Log level: DEBUG, INFO, WARN, ERROR")
	flag.BoolVar(&config.Interactive, "tui", false, "Browse reports in the terminal UI")
	flag.IntVar(&config.Orders, "orders", 200, "Number of demo order rows to generate")
	flag.StringVar(&config.ReportPath, "out", "", "File to append raw report messages to")

	flag.Parse()

	return config
}

func showBanner() {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)
	fmt.Println(style.Render("piggydb: statistics that ride along with your queries"))
}

// seedCatalog builds the demo tables, filling them concurrently.
func seedCatalog(orders int) (*catalog.Catalog, error) {
	cat := catalog.NewCatalog()

	customers, err := createTable(cat, "customers",
		[]types.Type{types.Int32Type, types.StringType, types.StringType},
		[]string{"id", "name", "country"})
	if err != nil {
		return nil, err
	}
	orderTable, err := createTable(cat, "orders",
		[]types.Type{types.Int32Type, types.Int32Type, types.Int32Type, types.StringType},
		[]string{"id", "customer_id", "amount", "status"})
	if err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.Go(func() error { return fillCustomers(cat, customers) })
	g.Go(func() error { return fillOrders(cat, orderTable, orders) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fill demo tables: %v", err)
	}
	return cat, nil
}

func createTable(cat *catalog.Catalog, name string, fieldTypes []types.Type, fieldNames []string) (*catalog.Table, error) {
	desc, err := tuple.NewTupleDesc(fieldTypes, fieldNames)
	if err != nil {
		return nil, err
	}
	return cat.CreateTable(name, desc)
}

func fillCustomers(cat *catalog.Catalog, table *catalog.Table) error {
	countries := []string{"DE", "FR", "NL", "SE", "PL"}
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}

	for i, name := range names {
		row := tuple.NewTuple(table.Schema)
		if err := row.SetField(0, types.NewInt32Field(int32(i+1))); err != nil {
			return err
		}
		if err := row.SetField(1, types.NewStringField(name, types.StringMaxSize)); err != nil {
			return err
		}
		if err := row.SetField(2, types.NewStringField(countries[i%len(countries)], types.StringMaxSize)); err != nil {
			return err
		}
		if err := cat.InsertRow(table.ID, row); err != nil {
			return err
		}
	}
	return nil
}

func fillOrders(cat *catalog.Catalog, table *catalog.Table, count int) error {
	statuses := []string{"new", "paid", "shipped", "closed"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < count; i++ {
		row := tuple.NewTuple(table.Schema)
		if err := row.SetField(0, types.NewInt32Field(int32(i+1))); err != nil {
			return err
		}
		if err := row.SetField(1, types.NewInt32Field(int32(rng.Intn(8)+1))); err != nil {
			return err
		}
		if err := row.SetField(2, types.NewInt32Field(int32(rng.Intn(900)+100))); err != nil {
			return err
		}
		if err := row.SetField(3, types.NewStringField(statuses[rng.Intn(len(statuses))], types.StringMaxSize)); err != nil {
			return err
		}
		if err := cat.InsertRow(table.ID, row); err != nil {
			return err
		}
	}
	return nil
}

// runDemoQueries executes a few plans that exercise shortcuts, invalidation
// and FD discovery.
func runDemoQueries(cat *catalog.Catalog, config Configuration) ([]ui.QueryResult, error) {
	customers, err := cat.GetTableByName("customers")
	if err != nil {
		return nil, err
	}
	orders, err := cat.GetTableByName("orders")
	if err != nil {
		return nil, err
	}

	demos := []struct {
		name string
		root plan.Node
	}{
		{
			name: "orders where amount > 500",
			root: &plan.ScanNode{
				Table: orders.ID,
				Filters: []plan.FilterTerm{
					{Column: 2, Operator: opGreater, Value: types.NewInt32Field(500)},
				},
			},
		},
		{
			name: "customer 3 orders",
			root: &plan.ScanNode{
				Table: orders.ID,
				Filters: []plan.FilterTerm{
					{Column: 1, Operator: opEquals, Value: types.NewInt32Field(3)},
				},
			},
		},
		{
			name: "orders joined with customers",
			root: &plan.JoinNode{
				Left:      &plan.ScanNode{Table: orders.ID},
				Right:     &plan.ScanNode{Table: customers.ID},
				LeftCol:   1,
				RightCol:  0,
				Predicate: primitives.Equals,
			},
		},
		{
			name: "order count per status",
			root: &plan.AggregateNode{
				Input:    &plan.ScanNode{Table: orders.ID},
				GroupBy:  3,
				AggField: 0,
				Func:     plan.AggCount,
			},
		},
	}

	var out *os.File
	if config.ReportPath != "" {
		out, err = os.OpenFile(config.ReportPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open report file: %v", err)
		}
		defer out.Close()
	}

	executor := execution.NewExecutor(cat)
	results := make([]ui.QueryResult, 0, len(demos))
	for _, demo := range demos {
		var result *execution.Result
		if out != nil {
			result, err = executor.Run(context.Background(), demo.root, out)
		} else {
			result, err = executor.Run(context.Background(), demo.root, nil)
		}
		if err != nil {
			return nil, fmt.Errorf("query %q failed: %v", demo.name, err)
		}
		results = append(results, ui.QueryResult{Name: demo.name, Result: result})
	}
	return results, nil
}

func printResults(results []ui.QueryResult) {
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")).Bold(true)
	fdLine := lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))

	for _, r := range results {
		fmt.Println()
		fmt.Println(header.Render(r.Name))
		fmt.Printf("  %d rows\n", len(r.Result.Rows))
		for _, col := range r.Result.Report.Columns {
			if col.IsNumeric {
				fmt.Printf("  %-16s distinct=%-6d min=%-8d max=%d\n",
					col.Name, col.Distinct, col.Min, col.Max)
			} else {
				fmt.Printf("  %-16s distinct=%d\n", col.Name, col.Distinct)
			}
		}
		for _, fd := range r.Result.Report.FDs {
			fmt.Println(fdLine.Render(fmt.Sprintf("  %s determines %s", fd.Determinant, fd.Dependent)))
		}
	}
}

func startBrowser(results []ui.QueryResult) error {
	p := tea.NewProgram(
		ui.NewModel(results),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %v", err)
	}
	return nil
}
