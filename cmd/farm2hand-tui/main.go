package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/WIIN2602/Farm2Hand/internal/api"
	"github.com/WIIN2602/Farm2Hand/internal/catalog"
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/config"
	"github.com/WIIN2602/Farm2Hand/internal/orders"
)

var (
	configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")
	emptyCart  = flag.Bool("empty-cart", false, "Start with an empty cart instead of the demo cart")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	factory := &api.SessionFactory{
		Catalog:     catalog.NewSeedCatalog(),
		Orders:      orders.NewStatic(orders.SeedOrders()),
		Coordinator: checkout.NewCoordinator(nil),
		Limits:      cfg.Widget.Limits,
		ShippingFee: cfg.Cart.ShippingFee,
		SeedCart:    !*emptyCart,
		History:     cfg.Assistant.History,
	}
	session, transcript := factory.New("tui", nil)

	p := tea.NewProgram(newModel(session, transcript), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
