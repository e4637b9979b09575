// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pvginkel/electronics-inventory/internal/adapters/db"
	"github.com/pvginkel/electronics-inventory/internal/core/domain"
	"github.com/pvginkel/electronics-inventory/internal/pkg/config"
	"github.com/pvginkel/electronics-inventory/internal/pkg/logger"
)

// Seeds the database with sample parts, sellers and shopping lists for
// development. Not intended for production use.

var sampleParts = []struct {
	key         string
	description string
}{
	{"R-0603-10K", "10k ohm resistor, 0603, 1%"},
	{"R-0603-1K", "1k ohm resistor, 0603, 1%"},
	{"C-0805-100N", "100nF ceramic capacitor, 0805, X7R"},
	{"C-0805-10U", "10uF ceramic capacitor, 0805, X5R"},
	{"LED-0603-RED", "Red LED, 0603, 2V forward"},
	{"LED-0603-GRN", "Green LED, 0603, 2.1V forward"},
	{"IC-NE555", "NE555 timer, SOIC-8"},
	{"IC-ATMEGA328P", "ATmega328P microcontroller, TQFP-32"},
	{"IC-LM317", "LM317 adjustable regulator, TO-220"},
	{"Q-2N7002", "2N7002 N-channel MOSFET, SOT-23"},
	{"D-1N4148", "1N4148 switching diode, SOD-123"},
	{"X-16MHZ", "16MHz crystal, HC-49S"},
	{"CONN-USB-C", "USB-C receptacle, SMD, 16 pin"},
	{"CONN-HDR-2X20", "2x20 pin header, 2.54mm"},
	{"SW-TACT-6MM", "Tactile switch, 6x6mm, through hole"},
}

var sampleSellers = []struct {
	name    string
	website string
}{
	{"Mouser", "https://www.mouser.com"},
	{"DigiKey", "https://www.digikey.com"},
	{"LCSC", "https://www.lcsc.com"},
	{"TME", "https://www.tme.eu"},
}

var sampleLists = []struct {
	name   string
	status domain.Status
}{
	{"Bench restock", domain.StatusConcept},
	{"Amplifier project", domain.StatusReady},
	{"Sensor board rev A", domain.StatusReady},
	{"Old workshop order", domain.StatusDone},
}

func main() {
	var (
		linesPerList = flag.Int("lines", 8, "number of lines per shopping list")
		truncate     = flag.Bool("truncate", false, "truncate tables before seeding")
		seed         = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	appLogger := logger.SetupLogger("info", "text")
	slogger := appLogger.Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: 5,
		MinConnections: 1,
		ConnectTimeout: 10 * time.Second,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	rng := rand.New(rand.NewSource(*seed))

	err = database.Transaction(ctx, func(tx pgx.Tx) error {
		if *truncate {
			slogger.Info("truncating tables")
			if _, err := tx.Exec(ctx,
				`TRUNCATE TABLE shopping_list_lines, shopping_lists, sellers, parts RESTART IDENTITY CASCADE`); err != nil {
				return fmt.Errorf("failed to truncate tables: %w", err)
			}
		}

		partIDs, err := seedParts(ctx, tx)
		if err != nil {
			return err
		}

		sellerIDs, err := seedSellers(ctx, tx)
		if err != nil {
			return err
		}

		return seedLists(ctx, tx, rng, partIDs, sellerIDs, *linesPerList)
	})
	if err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seeding complete",
		slog.Int("parts", len(sampleParts)),
		slog.Int("sellers", len(sampleSellers)),
		slog.Int("lists", len(sampleLists)))
}

func seedParts(ctx context.Context, tx pgx.Tx) ([]int64, error) {
	ids := make([]int64, 0, len(sampleParts))
	for _, p := range sampleParts {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO parts (key, description)
			 VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET description = EXCLUDED.description
			 RETURNING id`,
			p.key, p.description).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to seed part %s: %w", p.key, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedSellers(ctx context.Context, tx pgx.Tx) ([]int64, error) {
	ids := make([]int64, 0, len(sampleSellers))
	for _, s := range sampleSellers {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO sellers (name, website) VALUES ($1, $2) RETURNING id`,
			s.name, s.website).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to seed seller %s: %w", s.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedLists(ctx context.Context, tx pgx.Tx, rng *rand.Rand, partIDs, sellerIDs []int64, linesPerList int) error {
	lineStatuses := []domain.Status{domain.StatusConcept, domain.StatusReady, domain.StatusDone}

	for _, l := range sampleLists {
		var listID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO shopping_lists (name, status) VALUES ($1, $2) RETURNING id`,
			l.name, l.status).Scan(&listID)
		if err != nil {
			return fmt.Errorf("failed to seed list %s: %w", l.name, err)
		}

		for i := 0; i < linesPerList; i++ {
			partID := partIDs[rng.Intn(len(partIDs))]
			status := lineStatuses[rng.Intn(len(lineStatuses))]
			quantity := 1 + rng.Intn(100)

			var sellerID *int64
			if rng.Intn(4) > 0 {
				id := sellerIDs[rng.Intn(len(sellerIDs))]
				sellerID = &id
			}

			var unitPrice *decimal.Decimal
			if rng.Intn(3) > 0 {
				price := decimal.NewFromInt(int64(1 + rng.Intn(5000))).Div(decimal.NewFromInt(1000))
				unitPrice = &price
			}

			_, err := tx.Exec(ctx,
				`INSERT INTO shopping_list_lines
				 (shopping_list_id, part_id, seller_id, quantity, unit_price, status)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				listID, partID, sellerID, quantity, unitPrice, status)
			if err != nil {
				return fmt.Errorf("failed to seed line for list %s: %w", l.name, err)
			}
		}
	}

	return nil
}
