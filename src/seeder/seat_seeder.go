package seeder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"Backend-Celestia-Admin/src/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// SeatLayout describes the hall: rows of numbered seats plus any one-off seats.
//
//	rows:
//	  - prefix: A
//	    count: 20
//	seats: [VIP1, VIP2]
type SeatLayout struct {
	Rows  []SeatRow `yaml:"rows"`
	Seats []string  `yaml:"seats"`
}

type SeatRow struct {
	Prefix string `yaml:"prefix"`
	Start  int    `yaml:"start"`
	Count  int    `yaml:"count"`
}

type SeatWriter interface {
	Upsert(ctx context.Context, seats []models.Seat) (int64, error)
}

func ParseLayout(data []byte) (*SeatLayout, error) {
	var layout SeatLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse seat layout: %w", err)
	}
	return &layout, nil
}

// ExpandLayout lists every seat of the layout once, in file order.
func ExpandLayout(layout *SeatLayout) ([]models.Seat, error) {
	seen := map[string]bool{}
	var seats []models.Seat
	add := func(number string) error {
		number = strings.TrimSpace(number)
		if number == "" {
			return fmt.Errorf("empty seat number")
		}
		if seen[number] {
			return fmt.Errorf("duplicate seat %s", number)
		}
		seen[number] = true
		seats = append(seats, models.Seat{SeatNumber: number})
		return nil
	}

	for _, row := range layout.Rows {
		if row.Prefix == "" || row.Count <= 0 {
			return nil, fmt.Errorf("invalid row %+v", row)
		}
		start := row.Start
		if start == 0 {
			start = 1
		}
		for n := start; n < start+row.Count; n++ {
			if err := add(fmt.Sprintf("%s%d", row.Prefix, n)); err != nil {
				return nil, err
			}
		}
	}
	for _, s := range layout.Seats {
		if err := add(s); err != nil {
			return nil, err
		}
	}
	return seats, nil
}

// SeedSeats creates the seats of the layout file that do not exist yet.
func SeedSeats(ctx context.Context, store SeatWriter, path string, log *logrus.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seat layout: %w", err)
	}
	layout, err := ParseLayout(data)
	if err != nil {
		return err
	}
	seats, err := ExpandLayout(layout)
	if err != nil {
		return err
	}

	created, err := store.Upsert(ctx, seats)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"layout":  path,
		"seats":   len(seats),
		"created": created,
	}).Info("✅ seats seeded")
	return nil
}
