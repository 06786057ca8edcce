package venuegen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	windowShapeDivisor = 8
)

// Vienna bounding box for generated coordinates.
const (
	viennaLatMin   = 48.15
	viennaLatRange = 0.12
	viennaLngMin   = 16.28
	viennaLngRange = 0.20
)

// Probability thresholds (out of 100).
const (
	featuredChance = 20
	dealLessChance = 10
	twoDealChance  = 30
)

// Window shape cases.
const (
	caseClassicAfterWork = 0
	caseEarlyEvening     = 1
	caseLateNight        = 2
	caseMidnightCrosser  = 3
	caseAllAfternoon     = 4
	caseWeekendBrunch    = 5
	caseShortWindow      = 6
	caseWeekdayOnly      = 7
)

// Vienna district zip codes, first district through Liesing.
var viennaZips = []string{
	"1010", "1020", "1030", "1040", "1050", "1060", "1070", "1080",
	"1090", "1100", "1120", "1150", "1160", "1180", "1200", "1230",
}

// Categories weighted roughly toward what a bar directory actually lists.
var categories = []string{
	"cocktails", "cocktails", "cocktails",
	"beer", "beer",
	"wine", "wine",
	"pub", "pub",
	"rooftop",
	"brewery",
}

var nameAdjectives = []string{
	"Golden", "Velvet", "Rusty", "Hidden", "Electric", "Crooked",
	"Burning", "Salty", "Tipsy", "Midnight", "Copper", "Drunken",
}

var nameNouns = []string{
	"Anchor", "Fox", "Barrel", "Lantern", "Raven", "Compass",
	"Monkey", "Owl", "Garden", "Cellar", "Parrot", "Tram",
}

var dealTexts = []string{
	"All cocktails half price",
	"2-for-1 on draft beer",
	"House wine by the glass -50%",
	"Spritzers and longdrinks 4.50",
	"Shots 2 euro, beer 3 euro",
	"Aperitivo hour: free snacks with any drink",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max).
func getRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// generateVenues creates the configured number of venues with unique IDs.
func generateVenues(ctx context.Context, config *Config, stats *Stats) ([]model.Venue, error) {
	logger.Get().Info(ctx, "generating venues", logger.Int("numVenues", config.NumVenues))

	venues := make([]model.Venue, config.NumVenues)
	for i := 0; i < config.NumVenues; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during venue generation: %w", ctx.Err())
		default:
		}

		venues[i] = generateSingleVenue(i)

		stats.DealsGenerated += len(venues[i].Deals)
		if venues[i].Featured {
			stats.FeaturedVenues++
		}
		for _, d := range venues[i].Deals {
			if d.From > d.To {
				stats.MidnightCrossers++
			}
		}
	}

	stats.VenuesGenerated = len(venues)
	logger.Get().Info(ctx, "generated venues successfully",
		logger.Int("count", len(venues)),
		logger.Int("deals", stats.DealsGenerated),
		logger.Int("midnightCrossers", stats.MidnightCrossers))

	return venues, nil
}

// generateSingleVenue creates one venue with a plausible Vienna address,
// coordinates inside the city bounding box and zero to two deals.
func generateSingleVenue(index int) model.Venue {
	zip := viennaZips[getRandomInt(len(viennaZips))]
	name := nameAdjectives[getRandomInt(len(nameAdjectives))] + " " + nameNouns[getRandomInt(len(nameNouns))]
	if index > 0 {
		// Keep names unique across large catalogs.
		name += " " + strconv.Itoa(index)
	}

	v := model.Venue{
		ID:       uuid.New().String(),
		Name:     name,
		Address:  "Teststrasse " + strconv.Itoa(1+getRandomInt(120)) + ", " + zip + " Wien",
		Lat:      viennaLatMin + getRandomFloat()*viennaLatRange,
		Lng:      viennaLngMin + getRandomFloat()*viennaLngRange,
		Category: categories[getRandomInt(len(categories))],
		Zip:      zip,
		Featured: getRandomInt(100) < featuredChance,
	}

	// Some venues list no deals at all; the directory still shows them.
	if getRandomInt(100) < dealLessChance {
		return v
	}

	v.Deals = []model.Deal{generateDeal()}
	if getRandomInt(100) < twoDealChance {
		v.Deals = append(v.Deals, generateDeal())
	}
	return v
}

// generateDeal creates a deal window with varied shapes, including windows
// that cross midnight.
func generateDeal() model.Deal {
	text := dealTexts[getRandomInt(len(dealTexts))]

	switch getRandomInt(windowShapeDivisor) {
	case caseClassicAfterWork:
		return model.Deal{Days: []int{1, 2, 3, 4, 5}, From: "17:00", To: "19:00", Text: text}
	case caseEarlyEvening:
		return model.Deal{Days: []int{1, 2, 3, 4, 5}, From: "16:00", To: "18:30", Text: text}
	case caseLateNight:
		return model.Deal{Days: []int{4, 5, 6}, From: "21:00", To: "23:59", Text: text}
	case caseMidnightCrosser:
		return model.Deal{Days: []int{5, 6}, From: "22:00", To: "02:00", Text: text}
	case caseAllAfternoon:
		return model.Deal{Days: []int{0, 6}, From: "14:00", To: "20:00", Text: text}
	case caseWeekendBrunch:
		return model.Deal{Days: []int{0}, From: "11:00", To: "15:00", Text: text}
	case caseShortWindow:
		return model.Deal{Days: []int{3}, From: "18:00", To: "19:00", Text: text}
	case caseWeekdayOnly:
		return model.Deal{Days: []int{1, 3, 5}, From: "19:00", To: "22:00", Text: text}
	default:
		return model.Deal{Days: []int{1, 2, 3, 4, 5}, From: "17:00", To: "19:00", Text: text}
	}
}
