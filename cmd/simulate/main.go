package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/bevcart-sim/internal/course"
	"github.com/stitts-dev/bevcart-sim/internal/models"
	"github.com/stitts-dev/bevcart-sim/internal/sales"
	"github.com/stitts-dev/bevcart-sim/internal/sim"
	"github.com/stitts-dev/bevcart-sim/pkg/config"
	"github.com/stitts-dev/bevcart-sim/pkg/logger"
)

type runOutput struct {
	Course     string                  `json:"course"`
	Model      string                  `json:"model"`
	PathLength float64                 `json:"path_length_meters"`
	Groups     []models.GroupCrossings `json:"groups"`
	Sales      sales.Result            `json:"sales"`
}

func main() {
	coursePath := flag.String("course", "", "path GeoJSON file (required)")
	holesPath := flag.String("holes", "", "hole polygon GeoJSON file")
	courseName := flag.String("name", "course", "course name for reporting")
	model := flag.String("model", "closed_form", "path model: closed_form or minute_indexed")
	cartStartStr := flag.String("cart-start", "", "cart service start HH:MM (default from config)")
	teeTimes := flag.String("tee-times", "", "comma-separated tee times, e.g. 08:00,08:10 (required)")
	golfers := flag.Int("golfers", 4, "golfers per group")
	seed := flag.Int64("seed", 0, "RNG seed, 0 derives from wall clock")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	if *coursePath == "" || *teeTimes == "" {
		flag.Usage()
		os.Exit(2)
	}

	crs, err := loadCourse(*courseName, *coursePath, *holesPath)
	if err != nil {
		log.Fatalf("Failed to load course: %v", err)
	}
	log.WithFields(logrus.Fields{
		"course":        crs.Name,
		"nodes":         crs.NodeCount(),
		"path_length_m": crs.Length,
	}).Info("Course loaded")

	startStr := *cartStartStr
	if startStr == "" {
		startStr = cfg.CartServiceStart
	}
	cartStart, err := course.ParseClock(startStr)
	if err != nil {
		log.Fatalf("Invalid cart service start: %v", err)
	}

	groups, err := parseTeeGroups(*teeTimes, *golfers)
	if err != nil {
		log.Fatalf("Invalid tee times: %v", err)
	}

	pathModel, err := sim.ParsePathModel(*model)
	if err != nil {
		log.Fatalf("Invalid model: %v", err)
	}

	var results []models.GroupCrossings
	switch pathModel {
	case sim.PathModelMinuteIndexed:
		results, err = sim.NewMinuteIndexedSolver(crs, cartStart, log).Solve(groups)
	default:
		vg, vb, terr := course.SpeedsFromTiming(crs.Length, cfg.RoundMinutes, cfg.CartLapMinutes)
		if terr != nil {
			log.Fatalf("Invalid timing configuration: %v", terr)
		}
		results, err = sim.NewCrossingSolver(crs, vg, vb, cartStart, log).Solve(groups)
	}
	if err != nil {
		log.Fatalf("Crossing solve failed: %v", err)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.RandomSeed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	trigger := sales.NewTrigger(cfg.SaleProbability, cfg.SalePrice, rand.New(rand.NewSource(rngSeed)), log)
	saleResult := trigger.FromCrossings(results)

	out := runOutput{
		Course:     crs.Name,
		Model:      pathModel.String(),
		PathLength: crs.Length,
		Groups:     results,
		Sales:      saleResult,
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(encoded))
}

func loadCourse(name, pathFile, holesFile string) (*course.Course, error) {
	pathData, err := os.ReadFile(pathFile)
	if err != nil {
		return nil, err
	}
	nodes, err := course.LoadPath(pathData)
	if err != nil {
		return nil, err
	}

	if holesFile == "" {
		return course.New(name, nodes, nil)
	}

	holeData, err := os.ReadFile(holesFile)
	if err != nil {
		return nil, err
	}
	holes, err := course.LoadHolePolygons(holeData)
	if err != nil {
		return nil, err
	}
	return course.New(name, nodes, holes)
}

func parseTeeGroups(teeTimes string, golfersPerGroup int) ([]models.TeeGroup, error) {
	var groups []models.TeeGroup
	for i, s := range strings.Split(teeTimes, ",") {
		teeTime, err := course.ParseClock(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		groups = append(groups, models.TeeGroup{
			GroupID:     i + 1,
			TeeTime:     teeTime,
			GolferCount: golfersPerGroup,
		})
	}
	return groups, nil
}
