// Package ingest turns crawl statistics into graph seeds. A seed has one
// main node, the crawled domain, and one satellite per referring domain
// weighted by how often it links in.
package ingest

import (
	"bufio"
	"bytes"
	"cmp"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/TFMV/orbitgraph/models"
)

// ErrNoDomain is returned when the main domain can be neither read from the
// data nor derived from it
var ErrNoDomain = errors.New("no main domain")

// DataProcessor defines the interface that all data processors must implement
type DataProcessor interface {
	// ProcessData takes raw data bytes and returns a graph seed
	ProcessData(data []byte) (*models.Seed, error)

	// GetName returns the name of the processor
	GetName() string
}

// tally accumulates per-domain link weights in first-seen order
type tally struct {
	order   []string
	weights map[string]float64
}

func newTally() *tally {
	return &tally{weights: make(map[string]float64)}
}

func (t *tally) add(domain string, weight float64) error {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return fmt.Errorf("invalid weight %v for %s", weight, domain)
	}
	if _, ok := t.weights[domain]; !ok {
		t.order = append(t.order, domain)
	}
	t.weights[domain] += weight
	return nil
}

// seed builds the seed, heaviest satellites first. The main domain never
// orbits itself.
func (t *tally) seed(domain string) *models.Seed {
	s := &models.Seed{
		Name: domain,
		Main: models.SeedNode{Label: domain},
	}
	for _, d := range t.order {
		if d == domain {
			continue
		}
		s.Satellites = append(s.Satellites, models.SeedNode{Label: d, Weight: t.weights[d]})
	}
	slices.SortStableFunc(s.Satellites, func(a, b models.SeedNode) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	s.Main.Weight = float64(len(s.Satellites))
	return s
}

// StatsProcessor reads the crawler's per-domain statistics document:
// {"domain": "...", "visited": n, "queue": n, "links": [{"from": "...", "weight": n}]}
type StatsProcessor struct {
	domain string
}

// NewStatsProcessor creates a processor. domain is used when the document
// does not name its domain.
func NewStatsProcessor(domain string) *StatsProcessor {
	return &StatsProcessor{domain: domain}
}

// GetName returns the name of the processor
func (p *StatsProcessor) GetName() string {
	return "Stats Processor"
}

// Stats is the crawler statistics document for one domain
type Stats struct {
	Domain  string `json:"domain,omitempty"`
	Visited int    `json:"visited"`
	Queue   int    `json:"queue"`
	Links   []struct {
		From   string  `json:"from"`
		Weight float64 `json:"weight"`
	} `json:"links"`
}

// ProcessData processes a stats document
func (p *StatsProcessor) ProcessData(data []byte) (*models.Seed, error) {
	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("error parsing stats JSON: %w", err)
	}

	domain := cmp.Or(strings.TrimSpace(stats.Domain), p.domain)
	if domain == "" {
		return nil, ErrNoDomain
	}

	t := newTally()
	for i, link := range stats.Links {
		if err := t.add(link.From, link.Weight); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
	}
	return t.seed(domain), nil
}

// CSVProcessor reads "from,weight" rows. A header row is optional; without
// a weight column every row counts once.
type CSVProcessor struct {
	domain string
}

// NewCSVProcessor creates a processor for the given main domain
func NewCSVProcessor(domain string) *CSVProcessor {
	return &CSVProcessor{domain: domain}
}

// GetName returns the name of the processor
func (p *CSVProcessor) GetName() string {
	return "CSV Processor"
}

// ProcessData processes CSV data
func (p *CSVProcessor) ProcessData(data []byte) (*models.Seed, error) {
	if p.domain == "" {
		return nil, ErrNoDomain
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	fromIdx, weightIdx := 0, 1
	t := newTally()
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		if row == 0 && isHeader(record) {
			fromIdx, weightIdx = -1, -1
			for i, col := range record {
				switch strings.ToLower(strings.TrimSpace(col)) {
				case "from", "source", "src", "domain":
					fromIdx = i
				case "weight", "count", "links":
					weightIdx = i
				}
			}
			if fromIdx < 0 {
				return nil, fmt.Errorf("CSV header has no from column: %v", record)
			}
			continue
		}

		if fromIdx >= len(record) {
			continue
		}
		weight := 1.0
		if weightIdx >= 0 && weightIdx < len(record) && strings.TrimSpace(record[weightIdx]) != "" {
			weight, err = strconv.ParseFloat(strings.TrimSpace(record[weightIdx]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid weight: %w", row+1, err)
			}
		}
		if err := t.add(record[fromIdx], weight); err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
	}
	return t.seed(p.domain), nil
}

// isHeader reports whether a first row names its columns rather than holding data
func isHeader(record []string) bool {
	if len(record) < 2 {
		return slices.Contains([]string{"from", "source", "src", "domain"}, strings.ToLower(strings.TrimSpace(record[0])))
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	return err != nil
}

// LogProcessor reads one link per line, e.g. "a.com -> b.com". Every line
// pointing at the main domain adds one to its source's weight.
type LogProcessor struct {
	domain string
}

// NewLogProcessor creates a processor. An empty domain selects the most
// linked-to target.
func NewLogProcessor(domain string) *LogProcessor {
	return &LogProcessor{domain: domain}
}

// GetName returns the name of the processor
func (p *LogProcessor) GetName() string {
	return "Log Processor"
}

// Common log patterns for connections
var logSeparators = []string{" -> ", " => ", " links to ", " linked to ", " connects to "}

// ProcessData processes log data
func (p *LogProcessor) ProcessData(data []byte) (*models.Seed, error) {
	type edge struct{ from, to string }
	var edges []edge
	targets := newTally()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, sep := range logSeparators {
			from, to, ok := strings.Cut(line, sep)
			if !ok {
				continue
			}
			from, to = strings.TrimSpace(from), strings.TrimSpace(to)
			if from != "" && to != "" {
				edges = append(edges, edge{from: from, to: to})
				_ = targets.add(to, 1)
			}
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log: %w", err)
	}

	domain := p.domain
	if domain == "" {
		best := 0.0
		for _, d := range targets.order {
			if w := targets.weights[d]; w > best {
				domain, best = d, w
			}
		}
	}
	if domain == "" {
		return nil, ErrNoDomain
	}

	t := newTally()
	for _, e := range edges {
		if e.to == domain {
			_ = t.add(e.from, 1)
		}
	}
	return t.seed(domain), nil
}

// GetProcessor returns the appropriate processor for the given format
func GetProcessor(format, domain string) (DataProcessor, error) {
	switch strings.ToLower(format) {
	case "json", "stats":
		return NewStatsProcessor(domain), nil
	case "csv":
		return NewCSVProcessor(domain), nil
	case "log", "txt":
		return NewLogProcessor(domain), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ProcessFile reads path and processes it. An empty format is taken from
// the file extension.
func ProcessFile(path, format, domain string) (*models.Seed, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	processor, err := GetProcessor(format, domain)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	seed, err := processor.ProcessData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", processor.GetName(), err)
	}
	return seed, nil
}
