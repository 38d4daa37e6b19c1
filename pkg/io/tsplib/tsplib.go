// Package tsplib reads the EUC_2D subset of the TSPLIB format (spec §6):
// a keyword-colon-value header ending at NODE_COORD_SECTION, a node list,
// and a terminating EOF line. No demands or time windows: every node past
// the first is a plain delivery with an unrestricted window, suited for a
// pure travelling-salesman-shaped instance.
package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vrpsolver/vrp/pkg/costs"
	"github.com/vrpsolver/vrp/pkg/model"
)

// Node is one coordinate entry.
type Node struct {
	ID   int
	X, Y float64
}

// Document is the raw parsed TSPLIB file.
type Document struct {
	Name         string
	EdgeWeight   string
	Nodes        []Node
}

// Parse reads a TSPLIB EUC_2D document from r.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	doc := &Document{}
	inCoords := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}
		if line == "NODE_COORD_SECTION" {
			inCoords = true
			continue
		}
		if !inCoords {
			if key, value, ok := strings.Cut(line, ":"); ok {
				switch strings.TrimSpace(key) {
				case "NAME":
					doc.Name = strings.TrimSpace(value)
				case "EDGE_WEIGHT_TYPE":
					doc.EdgeWeight = strings.TrimSpace(value)
				}
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		id, err1 := strconv.Atoi(fields[0])
		x, err2 := strconv.ParseFloat(fields[1], 64)
		y, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		doc.Nodes = append(doc.Nodes, Node{ID: id, X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("io/tsplib: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("io/tsplib: no NODE_COORD_SECTION rows found")
	}
	if doc.EdgeWeight != "" && doc.EdgeWeight != "EUC_2D" {
		return nil, fmt.Errorf("io/tsplib: unsupported EDGE_WEIGHT_TYPE %q (only EUC_2D)", doc.EdgeWeight)
	}
	return doc, nil
}

// ParseProblem lowers a TSPLIB document into a model.Problem: node 0 is the
// depot, vehicleCount identical unlimited-capacity vehicles are created,
// and every other node becomes an unconstrained delivery Single.
func ParseProblem(r io.Reader, vehicleCount int) (*model.Problem, model.TransportCost, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, nil, err
	}
	if vehicleCount < 1 {
		vehicleCount = 1
	}

	coords := make([]costs.Coordinate, len(doc.Nodes))
	for i, n := range doc.Nodes {
		coords[i] = costs.Coordinate{X: n.X, Y: n.Y}
	}
	transport := costs.NewEuclidean(coords, 1)
	activityCost := costs.NewActivityEstimator(transport)

	depotPlace, err := model.NewPlace(model.Location(0), 0, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("io/tsplib: depot place: %w", err)
	}

	var vehicles []*model.Vehicle
	for v := 0; v < vehicleCount; v++ {
		shift := model.Shift{Start: depotPlace}
		vehicle, err := model.NewVehicle(fmt.Sprintf("vehicle-%d", v), "default", []model.Shift{shift}, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("io/tsplib: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	fleet, err := model.NewFleet(vehicles, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("io/tsplib: %w", err)
	}

	var jobs []model.Job
	for i, n := range doc.Nodes[1:] {
		place, err := model.NewPlace(model.Location(i+1), 0, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("io/tsplib: node %d: %w", n.ID, err)
		}
		single, err := model.NewSingle(fmt.Sprintf("node-%d", n.ID), []model.Place{place}, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("io/tsplib: node %d: %w", n.ID, err)
		}
		jobs = append(jobs, single)
	}

	problem, err := model.NewBuilder().
		WithFleet(fleet).
		WithJobs(jobs).
		WithTransport(transport).
		WithActivityCost(activityCost).
		Build()
	if err != nil {
		return nil, nil, err
	}
	return problem, transport, nil
}
