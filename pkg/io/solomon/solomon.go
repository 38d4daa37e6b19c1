// Package solomon reads the Solomon plain-text VRPTW benchmark format (spec
// §6): a title line, a vehicle `NUMBER CAPACITY` line, and a customer table
// of `CUST_NO X Y DEMAND READY DUE SERVICE` rows, customer 0 being the
// depot. Grounded on the column layout original_source's
// core/src/streams/input/text reader documents for the same format.
package solomon

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vrpsolver/vrp/pkg/costs"
	"github.com/vrpsolver/vrp/pkg/model"
)

// Customer is one parsed data row, customer 0 being the depot.
type Customer struct {
	ID      int
	X, Y    float64
	Demand  int
	Ready   float64
	Due     float64
	Service float64
}

// Document is the raw parsed Solomon file, before being lowered into a
// model.Problem.
type Document struct {
	Title        string
	VehicleCount int
	Capacity     int
	Customers    []Customer
}

// Parse reads a Solomon document from r.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("io/solomon: %w", err)
	}

	doc := &Document{}
	idx := 0
	if idx >= len(lines) {
		return nil, fmt.Errorf("io/solomon: empty document")
	}
	doc.Title = lines[idx]
	idx++

	// Skip header tokens ("VEHICLE", "NUMBER CAPACITY", "CUSTOMER",
	// "CUST NO. ...") that some Solomon distributions include verbatim;
	// only numeric lines carry data.
	for idx < len(lines) {
		fields := strings.Fields(lines[idx])
		if len(fields) == 2 {
			if n, err1 := strconv.Atoi(fields[0]); err1 == nil {
				if vehCap, err2 := strconv.Atoi(fields[1]); err2 == nil {
					doc.VehicleCount, doc.Capacity = n, vehCap
					idx++
					break
				}
			}
		}
		idx++
	}

	for idx < len(lines) {
		fields := strings.Fields(lines[idx])
		idx++
		if len(fields) < 7 {
			continue
		}
		values := make([]float64, 6)
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		ok := true
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			values[i] = v
		}
		if !ok {
			continue
		}
		doc.Customers = append(doc.Customers, Customer{
			ID:      id,
			X:       values[0],
			Y:       values[1],
			Demand:  int(values[2]),
			Ready:   values[3],
			Due:     values[4],
			Service: values[5],
		})
	}
	if len(doc.Customers) == 0 {
		return nil, fmt.Errorf("io/solomon: no customer rows found")
	}
	return doc, nil
}

const demandDimension = "capacity"

// ParseProblem reads a Solomon document and lowers it directly into a
// model.Problem with a Euclidean transport backend, VehicleCount copies of
// a capacity-Capacity vehicle, and one delivery Single per non-depot
// customer row.
func ParseProblem(r io.Reader) (*model.Problem, model.TransportCost, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, nil, err
	}

	coords := make([]costs.Coordinate, len(doc.Customers))
	for i, c := range doc.Customers {
		coords[i] = costs.Coordinate{X: c.X, Y: c.Y}
	}
	transport := costs.NewEuclidean(coords, 1)
	activityCost := costs.NewActivityEstimator(transport)

	depot := doc.Customers[0]
	depotPlace, err := model.NewPlace(model.Location(0), 0, []model.TimeWindow{{Start: depot.Ready, End: depot.Due}})
	if err != nil {
		return nil, nil, fmt.Errorf("io/solomon: depot place: %w", err)
	}

	var vehicles []*model.Vehicle
	for v := 0; v < doc.VehicleCount; v++ {
		shift := model.Shift{Start: depotPlace}
		dims := model.NewDimensions().Set(model.TagCapacity, map[string]int{demandDimension: doc.Capacity})
		vehicle, err := model.NewVehicle(fmt.Sprintf("vehicle-%d", v), "default", []model.Shift{shift}, dims)
		if err != nil {
			return nil, nil, fmt.Errorf("io/solomon: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	fleet, err := model.NewFleet(vehicles, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("io/solomon: %w", err)
	}

	var jobs []model.Job
	for _, c := range doc.Customers[1:] {
		place, err := model.NewPlace(model.Location(c.ID), c.Service, []model.TimeWindow{{Start: c.Ready, End: c.Due}})
		if err != nil {
			return nil, nil, fmt.Errorf("io/solomon: customer %d: %w", c.ID, err)
		}
		dims := model.NewDimensions().Set(model.TagDemand, map[string]int{demandDimension: c.Demand})
		single, err := model.NewSingle(fmt.Sprintf("customer-%d", c.ID), []model.Place{place}, dims)
		if err != nil {
			return nil, nil, fmt.Errorf("io/solomon: customer %d: %w", c.ID, err)
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
