// Package lilim reads the Li & Lim pickup-and-delivery VRPTW benchmark
// format (spec §6): like Solomon but each row carries a pickup_idx/
// delivery_idx pair; pickup_idx==0 marks a pickup request (whose paired
// delivery is elsewhere in the file) and delivery_idx==0 marks a delivery
// request, matched into a synthesised Multi job per
// original_source/core/tests/unit/streams/input/text/lilim_test.rs.
package lilim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vrpsolver/vrp/pkg/costs"
	"github.com/vrpsolver/vrp/pkg/model"
)

// Row is one parsed data line.
type Row struct {
	ID          int
	X, Y        float64
	Demand      int
	Ready, Due  float64
	Service     float64
	PickupIdx   int
	DeliveryIdx int
}

// Document is the raw parsed Li&Lim file.
type Document struct {
	VehicleCount int
	Capacity     int
	Rows         []Row
}

// Parse reads a Li&Lim document from r.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("io/lilim: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("io/lilim: empty document")
	}

	doc := &Document{}
	header := strings.Fields(lines[0])
	if len(header) < 2 {
		return nil, fmt.Errorf("io/lilim: malformed header %q", lines[0])
	}
	n, err1 := strconv.Atoi(header[0])
	capacity, err2 := strconv.Atoi(header[1])
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("io/lilim: malformed header %q", lines[0])
	}
	doc.VehicleCount, doc.Capacity = n, capacity

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}
		vals := make([]float64, 8)
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		ok := true
		for i := 0; i < 8; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		doc.Rows = append(doc.Rows, Row{
			ID:          id,
			X:           vals[0],
			Y:           vals[1],
			Demand:      int(vals[2]),
			Ready:       vals[3],
			Due:         vals[4],
			Service:     vals[5],
			PickupIdx:   int(vals[6]),
			DeliveryIdx: int(vals[7]),
		})
	}
	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("io/lilim: no data rows found")
	}
	return doc, nil
}

const demandDimension = "capacity"

// ParseProblem lowers a Li&Lim document into a model.Problem: row 0 is the
// depot, every pickup row (DeliveryIdx != 0, PickupIdx == 0) is paired with
// its delivery row into a two-Single Multi job whose only permitted
// ordering visits the pickup first, and every other row becomes a plain
// delivery Single.
func ParseProblem(r io.Reader) (*model.Problem, model.TransportCost, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, nil, err
	}

	coords := make([]costs.Coordinate, len(doc.Rows))
	byID := make(map[int]Row, len(doc.Rows))
	for i, row := range doc.Rows {
		coords[i] = costs.Coordinate{X: row.X, Y: row.Y}
		byID[row.ID] = row
	}
	transport := costs.NewEuclidean(coords, 1)
	activityCost := costs.NewActivityEstimator(transport)

	depot := byID[0]
	depotPlace, err := model.NewPlace(model.Location(0), 0, []model.TimeWindow{{Start: depot.Ready, End: depot.Due}})
	if err != nil {
		return nil, nil, fmt.Errorf("io/lilim: depot place: %w", err)
	}

	var vehicles []*model.Vehicle
	for v := 0; v < doc.VehicleCount; v++ {
		shift := model.Shift{Start: depotPlace}
		dims := model.NewDimensions().Set(model.TagCapacity, map[string]int{demandDimension: doc.Capacity})
		vehicle, err := model.NewVehicle(fmt.Sprintf("vehicle-%d", v), "default", []model.Shift{shift}, dims)
		if err != nil {
			return nil, nil, fmt.Errorf("io/lilim: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	fleet, err := model.NewFleet(vehicles, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("io/lilim: %w", err)
	}

	rowToSingle := func(row Row) (*model.Single, error) {
		place, err := model.NewPlace(model.Location(row.ID), row.Service, []model.TimeWindow{{Start: row.Ready, End: row.Due}})
		if err != nil {
			return nil, err
		}
		dims := model.NewDimensions().Set(model.TagDemand, map[string]int{demandDimension: row.Demand})
		return model.NewSingle(fmt.Sprintf("row-%d", row.ID), []model.Place{place}, dims)
	}

	var jobs []model.Job
	consumed := make(map[int]bool)
	for _, row := range doc.Rows {
		if row.ID == 0 || consumed[row.ID] {
			continue
		}
		isPickup := row.PickupIdx == 0 && row.DeliveryIdx != 0
		isDelivery := row.DeliveryIdx == 0 && row.PickupIdx != 0
		if !isPickup && !isDelivery {
			single, err := rowToSingle(row)
			if err != nil {
				return nil, nil, fmt.Errorf("io/lilim: row %d: %w", row.ID, err)
			}
			jobs = append(jobs, single)
			continue
		}

		var pickupRow, deliveryRow Row
		if isPickup {
			pickupRow = row
			deliveryRow = byID[row.DeliveryIdx]
		} else {
			deliveryRow = row
			pickupRow = byID[row.PickupIdx]
		}
		consumed[pickupRow.ID] = true
		consumed[deliveryRow.ID] = true

		pickupSingle, err := rowToSingle(pickupRow)
		if err != nil {
			return nil, nil, fmt.Errorf("io/lilim: row %d: %w", pickupRow.ID, err)
		}
		deliverySingle, err := rowToSingle(deliveryRow)
		if err != nil {
			return nil, nil, fmt.Errorf("io/lilim: row %d: %w", deliveryRow.ID, err)
		}
		multi, err := model.NewMulti(
			fmt.Sprintf("pair-%d-%d", pickupRow.ID, deliveryRow.ID),
			[]*model.Single{pickupSingle, deliverySingle},
			[][]int{{0, 1}},
			nil,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("io/lilim: pair %d/%d: %w", pickupRow.ID, deliveryRow.ID, err)
		}
		jobs = append(jobs, multi)
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
