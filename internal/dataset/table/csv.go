package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses a CSV document whose first record is the header row.
//
// An empty cell is a null. Each column gets the narrowest dtype that parses
// every non-null cell: int64, then float64, then bool, falling back to
// string. A column with only nulls is typed string.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv has no header row")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cells := make([][]string, len(header))
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		for i := range header {
			cells[i] = append(cells[i], record[i])
		}
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = inferColumn(strings.TrimSpace(name), cells[i])
	}

	return New(cols...)
}

func inferColumn(name string, cells []string) Column {
	dt := inferDType(cells)

	values := make([]any, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue // null
		}

		switch dt {
		case DTypeInt64:
			values[i], _ = strconv.ParseInt(cell, 10, 64)
		case DTypeFloat64:
			values[i], _ = strconv.ParseFloat(cell, 64)
		case DTypeBool:
			values[i] = strings.EqualFold(cell, "true")
		default:
			values[i] = cell
		}
	}

	return Column{Name: name, Type: dt, Values: values}
}

func inferDType(cells []string) DType {
	isInt, isFloat, isBool := true, true, true
	sawValue := false

	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		sawValue = true

		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if !strings.EqualFold(cell, "true") && !strings.EqualFold(cell, "false") {
				isBool = false
			}
		}
		if !isInt && !isFloat && !isBool {
			break
		}
	}

	if !sawValue {
		return DTypeString
	}

	switch {
	case isInt:
		return DTypeInt64
	case isFloat:
		return DTypeFloat64
	case isBool:
		return DTypeBool
	default:
		return DTypeString
	}
}
