package table

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/parquet-go"
)

// WriteParquet writes the table to path as a flat parquet file of optional
// leaf columns.
//
// Parquet groups order their fields by name, so the file's column order may
// differ from the table's; the sidecar preserves the original order.
func (t *Table) WriteParquet(path string) error {
	group := parquet.Group{}
	for _, c := range t.cols {
		group[c.Name] = parquet.Optional(parquetNode(c.Type))
	}
	schema := parquet.NewSchema("dataset", group)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewWriter(f, schema)

	fields := schema.Fields()
	for i := 0; i < t.rows; i++ {
		row := make(parquet.Row, 0, len(fields))
		for leaf, field := range fields {
			col, ok := t.Column(field.Name())
			if !ok {
				continue
			}
			v := col.Values[i]
			if v == nil {
				row = append(row, parquet.ValueOf(nil).Level(0, 0, leaf))
			} else {
				row = append(row, parquet.ValueOf(v).Level(0, 1, leaf))
			}
		}
		if _, err := writer.WriteRows([]parquet.Row{row}); err != nil {
			f.Close()
			return fmt.Errorf("write parquet row: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}

	return f.Close()
}

// ReadParquet loads a parquet file into a table. Columns follow the file's
// leaf order.
func ReadParquet(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	fields := pf.Schema().Fields()
	cols := make([]Column, len(fields))
	for i, field := range fields {
		if !field.Leaf() {
			return nil, fmt.Errorf("column %q: nested parquet schemas are not supported", field.Name())
		}
		dt, err := dtypeFromParquet(field.Type().Kind())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name(), err)
		}
		cols[i] = Column{Name: field.Name(), Type: dt}
	}

	for _, rowGroup := range pf.RowGroups() {
		if err := readRowGroup(rowGroup, cols); err != nil {
			return nil, err
		}
	}

	return New(cols...)
}

func readRowGroup(rowGroup parquet.RowGroup, cols []Column) error {
	rows := rowGroup.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for _, v := range row {
				ci := v.Column()
				if ci < 0 || ci >= len(cols) {
					return fmt.Errorf("parquet value for unknown column index %d", ci)
				}
				cols[ci].Values = append(cols[ci].Values, goValue(v))
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read parquet rows: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

func goValue(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}

	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return v.String()
	}
}

func parquetNode(dt DType) parquet.Node {
	switch dt {
	case DTypeInt64:
		return parquet.Int(64)
	case DTypeFloat64:
		return parquet.Leaf(parquet.DoubleType)
	case DTypeBool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

func dtypeFromParquet(kind parquet.Kind) (DType, error) {
	switch kind {
	case parquet.Boolean:
		return DTypeBool, nil
	case parquet.Int32, parquet.Int64:
		return DTypeInt64, nil
	case parquet.Float, parquet.Double:
		return DTypeFloat64, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return DTypeString, nil
	default:
		return DTypeString, fmt.Errorf("unsupported parquet kind: %v", kind)
	}
}
