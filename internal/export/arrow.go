package export

import (
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// timestampType is the Arrow type of Date and time columns.
var timestampType = &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}

// arrowType maps a column type to its Arrow storage type. Types without a
// native Arrow counterpart are exported as their display string.
func arrowType(t core.ColumnType) arrow.DataType {
	switch t {
	case core.ColumnNumber, core.ColumnAverageRating:
		return arrow.PrimitiveTypes.Float64
	case core.ColumnYesNo:
		return arrow.FixedWidthTypes.Boolean
	case core.ColumnDateTime:
		return timestampType
	default:
		return arrow.BinaryTypes.String
	}
}

// Schema returns the Arrow schema of l. Field metadata carries the original
// column type name.
func Schema(l *core.List) *arrow.Schema {
	cols := l.Columns()
	fields := make([]arrow.Field, len(cols))
	for i, c := range cols {
		fields[i] = arrow.Field{
			Name:     c.Name,
			Type:     arrowType(c.Type()),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{"list.column_type"}, []string{c.Type().String()}),
		}
	}
	md := arrow.NewMetadata([]string{"list.name"}, []string{l.Name})
	return arrow.NewSchema(fields, &md)
}

// ToRecord builds one Arrow record holding every row of l. The caller must
// Release it. Values that do not fit the column's Arrow type are null.
func ToRecord(l *core.List, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema := Schema(l)
	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	for _, r := range l.Rows() {
		for i, v := range r.Values() {
			if err := appendValue(rb.Field(i), v); err != nil {
				return nil, fmt.Errorf("row %s column %q: %w", r.ID, schema.Field(i).Name, err)
			}
		}
	}
	return rb.NewRecord(), nil
}

func appendValue(b array.Builder, v core.Value) error {
	if v.IsNull() {
		b.AppendNull()
		return nil
	}
	switch fb := b.(type) {
	case *array.Float64Builder:
		if f, ok := v.Number(); ok {
			fb.Append(f)
		} else {
			fb.AppendNull()
		}
	case *array.BooleanBuilder:
		if x, ok := v.Bool(); ok {
			fb.Append(x)
		} else {
			fb.AppendNull()
		}
	case *array.TimestampBuilder:
		if t, ok := v.Time(); ok {
			fb.Append(arrow.Timestamp(t.UTC().Truncate(time.Microsecond).UnixMicro()))
		} else {
			fb.AppendNull()
		}
	case *array.StringBuilder:
		fb.Append(v.String())
	default:
		return fmt.Errorf("unexpected arrow builder %T", b)
	}
	return nil
}

// WriteArrowIPC writes l as an Arrow IPC stream.
func WriteArrowIPC(w io.Writer, l *core.List) error {
	mem := memory.NewGoAllocator()
	rec, err := ToRecord(l, mem)
	if err != nil {
		return err
	}
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("write arrow record: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("close arrow stream: %w", err)
	}
	return nil
}

// WriteParquet writes l as a Snappy-compressed Parquet file with the Arrow
// schema stored in the file metadata.
func WriteParquet(w io.Writer, l *core.List) error {
	mem := memory.NewGoAllocator()
	rec, err := ToRecord(l, mem)
	if err != nil {
		return err
	}
	defer rec.Release()

	table := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer table.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	pw, err := pqarrow.NewFileWriter(table.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	if err := pw.WriteTable(table, max(table.NumRows(), 1)); err != nil {
		pw.Close()
		return fmt.Errorf("write parquet table: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
