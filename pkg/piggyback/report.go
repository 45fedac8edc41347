package piggyback

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReportTag is the message tag byte identifying a statistics report in the
// outbound stream.
const ReportTag = byte('X')

// ColumnReport is one resolved column entry of the final report.
type ColumnReport struct {
	Name        string
	ResultIndex int32
	Distinct    int32
	Min         int32
	Max         int32
	IsNumeric   bool
}

// Report is the fully resolved query metadata emitted at end of execution.
type Report struct {
	Columns []ColumnReport
	FDs     []FD
}

// buildReport resolves every column's distinct count against the total row
// count and pairs it with the surviving dependencies.
func buildReport(store *Store, fds []FD) *Report {
	columns := make([]ColumnReport, store.NumColumns())
	for i := range columns {
		col := store.Column(i)
		min, _ := col.MinValue()
		max, _ := col.MaxValue()
		columns[i] = ColumnReport{
			Name:        col.Name,
			ResultIndex: int32(col.ResultIndex),
			Distinct:    int32(store.ResolvedDistinct(i)),
			Min:         int32(min),
			Max:         int32(max),
			IsNumeric:   col.IsNumeric,
		}
	}
	return &Report{Columns: columns, FDs: fds}
}

// Write serializes the report as one binary-framed message: a tag byte,
// then fixed-width network-byte-order integers and length-prefixed strings.
func (r *Report) Write(w io.Writer) error {
	if _, err := w.Write([]byte{ReportTag}); err != nil {
		return fmt.Errorf("failed to write report tag: %v", err)
	}
	if err := writeInt32(w, int32(len(r.Columns))); err != nil {
		return err
	}

	for _, col := range r.Columns {
		if err := writeString(w, col.Name); err != nil {
			return err
		}
		numeric := int32(0)
		if col.IsNumeric {
			numeric = 1
		}
		for _, v := range []int32{col.ResultIndex, col.Distinct, col.Min, col.Max, numeric} {
			if err := writeInt32(w, v); err != nil {
				return err
			}
		}
	}

	if err := writeInt32(w, int32(len(r.FDs))); err != nil {
		return err
	}
	for _, fd := range r.FDs {
		if err := writeString(w, fd.Determinant); err != nil {
			return err
		}
		if err := writeString(w, fd.Dependent); err != nil {
			return err
		}
	}
	return nil
}

func writeInt32(w io.Writer, v int32) error {
	if err := binary.Write(w, binary.BigEndian, v); err != nil {
		return fmt.Errorf("failed to write int32: %v", err)
	}
	return nil
}

// writeString frames a string as a uint32 byte length followed by the bytes.
func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
		return fmt.Errorf("failed to write string length: %v", err)
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("failed to write string bytes: %v", err)
	}
	return nil
}
