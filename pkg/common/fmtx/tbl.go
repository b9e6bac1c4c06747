package fmtx

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const (
	TblColWidth   = 120
	TblEmptyValue = "<empty>"
)

func newTbl(w io.Writer, header []string) *tablewriter.Table {
	tbl := tablewriter.NewWriter(w)
	tbl.SetColWidth(TblColWidth)
	tbl.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tbl.SetHeader(header)
	tbl.SetBorder(false)
	tbl.SetAlignment(tablewriter.ALIGN_LEFT)
	return tbl
}

func tblRender(caption string, header []string, rows [][]string) string {
	sb := bytes.NewBufferString("\n")
	sb.WriteString(fmt.Sprintf("%s\n\n", caption))
	tbl := newTbl(sb, header)
	tbl.AppendBulk(rows)
	tbl.Render()
	sb.WriteString("\n")
	return sb.String()
}

func TblProps(props map[string]any) string {
	return TblMap("properties", "name", "value", props)
}

// TblList renders label-value pairs without header.
func TblList(caption string, items [][]any) string {
	return tblRender(caption, []string{}, lo.Map(items, func(item []any, _ int) []string {
		return []string{TblValue(item[0]), TblValue(item[1])}
	}))
}

func TblMap(caption, keyLabel, valueLabel string, props map[string]any) string {
	keys := lo.Keys(props)
	sort.Strings(keys)
	return tblRender(caption, []string{keyLabel, valueLabel}, lo.Map(keys, func(key string, _ int) []string {
		return []string{key, TblValue(props[key])}
	}))
}

// TblRows renders numbered rows; cells are picked from row maps by header names.
func TblRows(caption string, header []string, rows []map[string]any) string {
	return tblRender(caption, append([]string{"#"}, header...), lo.Map(rows, func(row map[string]any, index int) []string {
		cells := []string{TblValue(index + 1)}
		for _, name := range header {
			cells = append(cells, TblValue(row[name]))
		}
		return cells
	}))
}

func TblValue(value any) string {
	result := ""
	if value != nil {
		rv := reflect.ValueOf(value)
		switch rv.Type().Kind() {
		case reflect.Map:
			entries := lo.Map(rv.MapKeys(), func(key reflect.Value, _ int) string {
				return fmt.Sprintf("%v = %v", key.Interface(), rv.MapIndex(key).Interface())
			})
			sort.Strings(entries)
			result = strings.Join(entries, ", ")
		case reflect.Array, reflect.Slice:
			items := make([]string, rv.Len())
			for i := range items {
				items[i] = fmt.Sprintf("%v", rv.Index(i).Interface())
			}
			result = strings.Join(items, ", ")
		default:
			result = fmt.Sprintf("%v", value)
		}
	}
	if len(result) == 0 {
		return TblEmptyValue
	}
	return result
}
