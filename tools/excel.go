package tools

import (
	"fmt"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
)

// excelTimeLayout 时间列统一按 UTC 文本输出
const excelTimeLayout = "2006-01-02 15:04:05"

type excelColumn struct {
	index  []int
	header string
}

// ExportToExcel 把结构体切片写入 sheet，列名取 excel 标签，"-" 跳过，
// 匿名嵌入的结构体字段展开
func ExportToExcel(f *excelize.File, sheet string, data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("data %T 不是切片", data)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("data %T 不是结构体切片", data)
	}

	if sheet == "" {
		sheet = "Sheet1"
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	columns := excelColumns(elemType, nil)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	row := 2
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		for j, col := range columns {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, excelValue(elem.FieldByIndex(col.index))); err != nil {
				return err
			}
		}
		row++
	}

	// 冻结表头
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func excelColumns(t reflect.Type, parent []int) []excelColumn {
	var columns []excelColumn
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		idx := append(append([]int(nil), parent...), i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			columns = append(columns, excelColumns(sf.Type, idx)...)
			continue
		}

		tag := sf.Tag.Get("excel")
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = sf.Name
		}
		columns = append(columns, excelColumn{index: idx, header: tag})
	}
	return columns
}

// excelValue 空指针写空串，时间转为文本
func excelValue(fv reflect.Value) any {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return ""
		}
		fv = fv.Elem()
	}
	if t, ok := fv.Interface().(time.Time); ok {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(excelTimeLayout)
	}
	return fv.Interface()
}
