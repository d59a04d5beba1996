package service

import (
	"strings"

	"daily-briefing/backend/pkg/docx"
)

// TableGrid 字段写入所需的最小表格操作，列号一律为网格列
// *docx.Table 直接满足该接口，测试可用内存表格替代
type TableGrid interface {
	RowCount() int
	CellCount(row int) int
	// CellBounds 覆盖 (row, col) 的单元格所占网格列 [first, last]
	CellBounds(row, col int) (first, last int)
	CellText(row, col int) string
	SetCellText(row, col int, text string, font docx.Font) bool
}

// Offset 相对标签单元格的位置
type Offset struct {
	Row int
	Col int
}

var (
	OffsetRight = Offset{Row: 0, Col: 1}
	OffsetBelow = Offset{Row: 1, Col: 0}
)

// 元数据字段名
const (
	FieldLocation  = "location"
	FieldDate      = "date"
	FieldTime      = "time"
	FieldSpokesman = "spokesman"
)

// FieldLocator 描述如何在范本中找到一个字段的填写位置：
// 先找文字包含任一关键字的标签单元格，再按 Offsets 顺序取第一个存在的单元格写入。
type FieldLocator struct {
	Field    string
	Keywords []string
	Offsets  []Offset
}

// DefaultFieldLocators 出席记录范本第一张表中的四个标签
func DefaultFieldLocators() []FieldLocator {
	offsets := []Offset{OffsetRight, OffsetBelow}
	return []FieldLocator{
		{Field: FieldLocation, Keywords: []string{"地點", "Location"}, Offsets: offsets},
		{Field: FieldDate, Keywords: []string{"日期", "Date"}, Offsets: offsets},
		{Field: FieldTime, Keywords: []string{"時間", "Time"}, Offsets: offsets},
		{Field: FieldSpokesman, Keywords: []string{"宣達人", "spokesman", "Spokesman"}, Offsets: offsets},
	}
}

// Matches 单元格文字（换行视为空格，去掉首尾空白）是否包含任一关键字
func (l FieldLocator) Matches(cellText string) bool {
	t := strings.TrimSpace(strings.ReplaceAll(cellText, "\n", " "))
	if t == "" {
		return false
	}
	for _, k := range l.Keywords {
		if k != "" && strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// FieldResult 单个字段的写入结果
// 未写入时 Table/Row/Col 为 -1
type FieldResult struct {
	Field   string
	Written bool
	Table   int
	Row     int
	Col     int
}

// FillReport 一次填写的逐字段结果
type FillReport struct {
	Fields []FieldResult
}

// Missing 未找到标签（或标签旁无可写单元格）的字段
func (r FillReport) Missing() []string {
	var out []string
	for _, f := range r.Fields {
		if !f.Written {
			out = append(out, f.Field)
		}
	}
	return out
}

// WriteField 按表格、行、列顺序扫描，在第一个有可写目标的标签旁写入 value。
// 跨列的标签只检查一次；向右取标签最后一列之后的单元格，向下取标签起始列。
// 找不到时不报错，只在结果中标记 Written=false。
func WriteField(tables []TableGrid, loc FieldLocator, value string, font docx.Font) FieldResult {
	res := FieldResult{Field: loc.Field, Table: -1, Row: -1, Col: -1}
	for ti, tbl := range tables {
		rows := tbl.RowCount()
		for ri := 0; ri < rows; ri++ {
			cells := tbl.CellCount(ri)
			for ci := 0; ci < cells; ci++ {
				first, last := tbl.CellBounds(ri, ci)
				if first != ci || !loc.Matches(tbl.CellText(ri, ci)) {
					continue
				}
				for _, off := range loc.Offsets {
					r, c := ri+off.Row, first+off.Col
					if off.Col > 0 {
						c = last + off.Col
					}
					if r < 0 || r >= rows || c < 0 || c >= tbl.CellCount(r) {
						continue
					}
					tbl.SetCellText(r, c, value, font)
					res.Written = true
					res.Table, res.Row, res.Col = ti, r, c
					return res
				}
			}
		}
	}
	return res
}

// FillFields 依次写入各字段，values 以字段名为键
func FillFields(tables []TableGrid, locators []FieldLocator, values map[string]string, font docx.Font) FillReport {
	var report FillReport
	for _, loc := range locators {
		report.Fields = append(report.Fields, WriteField(tables, loc, values[loc.Field], font))
	}
	return report
}
