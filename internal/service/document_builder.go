package service

import (
	"fmt"

	"daily-briefing/backend/internal/model"
	"daily-briefing/backend/pkg/docx"
)

// rosterColumns 名单表的列：工号、姓名、签名、日期
const rosterColumns = 4

// rosterTableIndex 名单固定为范本中的第二张表
const rosterTableIndex = 1

// DocumentFonts 出席记录各处使用的字体
type DocumentFonts struct {
	Label docx.Font // 资讯表格中填写的值
	ID    docx.Font
	Name  docx.Font
}

// BuildAttendanceDocument 以范本产生出席记录
// 相同输入产生相同内容，不依赖会话或时间
func BuildAttendanceDocument(
	tmpl []byte,
	attendees []model.Personnel,
	meta model.MeetingMeta,
	locators []FieldLocator,
	fonts DocumentFonts,
) ([]byte, FillReport, error) {
	doc, err := docx.Open(tmpl)
	if err != nil {
		return nil, FillReport{}, fmt.Errorf("%w: %v", ErrTemplateMalformed, err)
	}

	tables := doc.Tables()
	grids := make([]TableGrid, len(tables))
	for i, t := range tables {
		grids[i] = t
	}

	report := FillFields(grids, locators, map[string]string{
		FieldLocation:  meta.Location,
		FieldDate:      meta.Date,
		FieldTime:      meta.TimeRange,
		FieldSpokesman: meta.Spokesman,
	}, fonts.Label)

	if len(tables) <= rosterTableIndex {
		return nil, report, fmt.Errorf("%w: 找不到出席名单表 (tables[%d])", ErrTemplateMalformed, rosterTableIndex)
	}
	if err := RebuildRoster(tables[rosterTableIndex], attendees, fonts); err != nil {
		return nil, report, err
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, report, fmt.Errorf("输出出席记录失败: %w", err)
	}
	return out, report, nil
}

// RebuildRoster 保留表头，删除其余各行，再按 attendees 顺序逐行写入
func RebuildRoster(tbl *docx.Table, attendees []model.Personnel, fonts DocumentFonts) error {
	if cols := tbl.ColumnCount(); cols < rosterColumns {
		return fmt.Errorf("%w: 出席名单表需要 %d 栏，实际 %d 栏", ErrTemplateMalformed, rosterColumns, cols)
	}
	if tbl.RowCount() == 0 {
		return fmt.Errorf("%w: 出席名单表缺少表头", ErrTemplateMalformed)
	}

	tbl.TruncateRows(1)
	for _, p := range attendees {
		tbl.AppendRow(
			docx.CellValue{Text: p.ID, Font: fonts.ID},
			docx.CellValue{Text: p.Name, Font: fonts.Name},
			docx.CellValue{},
			docx.CellValue{},
		)
	}
	return nil
}
