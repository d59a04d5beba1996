package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/pkg/response"
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 与 Word 出席记录使用相同的宣达资讯与勾选名单，校验规则一致，但不需要范本
//   - 导出以 bytes 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAttendance 导出出席名单为 Excel
	ExportAttendance(ctx context.Context, sessionID string, req *dto.GenerateAttendanceRequest) (*dto.AttendanceFile, error)
}

type exportService struct {
	cfg    *config.Config
	roster RosterService
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, roster RosterService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, roster: roster, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportAttendance 导出出席名单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式（单一 Sheet "出席記錄"）：
//   - 第 1 行：标题（合并 A1:D1）
//   - 第 2~5 行：地点 / 日期 / 时间 / 宣达人
//   - 第 7 行起：工号 | 姓名 | 签名 | 日期，签名与日期留空

const exportSheet = "出席記錄"

func (s *exportService) ExportAttendance(ctx context.Context, sessionID string, req *dto.GenerateAttendanceRequest) (*dto.AttendanceFile, error) {
	in, err := prepareAttendance(ctx, s.roster, sessionID, req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	_ = f.DeleteSheet("Sheet1")

	// 设置列宽
	_ = f.SetColWidth(exportSheet, "A", "A", 14)
	_ = f.SetColWidth(exportSheet, "B", "B", 16)
	_ = f.SetColWidth(exportSheet, "C", "D", 20)

	// 样式
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Family: s.cfg.Template.LabelFont},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	idStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: s.cfg.Template.IDFont, Size: float64(s.cfg.Template.FontSize)},
	})
	nameStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: s.cfg.Template.NameFont, Size: float64(s.cfg.Template.FontSize)},
	})

	// 标题行
	_ = f.SetCellValue(exportSheet, "A1", s.cfg.Template.OutputPrefix)
	_ = f.MergeCell(exportSheet, "A1", cell(colName(rosterColumns-1), 1))
	_ = f.SetCellStyle(exportSheet, "A1", "A1", titleStyle)

	// 宣达资讯
	metaRows := [][2]string{
		{"地點 / Location", in.meta.Location},
		{"日期 / Date", in.meta.Date},
		{"時間 / Time", in.meta.TimeRange},
		{"宣達人 / Spokesman", in.meta.Spokesman},
	}
	row := 2
	for _, m := range metaRows {
		_ = f.SetCellValue(exportSheet, cell("A", row), m[0])
		_ = f.SetCellValue(exportSheet, cell("B", row), m[1])
		row++
	}

	// 表头
	row++
	headerRow := row
	for i, h := range []string{"工號", "姓名", "簽名", "日期"} {
		_ = f.SetCellValue(exportSheet, cell(colName(i), row), h)
	}
	_ = f.SetCellStyle(exportSheet, cell("A", headerRow), cell(colName(rosterColumns-1), headerRow), headerStyle)

	// 数据行
	row++
	for _, p := range in.attendees {
		_ = f.SetCellValue(exportSheet, cell("A", row), p.ID)
		_ = f.SetCellValue(exportSheet, cell("B", row), p.Name)
		_ = f.SetCellStyle(exportSheet, cell("A", row), cell("A", row), idStyle)
		_ = f.SetCellStyle(exportSheet, cell("B", row), cell("B", row), nameStyle)
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	s.logger.Info("已导出出席名单",
		zap.String("session_id", sessionID),
		zap.Int("attendees", len(in.attendees)),
	)

	return &dto.AttendanceFile{
		Filename:    outputFilename(s.cfg.Template.OutputPrefix, s.now(), "xlsx"),
		ContentType: response.MIMEXlsx,
		Data:        buf.Bytes(),
	}, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
