package dto

// ── 出席记录 DTO ──

// GenerateAttendanceRequest 产生出席记录
// 字段的非空与格式校验在 service 层完成，以便按固定顺序返回错误
type GenerateAttendanceRequest struct {
	Location  string `json:"location"`
	Date      string `json:"date"`
	TimeRange string `json:"time_range"`
	Spokesman string `json:"spokesman"`
	Template  string `json:"template"` // 可选，范本目录下的文件名
}

// AttendanceFile 产出的文件
type AttendanceFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
