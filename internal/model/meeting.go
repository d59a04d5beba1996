package model

// MeetingMeta 一次宣达的元数据，只存在于单次请求
type MeetingMeta struct {
	Location  string `json:"location"`
	Date      string `json:"date"`       // YYYY/MM/DD
	TimeRange string `json:"time_range"` // 例如 "08:00 ~ 08:15"
	Spokesman string `json:"spokesman"`
}
