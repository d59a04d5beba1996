package service

import "errors"

// ── 出席记录业务错误 ──

var (
	ErrTemplateNotFound       = errors.New("找不到范本")
	ErrTemplateMalformed      = errors.New("范本格式异常")
	ErrInvalidTemplateName    = errors.New("范本名称无效")
	ErrDateRequired           = errors.New("请输入日期 (YYYY/MM/DD)")
	ErrTimeRangeInvalid       = errors.New("时间格式请用区间，例如 08:00 ~ 08:15")
	ErrNoAttendees            = errors.New("请至少勾选一位人员")
	ErrUnknownEmployee        = errors.New("名单中没有此工号")
	ErrSpokesmanNotSelectable = errors.New("宣达人不可选为出席人员")
	ErrUnknownSpokesman       = errors.New("未知的宣达人")
	ErrExportGenerateFail     = errors.New("生成 Excel 文件失败")
)
