package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Font 写入文字时强制使用的字体；零值字段表示沿用范本样式
type Font struct {
	Name string // 同时写入 ascii / hAnsi / eastAsia
	Size int    // 磅
}

// CellValue 新增行中一个单元格的内容
type CellValue struct {
	Text string
	Font Font
}

// Table 文档中的一个 w:tbl
type Table struct {
	el  *etree.Element
	doc *Document
}

// Row 表格中的一个 w:tr
type Row struct {
	el  *etree.Element
	doc *Document
}

// Cell 行中的一个 w:tc
// 横向合并的单元格 (w:gridSpan) 在表格级的读写中按其覆盖的每个网格列各算一次
type Cell struct {
	el  *etree.Element
	doc *Document
}

// Rows 返回所有行
func (t *Table) Rows() []*Row {
	var rows []*Row
	for _, el := range t.el.SelectElements("tr") {
		rows = append(rows, &Row{el: el, doc: t.doc})
	}
	return rows
}

// RowCount 行数
func (t *Table) RowCount() int {
	return len(t.el.SelectElements("tr"))
}

// CellCount 第 row 行的网格列数（跨列单元格按跨度计）；越界返回 0
func (t *Table) CellCount(row int) int {
	r := t.row(row)
	if r == nil {
		return 0
	}
	return len(r.gridCells())
}

// CellBounds 覆盖 (row, col) 的单元格所占的网格列范围 [first, last]；越界返回 (-1, -1)
func (t *Table) CellBounds(row, col int) (first, last int) {
	r := t.row(row)
	if r == nil {
		return -1, -1
	}
	grid := r.gridCells()
	if col < 0 || col >= len(grid) {
		return -1, -1
	}
	first, last = col, col
	for first > 0 && grid[first-1].el == grid[col].el {
		first--
	}
	for last < len(grid)-1 && grid[last+1].el == grid[col].el {
		last++
	}
	return first, last
}

// CellText 读取网格位置 (row, col) 的文字；越界返回空串
func (t *Table) CellText(row, col int) string {
	c := t.cell(row, col)
	if c == nil {
		return ""
	}
	return c.Text()
}

// SetCellText 覆写网格位置 (row, col) 所在单元格的内容；越界时返回 false
func (t *Table) SetCellText(row, col int, text string, font Font) bool {
	c := t.cell(row, col)
	if c == nil {
		return false
	}
	c.SetText(text, font)
	return true
}

// ColumnCount 表格网格列数（w:tblGrid），缺失时取各行单元格数的最大值
func (t *Table) ColumnCount() int {
	if grid := t.el.SelectElement("tblGrid"); grid != nil {
		if n := len(grid.SelectElements("gridCol")); n > 0 {
			return n
		}
	}
	max := 0
	for _, r := range t.Rows() {
		if n := len(r.gridCells()); n > max {
			max = n
		}
	}
	return max
}

// TruncateRows 只保留前 keep 行，其余删除
func (t *Table) TruncateRows(keep int) {
	if keep < 0 {
		keep = 0
	}
	for i, tr := range t.el.SelectElements("tr") {
		if i >= keep {
			t.el.RemoveChild(tr)
		}
	}
}

// AppendRow 在表格末尾新增一行
// 单元格数量取网格列数；values 少于列数时其余单元格留空
func (t *Table) AppendRow(values ...CellValue) *Row {
	cols := t.ColumnCount()
	if len(values) > cols {
		cols = len(values)
	}
	widths := t.gridWidths()

	tr := t.el.CreateElement(t.doc.tag("tr"))
	row := &Row{el: tr, doc: t.doc}
	for i := 0; i < cols; i++ {
		tc := tr.CreateElement(t.doc.tag("tc"))
		tcPr := tc.CreateElement(t.doc.tag("tcPr"))
		tcW := tcPr.CreateElement(t.doc.tag("tcW"))
		if i < len(widths) && widths[i] != "" {
			tcW.CreateAttr(t.doc.tag("w"), widths[i])
			tcW.CreateAttr(t.doc.tag("type"), "dxa")
		} else {
			tcW.CreateAttr(t.doc.tag("w"), "0")
			tcW.CreateAttr(t.doc.tag("type"), "auto")
		}

		cell := &Cell{el: tc, doc: t.doc}
		if i < len(values) {
			cell.SetText(values[i].Text, values[i].Font)
		} else {
			cell.SetText("", Font{})
		}
	}
	return row
}

func (t *Table) gridWidths() []string {
	grid := t.el.SelectElement("tblGrid")
	if grid == nil {
		return nil
	}
	var widths []string
	for _, gc := range grid.SelectElements("gridCol") {
		widths = append(widths, gc.SelectAttrValue(t.doc.tag("w"), ""))
	}
	return widths
}

func (t *Table) row(i int) *Row {
	trs := t.el.SelectElements("tr")
	if i < 0 || i >= len(trs) {
		return nil
	}
	return &Row{el: trs[i], doc: t.doc}
}

func (t *Table) cell(row, col int) *Cell {
	r := t.row(row)
	if r == nil {
		return nil
	}
	grid := r.gridCells()
	if col < 0 || col >= len(grid) {
		return nil
	}
	return grid[col]
}

// Cells 返回行内单元格
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for _, el := range r.el.SelectElements("tc") {
		cells = append(cells, &Cell{el: el, doc: r.doc})
	}
	return cells
}

// gridCells 按网格列展开的单元格，跨列单元格在其覆盖的每一列重复出现
func (r *Row) gridCells() []*Cell {
	var grid []*Cell
	for _, c := range r.Cells() {
		for i := 0; i < c.GridSpan(); i++ {
			grid = append(grid, c)
		}
	}
	return grid
}

// GridSpan 单元格横跨的网格列数，至少为 1
func (c *Cell) GridSpan() int {
	tcPr := c.el.SelectElement("tcPr")
	if tcPr == nil {
		return 1
	}
	gs := tcPr.SelectElement("gridSpan")
	if gs == nil {
		return 1
	}
	n, err := strconv.Atoi(gs.SelectAttrValue(c.doc.tag("val"), ""))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Text 单元格纯文字，段落之间以换行连接
func (c *Cell) Text() string {
	var paras []string
	for _, p := range c.el.SelectElements("p") {
		var sb strings.Builder
		collectText(p, &sb)
		paras = append(paras, sb.String())
	}
	return strings.Join(paras, "\n")
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "t":
			sb.WriteString(child.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "rPr", "pPr", "delText", "instrText":
		default:
			collectText(child, sb)
		}
	}
}

// SetText 清空单元格内容并写入单个段落
// 保留 w:tcPr 与首段的 w:pPr（对齐等段落格式）
func (c *Cell) SetText(text string, font Font) {
	var pPr *etree.Element
	if first := c.el.SelectElement("p"); first != nil {
		if pp := first.SelectElement("pPr"); pp != nil {
			pPr = pp.Copy()
		}
	}

	for _, child := range c.el.ChildElements() {
		if child.Tag != "tcPr" {
			c.el.RemoveChild(child)
		}
	}

	p := c.el.CreateElement(c.doc.tag("p"))
	if pPr != nil {
		p.AddChild(pPr)
	}
	if text == "" {
		return
	}

	r := p.CreateElement(c.doc.tag("r"))
	c.writeRunProperties(r, font)

	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			r.CreateElement(c.doc.tag("br"))
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				r.CreateElement(c.doc.tag("tab"))
			}
			if seg == "" {
				continue
			}
			t := r.CreateElement(c.doc.tag("t"))
			t.CreateAttr("xml:space", "preserve")
			t.SetText(seg)
		}
	}
}

func (c *Cell) writeRunProperties(r *etree.Element, font Font) {
	if font.Name == "" && font.Size <= 0 {
		return
	}
	rPr := r.CreateElement(c.doc.tag("rPr"))
	if font.Name != "" {
		fonts := rPr.CreateElement(c.doc.tag("rFonts"))
		fonts.CreateAttr(c.doc.tag("ascii"), font.Name)
		fonts.CreateAttr(c.doc.tag("hAnsi"), font.Name)
		fonts.CreateAttr(c.doc.tag("eastAsia"), font.Name)
	}
	if font.Size > 0 {
		// w:sz 以半磅为单位
		half := strconv.Itoa(font.Size * 2)
		rPr.CreateElement(c.doc.tag("sz")).CreateAttr(c.doc.tag("val"), half)
		rPr.CreateElement(c.doc.tag("szCs")).CreateAttr(c.doc.tag("val"), half)
	}
}
