// Package docxtest 为测试在内存中构造最小可用的 docx 文件。
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Table 按行给出的单元格文字；单元格内的 "\n" 会拆成多个段落
type Table [][]string

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// Build 生成包含给定表格的 docx；表格之间插入一个空段落
func Build(tables ...Table) []byte {
	return BuildWithBody(DocumentXML(tables...))
}

// BuildWithBody 用指定的 document.xml 内容生成 docx
func BuildWithBody(documentXML string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rootRels},
		{"word/document.xml", documentXML},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// DocumentXML 生成 word/document.xml 文本
func DocumentXML(tables ...Table) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for i, t := range tables {
		if i > 0 {
			sb.WriteString(`<w:p/>`)
		}
		writeTable(&sb, t)
	}
	sb.WriteString(`<w:sectPr/></w:body></w:document>`)
	return sb.String()
}

func writeTable(sb *strings.Builder, t Table) {
	cols := 0
	for _, row := range t {
		if len(row) > cols {
			cols = len(row)
		}
	}
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tblGrid>`)
	for i := 0; i < cols; i++ {
		fmt.Fprintf(sb, `<w:gridCol w:w="%d"/>`, 2000+i*100)
	}
	sb.WriteString(`</w:tblGrid>`)
	for _, row := range t {
		sb.WriteString(`<w:tr>`)
		for _, cell := range row {
			sb.WriteString(`<w:tc><w:tcPr><w:tcW w:w="2000" w:type="dxa"/></w:tcPr>`)
			for _, para := range strings.Split(cell, "\n") {
				if para == "" {
					sb.WriteString(`<w:p/>`)
					continue
				}
				sb.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t xml:space="preserve">`)
				_ = xml.EscapeText(sb, []byte(para))
				sb.WriteString(`</w:t></w:r></w:p>`)
			}
			sb.WriteString(`</w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
}
