// Package docx 在 Word (.docx) 文件的 word/document.xml 上做表格级读写。
//
// 只解析正文 XML，其余部件（样式、页眉页脚、图片等）原样写回，
// 因此范本的排版不会因为填写而丢失。
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

const documentPart = "word/document.xml"

var (
	ErrNotDocx        = errors.New("不是有效的 docx 文件")
	ErrNoDocumentBody = errors.New("docx 缺少正文 (w:body)")
)

// part zip 中的一个条目，document.xml 之外的条目不做修改
type part struct {
	file *zip.File
}

// Document 已打开的 docx 文档
type Document struct {
	parts  []part
	xml    *etree.Document
	body   *etree.Element
	prefix string // WordprocessingML 命名空间前缀，通常为 "w"
}

// Open 从内存字节解析 docx
func Open(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	d := &Document{}
	var docFile *zip.File
	for _, f := range zr.File {
		d.parts = append(d.parts, part{file: f})
		if f.Name == documentPart {
			docFile = f
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("%w: 缺少 %s", ErrNotDocx, documentPart)
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("打开 %s 失败: %w", documentPart, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", documentPart, err)
	}

	d.xml = etree.NewDocument()
	if err := d.xml.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: 解析 %s 失败: %v", ErrNotDocx, documentPart, err)
	}

	root := d.xml.Root()
	if root == nil {
		return nil, ErrNoDocumentBody
	}
	d.body = root.SelectElement("body")
	if d.body == nil {
		return nil, ErrNoDocumentBody
	}
	d.prefix = root.Space
	return d, nil
}

// Tables 返回正文中的顶层表格（不含嵌套表格），按文档顺序
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, el := range d.body.SelectElements("tbl") {
		tables = append(tables, &Table{el: el, doc: d})
	}
	return tables
}

// Bytes 将文档重新打包为 docx 字节
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo 将文档写出为 docx
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	docXML, err := d.xml.WriteToBytes()
	if err != nil {
		return 0, fmt.Errorf("序列化 %s 失败: %w", documentPart, err)
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, p := range d.parts {
		if p.file.Name != documentPart {
			if err := zw.Copy(p.file); err != nil {
				return cw.n, fmt.Errorf("复制 %s 失败: %w", p.file.Name, err)
			}
			continue
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.file.Name,
			Method:   zip.Deflate,
			Modified: p.file.Modified,
		})
		if err != nil {
			return cw.n, fmt.Errorf("写入 %s 失败: %w", documentPart, err)
		}
		if _, err := fw.Write(docXML); err != nil {
			return cw.n, fmt.Errorf("写入 %s 失败: %w", documentPart, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("关闭 docx 失败: %w", err)
	}
	return cw.n, nil
}

// tag 生成带文档命名空间前缀的标签名
func (d *Document) tag(local string) string {
	if d.prefix == "" {
		return local
	}
	return d.prefix + ":" + local
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
