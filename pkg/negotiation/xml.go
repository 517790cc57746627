package negotiation

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

var xmlContentType = []string{"application/xml; charset=utf-8"}

// XML gin渲染器
//
// 数据先按JSON标签序列化，再转换为XML：
//   - 根元素为<root>
//   - 对象的字段按声明顺序成为子元素
//   - 数组元素为重复的<list-item>
//   - null为空元素，布尔值为True/False
//
// 因此同一个DTO在两种格式下的字段名一致。
type XML struct {
	Data interface{}
}

// Render 实现render.Render
func (r XML) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)

	body, err := MarshalXML(r.Data)
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// WriteContentType 实现render.Render
func (r XML) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = xmlContentType
	}
}

// MarshalXML 将任意可JSON序列化的值转换为XML文档
func MarshalXML(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")

	enc := xml.NewEncoder(&buf)
	conv := converter{dec: dec, enc: enc}

	root := xml.StartElement{Name: xml.Name{Local: "root"}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	if err := conv.next(); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

type converter struct {
	dec *json.Decoder
	enc *xml.Encoder
}

func (c converter) next() error {
	tok, err := c.dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return c.object()
		case '[':
			return c.array()
		}
		return fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return c.enc.EncodeToken(xml.CharData(v))
	case json.Number:
		return c.enc.EncodeToken(xml.CharData(v.String()))
	case bool:
		if v {
			return c.enc.EncodeToken(xml.CharData("True"))
		}
		return c.enc.EncodeToken(xml.CharData("False"))
	case nil:
		return nil
	}
	return fmt.Errorf("unexpected token %v", tok)
}

func (c converter) object() error {
	for c.dec.More() {
		tok, err := c.dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		if err := c.element(key); err != nil {
			return err
		}
	}
	return c.closing()
}

func (c converter) array() error {
	for c.dec.More() {
		if err := c.element("list-item"); err != nil {
			return err
		}
	}
	return c.closing()
}

func (c converter) element(name string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := c.enc.EncodeToken(start); err != nil {
		return err
	}
	if err := c.next(); err != nil {
		return err
	}
	return c.enc.EncodeToken(start.End())
}

func (c converter) closing() error {
	_, err := c.dec.Token()
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
