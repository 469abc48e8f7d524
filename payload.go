// Copyright 2025 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package elog

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/TimeWtr/elog/errorx"
)

// JSONIndent json格式化的缩进
const JSONIndent = "  "

// prettyJSON 只接受以{或[开头的合法json，缩进两个空格
func prettyJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		return "", errorx.ErrInvalidJSON
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", JSONIndent); err != nil {
		return "", errors.Wrap(errorx.ErrInvalidJSON, err.Error())
	}

	return buf.String(), nil
}

// prettyXML 重新编码xml并缩进两个空格，第一个'>'之后固定换行。
// 使用RawToken保留原始的命名空间前缀，标签是否闭合由这里自行校验
func prettyXML(text string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", JSONIndent)

	var (
		stack []string
		roots int
	)
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(errorx.ErrInvalidXML, err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				roots++
			}
			t.Name = rawName(t.Name)
			for i := range t.Attr {
				t.Attr[i].Name = rawName(t.Attr[i].Name)
			}
			stack = append(stack, t.Name.Local)
			tok = t
		case xml.EndElement:
			t.Name = rawName(t.Name)
			if len(stack) == 0 || stack[len(stack)-1] != t.Name.Local {
				return "", errors.Wrapf(errorx.ErrInvalidXML, "unexpected end element </%s>", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
			tok = t
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			if len(stack) == 0 {
				return "", errors.Wrap(errorx.ErrInvalidXML, "text outside root element")
			}
		default:
		}

		if err = enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return "", errors.Wrap(errorx.ErrInvalidXML, err.Error())
		}
	}

	if len(stack) != 0 || roots != 1 {
		return "", errors.Wrap(errorx.ErrInvalidXML, "unbalanced document")
	}
	if err := enc.Flush(); err != nil {
		return "", errors.Wrap(errorx.ErrInvalidXML, err.Error())
	}

	out := buf.String()
	if idx := strings.IndexByte(out, '>'); idx >= 0 && !strings.HasPrefix(out[idx+1:], "\n") && idx+1 < len(out) {
		out = out[:idx+1] + "\n" + out[idx+1:]
	}

	return out, nil
}

// rawName 把RawToken中的前缀并入Local，避免Encoder重写命名空间
func rawName(name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}
	return xml.Name{Local: name.Space + ":" + name.Local}
}
