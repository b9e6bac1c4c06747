package tplx

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig"
)

func New(name string) *template.Template {
	return template.New(name).Funcs(sprig.TxtFuncMap())
}

func RenderString(tplContent string, data any) (string, error) {
	tplParsed, err := New("string-template").Delims("[[", "]]").Parse(tplContent)
	if err != nil {
		return "", err
	}
	var tplOutput bytes.Buffer
	if err := tplParsed.Execute(&tplOutput, data); err != nil {
		return "", err
	}
	return tplOutput.String(), nil
}
