package convert

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"mdbc/common"
	"mdbc/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Title    string
	Language string
	Format   string
	Source   string
	Date     string
}

func newValues(name config.TemplateFieldName, title, lang, source string, format common.OutputFmt) Values {
	return Values{
		Context:  string(name),
		Title:    title,
		Language: lang,
		Format:   format.String(),
		Source:   source,
		Date:     time.Now().Format("2006-01-02"),
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
