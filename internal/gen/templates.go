package gen

import "text/template"

var fileTemplate = template.Must(template.New("uncon").Parse(`// Code generated by uncon-gen. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Decls}}{{if .Definition}}
{{.Definition}}
{{end}}{{range .Impls}}
{{if $.Comments}}// {{.FuncName}} {{.Doc}}
{{end}}func {{.FuncName}}{{.TypeParams.Decl}}(in {{.Source}}) {{.Target}} {
	return {{.Body}}
}
{{end}}{{end}}{{if .Assertions}}
{{range .Assertions}}var _ {{$.Uncon}}.FromUnchecked[{{.Source}}, {{.Target}}] = {{$.Uncon}}.Func[{{.Source}}, {{.Target}}]({{.FuncName}})
{{end}}{{end}}`))
