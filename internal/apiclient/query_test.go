package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brisa-edu/brisa-client/internal/models"
)

func TestBuildQuery(t *testing.T) {
	five := 5
	var nilInt *int
	yes := true

	tests := []struct {
		name   string
		params []Param
		want   string
	}{
		{name: "no params", want: ""},
		{name: "all dropped", params: []Param{P("a", nil), P("b", ""), P("c", nilInt)}, want: ""},
		{name: "curso with undefined nivel", params: []Param{P("curso_id", &five), P("nivel", nil)}, want: "?curso_id=5"},
		{name: "order kept", params: []Param{P("z", 1), P("a", 2)}, want: "?z=1&a=2"},
		{name: "bool and zero kept", params: []Param{P("con_apoderados", &yes), P("skip", 0)}, want: "?con_apoderados=true&skip=0"},
		{name: "encoded", params: []Param{P("q name", "Ana & Luis"), P("from", "2024-01-01")}, want: "?q%20name=Ana%20%26%20Luis&from=2024-01-01"},
		{name: "named string type", params: []Param{P("nivel", models.NivelPrimaria), P("tipo", models.NoteCodeType(""))}, want: "?nivel=primaria"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.params...))
		})
	}
}

func TestValuesParamsSorted(t *testing.T) {
	v := Values{"year": 2024, "curso": "3A", "empty": ""}
	assert.Equal(t, "?curso=3A&year=2024", BuildQuery(v.Params()...))
	assert.Equal(t, "", BuildQuery(Values(nil).Params()...))
}

func TestStudentReportFilterParams(t *testing.T) {
	five := 5
	f := &StudentReportFilter{CursoID: &five}
	assert.Equal(t, "?curso_id=5", BuildQuery(f.params()...))

	var nilFilter *StudentReportFilter
	assert.Equal(t, "", BuildQuery(nilFilter.params()...))

	f = &StudentReportFilter{CursoID: &five, Nivel: models.NivelSecundaria, Gestion: "2024"}
	assert.Equal(t, "?curso_id=5&nivel=secundaria&gestion=2024", BuildQuery(f.params()...))
}
