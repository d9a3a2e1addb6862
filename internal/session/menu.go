package session

// MenuModule is one entry of the navigation menu.
type MenuModule struct {
	ID    string
	Name  string
	Icon  string
	Route string
}

var menu = []MenuModule{
	{ID: "usuarios", Name: "Usuarios y Roles", Icon: "users", Route: "usuarios"},
	{ID: "esquelas", Name: "Esquelas", Icon: "document", Route: "esquelas"},
	{ID: "incidentes", Name: "Incidentes", Icon: "alert", Route: "incidentes"},
	{ID: "retiros_tempranos", Name: "Retiros Tempranos", Icon: "exit", Route: "retiros"},
	{ID: "reportes", Name: "Reportes", Icon: "chart", Route: "reportes"},
	{ID: "profesores", Name: "Profesores", Icon: "academic", Route: "profesores"},
	{ID: "administracion", Name: "Administración", Icon: "settings", Route: "administracion"},
}
