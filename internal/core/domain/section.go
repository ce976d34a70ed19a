package domain

// Section is one dashboard area backed by an upstream collection.
type Section struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Path     string `json:"path"`
	Upstream string `json:"-"`
}

const (
	LoginPath     = "/login"
	DashboardRoot = "/dashboard"
)

// Sections lists the dashboard areas in menu order.
var Sections = []Section{
	{Key: "pedidos", Title: "Pedidos", Path: "/dashboard/pedidos", Upstream: "/orders/"},
	{Key: "clientes", Title: "Clientes", Path: "/dashboard/clientes", Upstream: "/customers/"},
	{Key: "produtos", Title: "Produtos", Path: "/dashboard/produtos", Upstream: "/products/"},
	{Key: "logistica", Title: "Logística", Path: "/dashboard/logistica", Upstream: "/logistics/"},
	{Key: "usuarios", Title: "Usuários", Path: "/dashboard/usuarios", Upstream: "/accounts/users/"},
}

// SectionByKey looks up a section by its key.
func SectionByKey(key string) (Section, bool) {
	for _, s := range Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}
