package dto

import "github.com/shopspring/decimal"

// ResumenResponse is the manager landing-page snapshot.
type ResumenResponse struct {
	OperacionesTotales  int64           `json:"operaciones_totales"`
	OperacionesActivas  int64           `json:"operaciones_activas"`
	VentasMes           decimal.Decimal `json:"ventas_mes"`
	ClientesActivos     int64           `json:"clientes_activos"`
	MaterialesEnAlerta  int64           `json:"materiales_en_alerta"`
	CorreosFallidos     int64           `json:"correos_fallidos"`
}

type VentaMensual struct {
	Mes   string          `json:"mes"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type VentasResponse struct {
	Meses []VentaMensual `json:"meses"`
}

type InventarioDashboardResponse struct {
	TotalMateriales int64           `json:"total_materiales"`
	ValorInventario decimal.Decimal `json:"valor_inventario"`
	Criticos        int64           `json:"criticos"`
	Bajos           int64           `json:"bajos"`
	Medios          int64           `json:"medios"`
}

type ClienteTop struct {
	UsuarioID   string          `json:"usuario_id"`
	Nombre      string          `json:"nombre"`
	Operaciones int64           `json:"operaciones"`
	TotalGasto  decimal.Decimal `json:"total_gasto"`
}

type ClientesDashboardResponse struct {
	TotalClientes int64        `json:"total_clientes"`
	NuevosMes     int64        `json:"nuevos_mes"`
	Top           []ClienteTop `json:"top"`
}

type SatisfaccionResponse struct {
	TotalEncuestas   int64   `json:"total_encuestas"`
	PromedioServicio float64 `json:"promedio_servicio"`
	PromedioProducto float64 `json:"promedio_producto"`
}

type OperacionesPorEstado struct {
	Estado string `json:"estado"`
	Count  int64  `json:"count"`
}

type OperacionesDashboardResponse struct {
	PorEstado []OperacionesPorEstado `json:"por_estado"`
}
