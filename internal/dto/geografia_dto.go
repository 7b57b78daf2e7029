package dto

type ComunaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type ProvinciaResponse struct {
	ID      string           `json:"id"`
	Nombre  string           `json:"nombre"`
	Comunas []ComunaResponse `json:"comunas,omitempty"`
}

type RegionResponse struct {
	ID         string              `json:"id"`
	Nombre     string              `json:"nombre"`
	Provincias []ProvinciaResponse `json:"provincias,omitempty"`
}

type PaisResponse struct {
	ID       string           `json:"id"`
	Nombre   string           `json:"nombre"`
	Regiones []RegionResponse `json:"regiones,omitempty"`
}
