package entity

// Manufacturer entrada del directorio de fabricantes (solo identidad y nombre
// para presentación; datos de contacto y convenios viven en otro sistema).
type Manufacturer struct {
	ID   string
	Name string
}
