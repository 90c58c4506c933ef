package dogs

// Dog es el único recurso expuesto por la API.
// El ID lo asigna el store al crear.
type Dog struct {
	ID     int64
	Name   string
	Weight float64
}

// Fields son los campos editables de un perro (create y update reemplazan ambos).
type Fields struct {
	Name   string
	Weight float64
}
