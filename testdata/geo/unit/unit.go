package unit

type Unit struct {
	Name string
}
