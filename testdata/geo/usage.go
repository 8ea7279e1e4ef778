package geo

func usage() {
	_ = NewPointBuilder()
	_ = NewMarkerBuilder()
	_ = Distance(1)
	_ = Origin()
}
