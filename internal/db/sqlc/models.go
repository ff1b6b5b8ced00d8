package sqlcgen

type Category struct {
	ID   int32
	Type string
}

type Question struct {
	ID         int32
	Question   string
	Answer     string
	Difficulty int32
	Category   int32
}
